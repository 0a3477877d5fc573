// Package readlineshandler реализует команду read-lines:
// построчное чтение текстового файла.
package readlineshandler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&ReadLinesHandler{}, constants.AliasReadLines)
}

// LinesData - результат чтения файла.
type LinesData struct {
	Path  string   `json:"path"`
	Count int      `json:"count"`
	Lines []string `json:"lines"`
}

// WriteText печатает строки как есть, чтобы вывод можно было передать дальше.
// С TK_KEEP_LINE_BREAK строки уже содержат свой перевод строки.
func (d *LinesData) WriteText(w io.Writer) error {
	for _, line := range d.Lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
		if !hasLineBreak(line) {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasLineBreak(s string) bool {
	return s != "" && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r')
}

// ReadLinesHandler обрабатывает команду read-lines.
type ReadLinesHandler struct{}

// Name возвращает имя команды.
func (h *ReadLinesHandler) Name() string { return constants.ActReadLines }

// Description возвращает описание команды для вывода в help.
func (h *ReadLinesHandler) Description() string {
	return "Чтение файла построчно: read-lines <path>"
}

// Execute читает файл с учётом TK_STRIP, TK_SKIP_EMPTY и TK_KEEP_LINE_BREAK.
func (h *ReadLinesHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActReadLines)

	if err := shared.RequireArgs(app, constants.ActReadLines, 1, "<path>"); err != nil {
		return shared.WriteError(ctx, app, constants.ActReadLines, start, err)
	}
	path := shared.Arg(app, 0)

	lines, err := fileio.ReadLines(path, shared.LineOptions(app, log)...)
	if err != nil {
		log.Error("не удалось прочитать файл", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActReadLines, start, err)
	}
	if lines == nil {
		lines = []string{}
	}

	log.Info("файл прочитан", "path", path, "lines", len(lines))
	shared.RecordItems(app, constants.ActReadLines, metrics.KindLines, len(lines))

	return shared.WriteSuccess(ctx, app, constants.ActReadLines, start,
		&LinesData{Path: path, Count: len(lines), Lines: lines}, nil)
}
