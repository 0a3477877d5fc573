// Package writelineshandler реализует команду write-lines: перезапись файла строками.
package writelineshandler

import (
	"context"
	"fmt"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/dryrun"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&WriteLinesHandler{}, constants.AliasWriteLines)
}

// WriteLinesHandler обрабатывает команду write-lines.
type WriteLinesHandler struct{}

// Name возвращает имя команды.
func (h *WriteLinesHandler) Name() string { return constants.ActWriteLines }

// Description возвращает описание команды для вывода в help.
func (h *WriteLinesHandler) Description() string {
	return "Перезапись файла строками: write-lines <path> <line>..."
}

// Execute перезаписывает файл. TK_STRIP и TK_SKIP_EMPTY применяются до записи.
func (h *WriteLinesHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActWriteLines)

	if err := shared.RequireArgs(app, constants.ActWriteLines, 2, "<path> <line>..."); err != nil {
		return shared.WriteError(ctx, app, constants.ActWriteLines, start, err)
	}
	path := shared.Arg(app, 0)
	lines := shared.Args(app, 1)

	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActWriteLines, dryrun.Step{
			Operation: dryrun.OpWrite,
			Path:      path,
			Detail:    fmt.Sprintf("%d lines, файл перезаписывается", len(lines)),
		})
		return shared.WriteSuccess(ctx, app, constants.ActWriteLines, start, plan, nil)
	}

	if err := fileio.WriteLines(path, lines, shared.LineOptions(app, log)...); err != nil {
		log.Error("не удалось записать файл", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActWriteLines, start, err)
	}

	log.Info("файл записан", "path", path, "lines", len(lines))
	shared.RecordItems(app, constants.ActWriteLines, metrics.KindLines, len(lines))

	return shared.WriteSuccess(ctx, app, constants.ActWriteLines, start,
		&shared.WrittenData{Path: path, Count: len(lines), Kind: metrics.KindLines}, nil)
}
