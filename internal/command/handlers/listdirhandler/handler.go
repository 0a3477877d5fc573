// Package listdirhandler реализует команду list-dir: список записей директории.
package listdirhandler

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
	return command.Register(&ListDirHandler{})
}

// DirData - отсортированный список путей.
type DirData struct {
	Dir     string   `json:"dir"`
	Suffix  string   `json:"suffix,omitempty"`
	Entries []string `json:"entries"`
}

// WriteText печатает по одному пути на строку.
func (d *DirData) WriteText(w io.Writer) error {
	for _, e := range d.Entries {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}

// ListDirHandler обрабатывает команду list-dir.
type ListDirHandler struct{}

// Name возвращает имя команды.
func (h *ListDirHandler) Name() string { return constants.ActListDir }

// Description возвращает описание команды для вывода в help.
func (h *ListDirHandler) Description() string {
	return "Список записей директории: list-dir <dir> [suffix]"
}

// Execute перечисляет директорию с учётом TK_SUFFIX, TK_RECURSIVE и TK_FILES_ONLY.
// Второй аргумент заменяет TK_SUFFIX.
func (h *ListDirHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActListDir)

	if err := shared.RequireArgs(app, constants.ActListDir, 1, "<dir> [suffix]"); err != nil {
		return shared.WriteError(ctx, app, constants.ActListDir, start, err)
	}
	dir := shared.Arg(app, 0)
	ioc := shared.IOConfig(app)

	suffix := ioc.Suffix
	if s := shared.Arg(app, 1); s != "" {
		suffix = s
	}

	opts := shared.FileOptions(app, log)
	if suffix != "" {
		opts = append(opts, fileio.WithSuffix(suffix))
	}
	if ioc.Recursive {
		opts = append(opts, fileio.Recursive())
	}
	if ioc.FilesOnly {
		opts = append(opts, fileio.FilesOnly())
	}

	entries, err := fileio.ListDir(dir, opts...)
	if err != nil {
		log.Error("не удалось прочитать директорию", "dir", dir, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActListDir, start, err)
	}

	log.Info("директория прочитана", "dir", dir, "entries", len(entries))
	shared.RecordItems(app, constants.ActListDir, metrics.KindEntries, len(entries))

	return shared.WriteSuccess(ctx, app, constants.ActListDir, start,
		&DirData{Dir: dir, Suffix: suffix, Entries: entries}, nil)
}
