// Package appendlineshandler реализует команду append-lines: добавление строк в конец файла.
package appendlineshandler

import (
	"context"
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
	return command.RegisterWithAlias(&AppendLinesHandler{}, constants.AliasAppendLines)
}

// AppendLinesHandler обрабатывает команду append-lines.
type AppendLinesHandler struct{}

// Name возвращает имя команды.
func (h *AppendLinesHandler) Name() string { return constants.ActAppendLines }

// Description возвращает описание команды для вывода в help.
func (h *AppendLinesHandler) Description() string {
	return "Добавление строк в конец файла: append-lines <path> <line>..."
}

// Execute дописывает строки. С TK_REMOVE_FIRST файл сначала удаляется.
// Строки пишутся по одной: при ошибке уже записанные остаются в файле.
func (h *AppendLinesHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActAppendLines)

	if err := shared.RequireArgs(app, constants.ActAppendLines, 2, "<path> <line>..."); err != nil {
		return shared.WriteError(ctx, app, constants.ActAppendLines, start, err)
	}
	path := shared.Arg(app, 0)
	lines := shared.Args(app, 1)
	removeFirst := shared.IOConfig(app).RemoveFirst

	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActAppendLines,
			shared.AppendSteps(path, removeFirst, len(lines), metrics.KindLines)...)
		return shared.WriteSuccess(ctx, app, constants.ActAppendLines, start, plan, nil)
	}

	opts := append(shared.FileOptions(app, log), fileio.WithRemove(removeFirst))
	if err := fileio.AppendLines(path, lines, opts...); err != nil {
		log.Error("не удалось дописать файл", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActAppendLines, start, err)
	}

	log.Info("строки добавлены", "path", path, "lines", len(lines), "remove_first", removeFirst)
	shared.RecordItems(app, constants.ActAppendLines, metrics.KindLines, len(lines))

	return shared.WriteSuccess(ctx, app, constants.ActAppendLines, start, &shared.WrittenData{
		Path:    path,
		Count:   len(lines),
		Kind:    metrics.KindLines,
		Removed: removeFirst,
	}, nil)
}
