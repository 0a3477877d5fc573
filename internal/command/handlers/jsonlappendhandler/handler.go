// Package jsonlappendhandler реализует команду jsonl-append:
// добавление JSON записей в файл JSON Lines.
package jsonlappendhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/dryrun"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&JSONLAppendHandler{}, constants.AliasAppendJSONL)
}

// JSONLAppendHandler обрабатывает команду jsonl-append.
type JSONLAppendHandler struct{}

// Name возвращает имя команды.
func (h *JSONLAppendHandler) Name() string { return constants.ActJSONLAppend }

// Description возвращает описание команды для вывода в help.
func (h *JSONLAppendHandler) Description() string {
	return "Добавление записей в JSON Lines: jsonl-append <path> <json>..."
}

// Execute разбирает аргументы как JSON и дописывает их по одной записи на строку.
// Все аргументы проверяются до открытия файла.
func (h *JSONLAppendHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActJSONLAppend)

	if err := shared.RequireArgs(app, constants.ActJSONLAppend, 2, "<path> <json>..."); err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLAppend, start, err)
	}
	path := shared.Arg(app, 0)

	records, err := parseRecords(shared.Args(app, 1))
	if err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLAppend, start, err)
	}

	removeFirst := shared.IOConfig(app).RemoveFirst
	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActJSONLAppend,
			shared.AppendSteps(path, removeFirst, len(records), metrics.KindRecords)...)
		return shared.WriteSuccess(ctx, app, constants.ActJSONLAppend, start, plan, nil)
	}

	opts := append(shared.RecordOptions(app, log), fileio.WithRemove(removeFirst))
	if err := fileio.AppendJSONLines(path, records, opts...); err != nil {
		log.Error("не удалось дописать записи", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONLAppend, start, err)
	}

	log.Info("записи добавлены", "path", path, "records", len(records), "remove_first", removeFirst)
	shared.RecordItems(app, constants.ActJSONLAppend, metrics.KindRecords, len(records))

	return shared.WriteSuccess(ctx, app, constants.ActJSONLAppend, start, &shared.WrittenData{
		Path:    path,
		Count:   len(records),
		Kind:    metrics.KindRecords,
		Removed: removeFirst,
	}, nil)
}

// parseRecords проверяет, что каждый аргумент - один JSON документ.
func parseRecords(args []string) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(args))
	for i, arg := range args {
		var rec json.RawMessage
		if err := json.Unmarshal([]byte(arg), &rec); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrDecode,
				fmt.Sprintf("запись %d не является JSON", i+1), err)
		}
		records = append(records, rec)
	}
	return records, nil
}
