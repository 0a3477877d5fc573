// Package jsonltojsonhandler реализует команду jsonl-to-json:
// перенос записей JSON Lines в один JSON-массив.
package jsonltojsonhandler

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
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.Register(&JSONLToJSONHandler{})
}

// JSONLToJSONHandler обрабатывает команду jsonl-to-json.
type JSONLToJSONHandler struct{}

// Name возвращает имя команды.
func (h *JSONLToJSONHandler) Name() string { return constants.ActJSONLToJSON }

// Description возвращает описание команды для вывода в help.
func (h *JSONLToJSONHandler) Description() string {
	return "JSON Lines в JSON-массив: jsonl-to-json <src> <dst>"
}

// Execute читает src целиком и перезаписывает dst массивом записей.
// Пустой src даёт пустой массив.
func (h *JSONLToJSONHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActJSONLToJSON)

	if err := shared.RequireArgs(app, constants.ActJSONLToJSON, 2, "<src> <dst>"); err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLToJSON, start, err)
	}
	src, dst := shared.Arg(app, 0), shared.Arg(app, 1)
	opts := shared.RecordOptions(app, log)

	records, err := fileio.ReadJSONLines[json.RawMessage](src, opts...)
	if err != nil {
		log.Error("не удалось прочитать записи", "path", src, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONLToJSON, start, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}

	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActJSONLToJSON, dryrun.Step{
			Operation: dryrun.OpWrite,
			Path:      dst,
			Detail:    fmt.Sprintf("%d %s из %s, файл перезаписывается", len(records), metrics.KindRecords, src),
		})
		return shared.WriteSuccess(ctx, app, constants.ActJSONLToJSON, start, plan, nil)
	}

	if err := fileio.WriteJSON(dst, records, opts...); err != nil {
		log.Error("не удалось записать JSON", "path", dst, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONLToJSON, start, err)
	}

	log.Info("JSON записан", "src", src, "dst", dst, "records", len(records))
	shared.RecordItems(app, constants.ActJSONLToJSON, metrics.KindRecords, len(records))

	return shared.WriteSuccess(ctx, app, constants.ActJSONLToJSON, start,
		&shared.WrittenData{Path: dst, Count: len(records), Kind: metrics.KindRecords}, nil)
}
