// Package jsonlindexhandler реализует команду jsonl-index: индекс записей JSONL по полю.
package jsonlindexhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/pkg/fileio"
	"github.com/Kargones/textkit/pkg/listutil"
)

func RegisterCmd() error {
	return command.Register(&JSONLIndexHandler{})
}

// IndexData - записи, сгруппированные по значению поля Key.
// При повторе значения остаётся последняя запись.
type IndexData struct {
	Path    string                    `json:"path"`
	Key     string                    `json:"key"`
	Records int                       `json:"records"`
	Index   map[string]map[string]any `json:"index"`
}

// WriteText печатает "значение<TAB>запись" в порядке значений.
func (d *IndexData) WriteText(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, k := range slices.Sorted(maps.Keys(d.Index)) {
		if _, err := fmt.Fprintf(w, "%s\t", k); err != nil {
			return err
		}
		if err := enc.Encode(d.Index[k]); err != nil {
			return err
		}
	}
	return nil
}

// JSONLIndexHandler обрабатывает команду jsonl-index.
type JSONLIndexHandler struct{}

// Name возвращает имя команды.
func (h *JSONLIndexHandler) Name() string { return constants.ActJSONLIndex }

// Description возвращает описание команды для вывода в help.
func (h *JSONLIndexHandler) Description() string {
	return "Индекс записей JSON Lines по полю: jsonl-index <path> <key>"
}

// Execute читает записи-объекты и строит словарь по значению поля key.
// Запись без поля даёт TYPE.MISMATCH.
func (h *JSONLIndexHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActJSONLIndex)

	if err := shared.RequireArgs(app, constants.ActJSONLIndex, 2, "<path> <key>"); err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLIndex, start, err)
	}
	path, key := shared.Arg(app, 0), shared.Arg(app, 1)

	records, err := fileio.ReadJSONLines[map[string]any](path, shared.RecordOptions(app, log)...)
	if err != nil {
		log.Error("не удалось прочитать записи", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONLIndex, start, err)
	}

	index, err := listutil.ListToMap(records, key)
	if err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLIndex, start, err)
	}

	log.Info("индекс построен", "path", path, "key", key, "records", len(records), "keys", len(index))
	shared.RecordItems(app, constants.ActJSONLIndex, metrics.KindRecords, len(records))

	summary := output.NewSummaryInfo()
	summary.AddMetric("Записей", strconv.Itoa(len(records)), "")
	summary.AddMetric("Ключей", strconv.Itoa(len(index)), "")

	return shared.WriteSuccess(ctx, app, constants.ActJSONLIndex, start,
		&IndexData{Path: path, Key: key, Records: len(records), Index: index}, summary)
}
