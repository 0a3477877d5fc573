// Package jsontojsonlhandler реализует команду json-to-jsonl:
// раскладка JSON-массива по строкам JSON Lines.
package jsontojsonlhandler

import (
	"bytes"
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
	return command.Register(&JSONToJSONLHandler{})
}

// JSONToJSONLHandler обрабатывает команду json-to-jsonl.
type JSONToJSONLHandler struct{}

// Name возвращает имя команды.
func (h *JSONToJSONLHandler) Name() string { return constants.ActJSONToJSONL }

// Description возвращает описание команды для вывода в help.
func (h *JSONToJSONLHandler) Description() string {
	return "JSON-массив в JSON Lines: json-to-jsonl <src> <dst>"
}

// Execute перезаписывает dst элементами массива из src, по одному на строку.
// Документ, не являющийся массивом, даёт TYPE.MISMATCH; пустой массив - ARG.INVALID.
func (h *JSONToJSONLHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActJSONToJSONL)

	if err := shared.RequireArgs(app, constants.ActJSONToJSONL, 2, "<src> <dst>"); err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONToJSONL, start, err)
	}
	src, dst := shared.Arg(app, 0), shared.Arg(app, 1)
	opts := shared.RecordOptions(app, log)

	doc, err := fileio.ReadJSON[json.RawMessage](src, opts...)
	if err != nil {
		log.Error("не удалось прочитать JSON", "path", src, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONToJSONL, start, err)
	}
	items, err := splitArray(src, doc)
	if err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONToJSONL, start, err)
	}

	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActJSONToJSONL, dryrun.Step{
			Operation: dryrun.OpWrite,
			Path:      dst,
			Detail:    fmt.Sprintf("%d %s из %s, файл перезаписывается", len(items), metrics.KindRecords, src),
		})
		return shared.WriteSuccess(ctx, app, constants.ActJSONToJSONL, start, plan, nil)
	}

	if err := fileio.WriteJSONLines(dst, items, opts...); err != nil {
		log.Error("не удалось записать записи", "path", dst, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActJSONToJSONL, start, err)
	}

	log.Info("записи разложены", "src", src, "dst", dst, "records", len(items))
	shared.RecordItems(app, constants.ActJSONToJSONL, metrics.KindRecords, len(items))

	return shared.WriteSuccess(ctx, app, constants.ActJSONToJSONL, start,
		&shared.WrittenData{Path: dst, Count: len(items), Kind: metrics.KindRecords}, nil)
}

// splitArray разбивает JSON-массив на элементы без повторного кодирования.
func splitArray(path string, doc json.RawMessage) ([]json.RawMessage, error) {
	if trimmed := bytes.TrimSpace(doc); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, apperrors.TypeMismatch(path + ": ожидался JSON-массив")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrDecode, path+": файл не является JSON-массивом", err)
	}
	return items, nil
}
