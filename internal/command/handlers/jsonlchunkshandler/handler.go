// Package jsonlchunkshandler реализует команду jsonl-chunks:
// чтение файла JSON Lines группами записей.
package jsonlchunkshandler

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&JSONLChunksHandler{}, constants.AliasJSONLineChunks)
}

// ChunksData - записи файла, сгруппированные по ChunkSize.
// Записи передаются как есть, без повторной сериализации чисел.
type ChunksData struct {
	Path      string              `json:"path"`
	ChunkSize int                 `json:"chunk_size"`
	Records   int                 `json:"records"`
	Chunks    [][]json.RawMessage `json:"chunks"`
}

// WriteText печатает каждый чанк отдельной строкой как JSON массив.
func (d *ChunksData) WriteText(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, chunk := range d.Chunks {
		if err := enc.Encode(chunk); err != nil {
			return err
		}
	}
	return nil
}

// JSONLChunksHandler обрабатывает команду jsonl-chunks.
type JSONLChunksHandler struct{}

// Name возвращает имя команды.
func (h *JSONLChunksHandler) Name() string { return constants.ActJSONLChunks }

// Description возвращает описание команды для вывода в help.
func (h *JSONLChunksHandler) Description() string {
	return "Чтение JSON Lines чанками: jsonl-chunks <path> [size]"
}

// Execute читает записи группами. Размер группы берётся из второго аргумента
// или TK_CHUNK_SIZE; с TK_SCHEMA каждая запись проверяется по JSON Schema.
func (h *JSONLChunksHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActJSONLChunks)

	if err := shared.RequireArgs(app, constants.ActJSONLChunks, 1, "<path> [size]"); err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLChunks, start, err)
	}
	path := shared.Arg(app, 0)
	ioc := shared.IOConfig(app)

	size := ioc.ChunkSize
	if raw := shared.Arg(app, 1); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return shared.WriteError(ctx, app, constants.ActJSONLChunks, start,
				apperrors.InvalidArgument("размер чанка должен быть целым числом: "+raw))
		}
		size = n
	}

	chunks, err := fileio.ReadJSONLineChunksLazy[json.RawMessage](path, size, shared.RecordOptions(app, log)...)
	if err != nil {
		return shared.WriteError(ctx, app, constants.ActJSONLChunks, start, err)
	}

	data := &ChunksData{Path: path, ChunkSize: size, Chunks: [][]json.RawMessage{}}
	for chunk, err := range chunks {
		if err != nil {
			log.Error("не удалось прочитать записи", "path", path, "error", err.Error())
			return shared.WriteError(ctx, app, constants.ActJSONLChunks, start, err)
		}
		data.Chunks = append(data.Chunks, chunk)
		data.Records += len(chunk)
	}

	log.Info("записи прочитаны", "path", path, "records", data.Records, "chunks", len(data.Chunks))
	shared.RecordItems(app, constants.ActJSONLChunks, metrics.KindRecords, data.Records)

	summary := output.NewSummaryInfo()
	summary.AddMetric("Записей", strconv.Itoa(data.Records), "")
	summary.AddMetric("Чанков", strconv.Itoa(len(data.Chunks)), "")

	return shared.WriteSuccess(ctx, app, constants.ActJSONLChunks, start, data, summary)
}
