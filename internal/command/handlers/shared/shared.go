// Package shared содержит общие помощники обработчиков команд:
// вывод результата, опции файловых операций и проверку аргументов.
package shared

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/dryrun"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/internal/pkg/tracing"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/fileio"
	"github.com/Kargones/textkit/pkg/jsonsafe"
	"github.com/Kargones/textkit/pkg/logging"
)

// TraceID возвращает trace_id из контекста, затем из app.
// Если оба пусты, генерирует новый: это сигнал о разрыве цепочки контекста.
func TraceID(ctx context.Context, app *di.App) string {
	if id := tracing.TraceIDFromContext(ctx); id != "" {
		return id
	}
	if app != nil && app.TraceID != "" {
		return app.TraceID
	}
	return tracing.GenerateTraceID()
}

// Logger возвращает логгер команды с атрибутами command и trace_id.
func Logger(ctx context.Context, app *di.App, command string) logging.Logger {
	var l logging.Logger
	if app != nil && app.Logger != nil {
		l = app.Logger
	} else {
		l = logging.NewNopLogger()
	}
	return logging.Named(l, constants.AppName).With("command", command, "trace_id", TraceID(ctx, app))
}

// IOConfig возвращает настройки ввода-вывода или значения по умолчанию.
func IOConfig(app *di.App) *config.IOConfig {
	if app != nil && app.Config != nil && app.Config.IOConfig != nil {
		return app.Config.IOConfig
	}
	return &config.IOConfig{Encoding: fileio.DefaultEncoding, FSType: "disk", ChunkSize: 100}
}

// FileOptions собирает общие опции fileio: файловая система, кодировка, логгер.
func FileOptions(app *di.App, l logging.Logger) []fileio.Option {
	ioc := IOConfig(app)
	opts := []fileio.Option{fileio.WithLogger(l)}
	if app != nil && app.FileSystem != nil {
		opts = append(opts, fileio.WithFS(app.FileSystem))
	}
	if ioc.Encoding != "" {
		opts = append(opts, fileio.WithEncoding(ioc.Encoding))
	}
	return opts
}

// RecordOptions добавляет к FileOptions опции JSON: хук jsonsafe.Serialize
// для значений вне JSON и схему записей из TK_SCHEMA.
func RecordOptions(app *di.App, l logging.Logger) []fileio.Option {
	opts := append(FileOptions(app, l), fileio.WithSerializer(jsonsafe.Serialize))
	if schema := IOConfig(app).SchemaPath; schema != "" {
		opts = append(opts, fileio.WithSchema(schema))
	}
	return opts
}

// LineOptions добавляет к FileOptions обработку строк из TK_STRIP,
// TK_SKIP_EMPTY и TK_KEEP_LINE_BREAK.
func LineOptions(app *di.App, l logging.Logger) []fileio.Option {
	ioc := IOConfig(app)
	opts := FileOptions(app, l)
	if ioc.Strip {
		opts = append(opts, fileio.Strip())
	}
	if ioc.SkipEmpty {
		opts = append(opts, fileio.SkipEmpty())
	}
	if ioc.KeepLineBreak {
		opts = append(opts, fileio.KeepLineBreak())
	}
	return opts
}

// RequireArgs проверяет, что команде передано не меньше n аргументов.
func RequireArgs(app *di.App, command string, n int, usage string) error {
	var got int
	if app != nil && app.Config != nil {
		got = len(app.Config.Args)
	}
	if got < n {
		return apperrors.InvalidArgument(fmt.Sprintf(
			"недостаточно аргументов: %d из %d; использование: %s %s %s",
			got, n, constants.AppName, command, usage))
	}
	return nil
}

// Arg возвращает i-й аргумент команды.
func Arg(app *di.App, i int) string {
	if app == nil {
		return ""
	}
	return app.Config.Arg(i)
}

// Args возвращает аргументы команды начиная с from.
func Args(app *di.App, from int) []string {
	if app == nil || app.Config == nil || from >= len(app.Config.Args) {
		return nil
	}
	return app.Config.Args[from:]
}

func writer(app *di.App) output.Writer {
	if app != nil && app.OutputWriter != nil {
		return app.OutputWriter
	}
	return output.NewTextWriter()
}

func metadata(ctx context.Context, app *di.App, start time.Time) *output.Metadata {
	return &output.Metadata{
		DurationMs: time.Since(start).Milliseconds(),
		TraceID:    TraceID(ctx, app),
		APIVersion: constants.APIVersion,
	}
}

// WriteSuccess выводит успешный результат команды в stdout.
func WriteSuccess(ctx context.Context, app *di.App, command string, start time.Time, data any, summary *output.SummaryInfo) error {
	result := &output.Result{
		Status:   output.StatusSuccess,
		Command:  command,
		Data:     data,
		Metadata: metadata(ctx, app, start),
		Summary:  summary,
	}
	return writer(app).Write(os.Stdout, result)
}

// WriteError выводит структурированную ошибку в stdout и возвращает err.
// Код берётся из AppError, иначе используется COMMAND.EXEC_FAILED.
func WriteError(ctx context.Context, app *di.App, command string, start time.Time, err error) error {
	code, message := describe(err)
	result := &output.Result{
		Status:  output.StatusError,
		Command: command,
		Error: &output.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Metadata: metadata(ctx, app, start),
	}
	if writeErr := writer(app).Write(os.Stdout, result); writeErr != nil {
		Logger(ctx, app, command).Error("не удалось записать ответ об ошибке",
			"error", writeErr.Error())
	}
	return err
}

// describe переводит ошибку в пару (код, сообщение) для вывода.
func describe(err error) (string, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return apperrors.ErrCommandExec, err.Error()
	}
	message := appErr.Message
	if appErr.Cause != nil {
		cause := appErr.Cause.Error()
		if !strings.Contains(message, cause) {
			message += ": " + cause
		}
	}
	return appErr.Code, message
}

// RecordItems учитывает обработанные элементы в метриках, если коллектор задан.
func RecordItems(app *di.App, command, kind string, n int) {
	if app == nil || app.MetricsCollector == nil {
		return
	}
	app.MetricsCollector.RecordItems(command, kind, n)
}

// WrittenData - результат команд, изменяющих файл.
type WrittenData struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
	Kind  string `json:"kind"`
	// Removed - true, если файл был удалён перед добавлением.
	Removed bool `json:"removed,omitempty"`
}

// WriteText печатает одну строку вида "path: 3 lines".
func (d *WrittenData) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d %s\n", d.Path, d.Count, d.Kind)
	return err
}

// AppendSteps описывает план добавления n элементов вида kind в path.
func AppendSteps(path string, removeFirst bool, n int, kind string) []dryrun.Step {
	var steps []dryrun.Step
	if removeFirst {
		steps = append(steps, dryrun.Step{Operation: dryrun.OpRemove, Path: path})
	}
	return append(steps, dryrun.Step{
		Operation: dryrun.OpAppend,
		Path:      path,
		Detail:    fmt.Sprintf("%d %s", n, kind),
	})
}
