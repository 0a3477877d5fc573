// Package main содержит точку входа CLI textkit.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/tracing"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/logging"
)

// shutdownTimeout ограничивает отправку буферизированных span-ов при выходе.
const shutdownTimeout = 5 * time.Second

// recordMetrics записывает результат выполнения команды и отправляет метрики в Pushgateway.
func recordMetrics(ctx context.Context, collector metrics.Collector, command string, start time.Time, success bool) {
	collector.RecordCommandEnd(command, time.Since(start), success)
	_ = collector.Push(ctx) //nolint:errcheck // ошибки push логируются внутри
}

func main() {
	if err := handlers.RegisterAll(); err != nil {
		logging.GetLogger(constants.AppName).Error("Не удалось зарегистрировать команды", "error", err.Error())
		os.Exit(constants.ExitConfig)
	}
	os.Exit(run(os.Args[1:]))
}

// run выполняет одну команду и возвращает exit code.
// Вынесена из main(), чтобы os.Exit() вызывался после всех defer
// (завершение tracer provider, span.End).
func run(args []string) int {
	ctx := context.Background()

	cfg, err := config.Load(args)
	if err != nil || cfg == nil {
		logging.GetLogger(constants.AppName).Error("Не удалось загрузить конфигурацию приложения",
			"error", fmt.Sprint(err))
		return constants.ExitConfig
	}
	l := cfg.Logger
	l.Debug("Информация о сборке",
		slog.String("version", constants.Version),
		slog.String("commit_hash", constants.PreCommitHash),
	)

	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		l.Error("Не удалось инициализировать зависимости",
			slog.String("error", err.Error()),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit),
		)
		return constants.ExitConfig
	}

	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			app.Logger.Error("ошибка завершения tracing",
				"error", err.Error(),
				"trace_id", app.TraceID,
				"command", cfg.Command,
			)
		}
	}()

	return execute(ctx, app)
}

// execute находит команду в реестре и выполняет её внутри span-а.
func execute(ctx context.Context, app *di.App) int {
	name := app.Config.Command

	ctx, span := tracing.StartCommand(ctx, name)
	var execErr error
	defer func() { tracing.EndSpan(span, execErr) }()

	app.MetricsCollector.RecordCommandStart(name)
	start := time.Now()

	handler, ok := command.Get(name)
	if !ok {
		execErr = apperrors.NewAppError(apperrors.ErrCommandNotFound,
			fmt.Sprintf("неизвестная команда %q, список команд: %s %s", name, constants.AppName, constants.ActHelp), nil)
		_ = shared.WriteError(ctx, app, name, start, execErr) //nolint:errcheck // возвращает execErr
		recordMetrics(ctx, app.MetricsCollector, name, start, false)
		return constants.ExitUsage
	}

	app.Logger.Debug("Выполнение команды", "command", name, "args", len(app.Config.Args))
	execErr = logging.LogTime(logging.Named(app.Logger, constants.AppName), name,
		func() error { return handler.Execute(ctx, app) },
		logging.WithStage("execute"))
	recordMetrics(ctx, app.MetricsCollector, name, start, execErr == nil)

	if execErr != nil {
		app.Logger.Error("Ошибка выполнения команды",
			"command", name,
			"error", execErr.Error(),
			constants.MsgErrProcessing, constants.MsgAppExit,
		)
		if apperrors.IsCode(execErr, apperrors.ErrInvalidArgument) {
			return constants.ExitUsage
		}
		return constants.ExitCommandFailed
	}
	return constants.ExitOK
}
