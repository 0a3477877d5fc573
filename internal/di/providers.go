package di

import (
	"context"
	"log/slog"

	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/internal/pkg/tracing"
	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/logging"
)

// ProvideLogger создаёт Logger на основе Config.LoggingConfig.
// Пустые поля и nil конфигурация дают значения logging.DefaultConfig().
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()

	if cfg != nil && cfg.LoggingConfig != nil {
		lc := cfg.LoggingConfig
		if lc.Level != "" {
			logCfg.Level = lc.Level
		}
		if lc.Format != "" {
			logCfg.Format = lc.Format
		}
		if lc.Output != "" {
			logCfg.Output = lc.Output
		}
		if lc.FilePath != "" {
			logCfg.FilePath = lc.FilePath
		}
		// Размер 0 MB не имеет смысла для lumberjack: остаётся default.
		if lc.MaxSize > 0 {
			logCfg.MaxSize = lc.MaxSize
		}
		if lc.MaxBackups > 0 {
			logCfg.MaxBackups = lc.MaxBackups
		}
		if lc.MaxAge > 0 {
			logCfg.MaxAge = lc.MaxAge
		}
		logCfg.Compress = lc.Compress
	}

	return logging.NewLogger(logCfg)
}

// ProvideOutputWriter создаёт JSONWriter или TextWriter по Config.OutputFormat.
// Пустой или неизвестный формат даёт текстовый вывод.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	format := output.FormatText
	if cfg != nil && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует 32-символьный hex trace_id запуска.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideFileSystem создаёт файловую систему по Config.IOConfig.
// Без IOConfig используется диск без ограничения корнем.
func ProvideFileSystem(cfg *config.Config) (filer.FileSystem, error) {
	if cfg == nil || cfg.IOConfig == nil {
		return filer.NewFileSystem(filer.DefaultConfig())
	}
	fsCfg, err := cfg.IOConfig.FileSystemConfig()
	if err != nil {
		return nil, err
	}
	return filer.NewFileSystem(fsCfg)
}

// ProvideMetricsCollector создаёт Collector на основе Config.MetricsConfig.
// Отсутствующая конфигурация или ошибка создания дают NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil || cfg.MetricsConfig == nil {
		return metrics.NewNopCollector()
	}

	metricsCfg := metrics.Config{
		Enabled:        cfg.MetricsConfig.Enabled,
		PushgatewayURL: cfg.MetricsConfig.PushgatewayURL,
		JobName:        cfg.MetricsConfig.JobName,
		Timeout:        cfg.MetricsConfig.Timeout,
		InstanceLabel:  cfg.MetricsConfig.InstanceLabel,
	}

	collector, err := metrics.NewCollector(metricsCfg, logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel TracerProvider и возвращает shutdown function.
// Отсутствующая или выключенная конфигурация, как и ошибка инициализации, дают nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil || cfg.TracingConfig == nil {
		return tracing.NewNopTracerProvider()
	}

	tracingCfg := tracing.Config{
		Enabled:      cfg.TracingConfig.Enabled,
		Endpoint:     cfg.TracingConfig.Endpoint,
		ServiceName:  cfg.TracingConfig.ServiceName,
		Version:      constants.Version,
		Environment:  cfg.TracingConfig.Environment,
		Insecure:     cfg.TracingConfig.Insecure,
		Timeout:      cfg.TracingConfig.Timeout,
		SamplingRate: cfg.TracingConfig.SamplingRate,
	}

	shutdown, err := tracing.NewTracerProvider(tracingCfg, logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}
