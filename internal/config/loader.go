package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/pkg/apperrors"
)

// Load собирает Config из окружения, YAML-файла и аргументов CLI.
//
// args: аргументы без имени программы. Если TK_COMMAND не задан, первый
// аргумент считается именем команды, остальные её аргументами.
//
// Ошибки отдельных секций не фатальны: секция получает значения по умолчанию,
// невалидные метрики и трейсинг отключаются с предупреждением.
func Load(args []string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось прочитать переменные окружения в Config", err)
	}

	if cfg.Command == "" && len(args) > 0 {
		cfg.Command, args = args[0], args[1:]
	}
	cfg.Args = append([]string(nil), args...)

	l := getSlog(os.Getenv("TK_LOG_LEVEL"))
	cfg.Logger = l

	var err error
	if cfg.ConfigFile != "" {
		if cfg.AppConfig, err = loadAppConfig(cfg.ConfigFile); err != nil {
			l.Warn("ошибка загрузки конфигурации приложения",
				slog.String("path", cfg.ConfigFile),
				slog.String("error", err.Error()),
			)
		}
	}

	if cfg.LoggingConfig, err = loadLoggingConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации логирования", slog.String("error", err.Error()))
		cfg.LoggingConfig = getDefaultLoggingConfig()
	}

	if cfg.MetricsConfig, err = loadMetricsConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации метрик", slog.String("error", err.Error()))
		cfg.MetricsConfig = getDefaultMetricsConfig()
	}
	if cfg.MetricsConfig.Enabled {
		if valErr := validateMetricsConfig(cfg.MetricsConfig); valErr != nil {
			l.Warn("невалидная конфигурация метрик, метрики отключены",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.MetricsConfig.Enabled = false
		}
	}

	if cfg.TracingConfig, err = loadTracingConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации трейсинга", slog.String("error", err.Error()))
		cfg.TracingConfig = getDefaultTracingConfig()
	}
	if cfg.TracingConfig.Enabled {
		if valErr := validateTracingConfig(cfg.TracingConfig); valErr != nil {
			l.Warn("невалидная конфигурация трейсинга, трейсинг отключён",
				slog.String("error", valErr.Error()),
				slog.String("reason", "validation_failed"),
			)
			cfg.TracingConfig.Enabled = false
		}
	}

	if cfg.IOConfig, err = loadIOConfig(l, &cfg); err != nil {
		l.Warn("ошибка загрузки конфигурации ввода-вывода", slog.String("error", err.Error()))
		cfg.IOConfig = getDefaultIOConfig()
	}
	// Файловая система и размер чанка влияют на результат команды: ошибка фатальна.
	if valErr := validateIOConfig(cfg.IOConfig); valErr != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"невалидная конфигурация ввода-вывода", valErr)
	}

	l.Debug("конфигурация загружена",
		slog.String("command", cfg.Command),
		slog.Int("args", len(cfg.Args)),
		slog.String("output_format", cfg.OutputFormat),
	)
	return &cfg, nil
}

// loadAppConfig читает YAML-файл приложения.
func loadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
	}

	var appConfig AppConfig
	if err = yaml.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
	}
	return &appConfig, nil
}

// getSlog создаёт bootstrap-логгер для загрузки конфигурации.
// Пишет в stderr: stdout занят результатом команды.
func getSlog(logLevel string) *slog.Logger {
	programLevel := new(slog.LevelVar)
	switch logLevel {
	case "debug":
		programLevel.Set(slog.LevelDebug)
	case "warn":
		programLevel.Set(slog.LevelWarn)
	case "error":
		programLevel.Set(slog.LevelError)
	default:
		programLevel.Set(slog.LevelInfo)
	}

	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel}))
	return l.With(slog.Group("app", slog.String("version", constants.Version)))
}
