// Package config содержит конфигурацию CLI textkit.
//
// Источники в порядке приоритета: переменные окружения TK_*, YAML-файл
// из TK_CONFIG, значения по умолчанию.
package config

import (
	"log/slog"
)

// Переменные окружения верхнего уровня.
const (
	EnvCommand      = "TK_COMMAND"
	EnvConfigFile   = "TK_CONFIG"
	EnvOutputFormat = "TK_OUTPUT_FORMAT"
)

// AppConfig представляет YAML-файл приложения (TK_CONFIG).
// Каждая секция может быть переопределена переменными окружения.
type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	IO      IOConfig      `yaml:"io"`
}

// Config хранит настройки запуска команды.
type Config struct {
	// Command: имя команды из TK_COMMAND или первого аргумента CLI.
	Command string `env:"TK_COMMAND" env-default:""`

	// Args: позиционные аргументы команды.
	Args []string

	// ConfigFile: путь к YAML-файлу приложения.
	ConfigFile string `env:"TK_CONFIG" env-default:""`

	// OutputFormat: "text" или "json".
	OutputFormat string `env:"TK_OUTPUT_FORMAT" env-default:"text"`

	// Logger: bootstrap-логгер загрузки конфигурации.
	Logger *slog.Logger

	// AppConfig: содержимое TK_CONFIG, nil если файл не задан или не прочитан.
	AppConfig *AppConfig

	LoggingConfig *LoggingConfig
	MetricsConfig *MetricsConfig
	TracingConfig *TracingConfig
	IOConfig      *IOConfig
}

// Arg возвращает i-й позиционный аргумент или пустую строку.
func (cfg *Config) Arg(i int) string {
	if cfg == nil || i < 0 || i >= len(cfg.Args) {
		return ""
	}
	return cfg.Args[i]
}
