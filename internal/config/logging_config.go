package config

import (
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/textkit/pkg/logging"
)

// LoggingConfig содержит настройки логирования.
// Значения по умолчанию совпадают с logging.DefaultConfig().
type LoggingConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level" env:"TK_LOG_LEVEL" env-default:"info"`

	// Format: json или text.
	Format string `yaml:"format" env:"TK_LOG_FORMAT" env-default:"text"`

	// Output: stderr или file.
	Output string `yaml:"output" env:"TK_LOG_OUTPUT" env-default:"stderr"`

	// FilePath: путь к файлу логов при output=file.
	FilePath string `yaml:"filePath" env:"TK_LOG_FILE_PATH"`

	// MaxSize: размер файла в MB до ротации.
	MaxSize int `yaml:"maxSize" env:"TK_LOG_MAX_SIZE" env-default:"100"`

	MaxBackups int `yaml:"maxBackups" env:"TK_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge: в днях.
	MaxAge int `yaml:"maxAge" env:"TK_LOG_MAX_AGE" env-default:"7"`

	// Compress: при чтении только из YAML значение false перекрывается
	// env-default, если TK_LOG_COMPRESS не задан.
	Compress bool `yaml:"compress" env:"TK_LOG_COMPRESS" env-default:"true"`
}

// loadLoggingConfig берёт секцию logging из AppConfig или значения по умолчанию
// и применяет поверх переменные TK_LOG_*.
func loadLoggingConfig(l *slog.Logger, cfg *Config) (*LoggingConfig, error) {
	if cfg.AppConfig != nil && (cfg.AppConfig.Logging != LoggingConfig{}) {
		loggingConfig := &cfg.AppConfig.Logging
		if err := cleanenv.ReadEnv(loggingConfig); err != nil {
			return nil, err
		}
		l.Debug("Logging конфигурация загружена из AppConfig",
			slog.String("level", loggingConfig.Level),
			slog.String("format", loggingConfig.Format),
		)
		return loggingConfig, nil
	}

	loggingConfig := getDefaultLoggingConfig()
	if err := cleanenv.ReadEnv(loggingConfig); err != nil {
		return nil, err
	}
	return loggingConfig, nil
}

func getDefaultLoggingConfig() *LoggingConfig {
	d := logging.DefaultConfig()
	return &LoggingConfig{
		Level:      d.Level,
		Format:     d.Format,
		Output:     d.Output,
		FilePath:   d.FilePath,
		MaxSize:    d.MaxSize,
		MaxBackups: d.MaxBackups,
		MaxAge:     d.MaxAge,
		Compress:   d.Compress,
	}
}
