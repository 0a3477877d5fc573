package config

import (
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/textkit/pkg/filer"
)

// IOConfig содержит настройки файловых команд.
type IOConfig struct {
	// Encoding: имя кодировки текста (utf-8, utf-8-sig, windows-1251, koi8-r...).
	Encoding string `yaml:"encoding" env:"TK_ENCODING" env-default:"utf-8"`

	// FSType: disk или memory.
	FSType string `yaml:"fsType" env:"TK_FS_TYPE" env-default:"disk"`

	// BasePath ограничивает дисковую файловую систему поддеревом.
	BasePath string `yaml:"basePath" env:"TK_BASE_PATH"`

	// Обработка строк при чтении и записи.
	Strip         bool `yaml:"strip" env:"TK_STRIP" env-default:"false"`
	SkipEmpty     bool `yaml:"skipEmpty" env:"TK_SKIP_EMPTY" env-default:"false"`
	KeepLineBreak bool `yaml:"keepLineBreak" env:"TK_KEEP_LINE_BREAK" env-default:"false"`

	// RemoveFirst: append-lines удаляет файл перед добавлением.
	RemoveFirst bool `yaml:"removeFirst" env:"TK_REMOVE_FIRST" env-default:"false"`

	// ChunkSize: размер чанка jsonl-chunks.
	ChunkSize int `yaml:"chunkSize" env:"TK_CHUNK_SIZE" env-default:"100"`

	// SchemaPath: JSON Schema для проверки записей JSONL.
	SchemaPath string `yaml:"schema" env:"TK_SCHEMA"`

	// Параметры list-dir.
	Suffix    string `yaml:"suffix" env:"TK_SUFFIX"`
	Recursive bool   `yaml:"recursive" env:"TK_RECURSIVE" env-default:"false"`
	FilesOnly bool   `yaml:"filesOnly" env:"TK_FILES_ONLY" env-default:"false"`
}

// FileSystemConfig переводит настройки в конфигурацию filer.
func (c *IOConfig) FileSystemConfig() (filer.Config, error) {
	fsType, err := filer.ParseFSType(c.FSType)
	if err != nil {
		return filer.Config{}, err
	}
	return filer.Config{Type: fsType, BasePath: c.BasePath}, nil
}

func getDefaultIOConfig() *IOConfig {
	return &IOConfig{
		Encoding:  "utf-8",
		FSType:    "disk",
		ChunkSize: 100,
	}
}

func loadIOConfig(l *slog.Logger, cfg *Config) (*IOConfig, error) {
	if cfg.AppConfig != nil && (cfg.AppConfig.IO != IOConfig{}) {
		ioConfig := &cfg.AppConfig.IO
		if err := cleanenv.ReadEnv(ioConfig); err != nil {
			return nil, err
		}
		l.Debug("IO конфигурация загружена из AppConfig",
			slog.String("fs_type", ioConfig.FSType),
			slog.String("encoding", ioConfig.Encoding),
		)
		return ioConfig, nil
	}

	ioConfig := getDefaultIOConfig()
	if err := cleanenv.ReadEnv(ioConfig); err != nil {
		return nil, err
	}
	return ioConfig, nil
}

func validateIOConfig(c *IOConfig) error {
	fsCfg, err := c.FileSystemConfig()
	if err != nil {
		return err
	}
	if err = filer.ValidateConfig(fsCfg); err != nil {
		return err
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("io: chunk size должен быть положительным, получено: %d", c.ChunkSize)
	}
	return nil
}
