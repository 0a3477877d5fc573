package filer

import "fmt"

// New создаёт файловую систему по опциям.
func New(options ...Option) (FileSystem, error) {
	return NewFileSystem(NewConfig(options...))
}

// NewFileSystem создаёт файловую систему по конфигурации.
func NewFileSystem(config Config) (FileSystem, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	switch config.Type {
	case DiskFS:
		return NewDiskFileSystem(config)
	case MemoryFS:
		root := config.BasePath
		if root == "" {
			root = DefaultMemoryRoot
		}
		return NewMemoryFileSystem(root), nil
	default:
		return nil, fmt.Errorf("%w: неподдерживаемый тип файловой системы: %s", ErrInvalidConfig, config.Type)
	}
}

// ValidateConfig проверяет корректность конфигурации.
func ValidateConfig(config Config) error {
	switch config.Type {
	case DiskFS, MemoryFS:
	default:
		return fmt.Errorf("%w: неподдерживаемый тип файловой системы: %s", ErrInvalidConfig, config.Type)
	}
	if config.BasePath != "" && hasControlChars(config.BasePath) {
		return fmt.Errorf("%w: недопустимый базовый путь %q", ErrInvalidConfig, config.BasePath)
	}
	return nil
}
