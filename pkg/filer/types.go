package filer

import (
	"fmt"
	"os"
	"strings"
)

// FSType представляет тип файловой системы.
type FSType int

const (
	// DiskFS: файловая система на диске.
	DiskFS FSType = iota
	// MemoryFS: файловая система в памяти.
	MemoryFS
)

// String возвращает строковое представление типа файловой системы.
func (t FSType) String() string {
	switch t {
	case DiskFS:
		return "disk"
	case MemoryFS:
		return "memory"
	default:
		return "unknown"
	}
}

// ParseFSType разбирает имя типа из конфигурации ("disk" или "memory").
// Пустая строка означает DiskFS.
func ParseFSType(s string) (FSType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disk":
		return DiskFS, nil
	case "memory", "mem":
		return MemoryFS, nil
	default:
		return DiskFS, fmt.Errorf("%w: неизвестный тип файловой системы %q", ErrInvalidConfig, s)
	}
}

// Config содержит параметры создания файловой системы.
type Config struct {
	// Type определяет тип файловой системы.
	Type FSType

	// BasePath ограничивает DiskFS поддеревом. Пустое значение снимает ограничение:
	// пути передаются в ОС как есть. Для MemoryFS это корень, от которого
	// разрешаются относительные пути.
	BasePath string
}

// DefaultConfig возвращает конфигурацию по умолчанию: диск без ограничения корнем.
func DefaultConfig() Config {
	return Config{Type: DiskFS}
}

// Права доступа по умолчанию.
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// DefaultMemoryRoot: корень MemoryFS, если BasePath не задан.
const DefaultMemoryRoot = "/"
