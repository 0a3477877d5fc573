// Package filer предоставляет единый интерфейс файловой системы
// с реализациями на диске и в памяти. Файловые хендлы textkit работают
// только через этот интерфейс.
package filer

import (
	"io"
	"os"
)

// FileSystem определяет набор файловых операций, которые нужны текстовым кодекам.
type FileSystem interface {
	// Open открывает файл только для чтения.
	Open(name string) (File, error)

	// OpenFile открывает файл с флагами os.O_*. Поддерживаются
	// O_RDONLY, O_WRONLY, O_RDWR, O_CREATE, O_TRUNC, O_APPEND и O_EXCL.
	OpenFile(name string, flag int, perm os.FileMode) (File, error)

	// Remove удаляет файл или пустую директорию.
	Remove(name string) error

	// Stat возвращает информацию о файле или директории.
	Stat(name string) (os.FileInfo, error)

	// ReadDir возвращает записи директории, отсортированные по имени.
	ReadDir(name string) ([]os.DirEntry, error)

	// MkdirAll создаёт директорию вместе с родительскими.
	MkdirAll(path string, perm os.FileMode) error

	// ReadFile читает файл целиком.
	ReadFile(name string) ([]byte, error)

	// WriteFile перезаписывает файл, создавая его при необходимости.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// IsNotExist сообщает, что ошибка означает отсутствие файла.
	IsNotExist(err error) bool

	// Type возвращает тип файловой системы.
	Type() FSType
}

// File представляет открытый файловый дескриптор.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	io.Seeker

	// Name возвращает путь, переданный в Open или OpenFile.
	Name() string

	// Stat возвращает FileInfo открытого файла.
	Stat() (os.FileInfo, error)

	// Sync сбрасывает содержимое файла в хранилище.
	Sync() error

	// Truncate изменяет размер файла.
	Truncate(size int64) error
}
