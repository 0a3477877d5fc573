package filer

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Предопределённые ошибки модуля filer.
var (
	// ErrInvalidPath возвращается при недопустимом пути.
	ErrInvalidPath = errors.New("недопустимый путь")

	// ErrPathTraversal возвращается при попытке выйти за пределы базовой директории.
	ErrPathTraversal = errors.New("попытка выхода за пределы файловой системы")

	// ErrFileClosed возвращается при операции с закрытым файлом.
	ErrFileClosed = errors.New("файл закрыт")

	// ErrReadOnlyFile возвращается при записи в файл, открытый только для чтения.
	ErrReadOnlyFile = errors.New("файл открыт только для чтения")

	// ErrWriteOnlyFile возвращается при чтении файла, открытого только для записи.
	ErrWriteOnlyFile = errors.New("файл открыт только для записи")

	// ErrUnsupportedOperation возвращается при неподдерживаемой операции.
	ErrUnsupportedOperation = errors.New("неподдерживаемая операция")

	// ErrNotEmpty возвращается при удалении непустой директории.
	ErrNotEmpty = errors.New("директория не пуста")

	// ErrIsDir возвращается при открытии директории как файла.
	ErrIsDir = errors.New("это директория")

	// ErrInvalidConfig возвращается при недопустимой конфигурации.
	ErrInvalidConfig = errors.New("недопустимая конфигурация")
)

// ErrorSeverity представляет уровень серьёзности ошибки.
type ErrorSeverity int

const (
	// SeverityWarning: ожидаемая ситуация, например отсутствие файла.
	SeverityWarning ErrorSeverity = iota + 1
	// SeverityError: ошибка операции.
	SeverityError
)

// String возвращает строковое представление уровня серьёзности.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FileSystemError добавляет к ошибке операцию, путь и тип файловой системы.
type FileSystemError struct {
	Op       string
	Path     string
	Err      error
	FSType   FSType
	Severity ErrorSeverity
}

// Error реализует интерфейс error.
func (e *FileSystemError) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		parts = append(parts, "операция: "+e.Op)
	}
	if e.Path != "" {
		parts = append(parts, "путь: "+e.Path)
	}
	parts = append(parts, "тип ФС: "+e.FSType.String())
	if e.Err != nil {
		parts = append(parts, "ошибка: "+e.Err.Error())
	}
	return strings.Join(parts, ", ")
}

// Unwrap возвращает исходную ошибку для errors.Is и errors.As.
func (e *FileSystemError) Unwrap() error {
	return e.Err
}

// WrapError оборачивает err в FileSystemError. nil остаётся nil.
func WrapError(op, path string, err error, fsType FSType) error {
	if err == nil {
		return nil
	}
	severity := SeverityError
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrExist) {
		severity = SeverityWarning
	}
	return &FileSystemError{Op: op, Path: path, Err: err, FSType: fsType, Severity: severity}
}

// ValidatePath проверяет путь внутри базовой директории:
// путь должен быть непустым, относительным, без ".." и управляющих символов.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: пустой путь", ErrInvalidPath)
	}
	if hasControlChars(path) {
		return fmt.Errorf("%w: недопустимый символ в пути: %q", ErrInvalidPath, path)
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: абсолютный путь не разрешён: %s", ErrInvalidPath, path)
	}
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return fmt.Errorf("%w: обнаружен '..' в пути: %s", ErrPathTraversal, path)
		}
	}
	return nil
}

func hasControlChars(path string) bool {
	for _, r := range path {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
