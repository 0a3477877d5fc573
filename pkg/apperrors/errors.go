// Package apperrors предоставляет структурированные ошибки приложения.
// Переименован из errors чтобы избежать конфликта со стандартной библиотекой.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в иерархическом формате: CATEGORY.SPECIFIC_ERROR.
// Позволяет grep по категориям: `grep "IO\."` для всех ошибок ввода-вывода.
const (
	// Category: IO: ошибки файловых операций.
	ErrNotFound = "IO.NOT_FOUND"
	ErrIO       = "IO.FAILED"

	// Category: ARG: неверная форма аргументов.
	ErrInvalidArgument = "ARG.INVALID"

	// Category: TYPE: вход не итерируемый или элемент не того типа.
	ErrTypeMismatch = "TYPE.MISMATCH"

	// Category: JSON: ошибки сериализации и разбора записей.
	ErrSerialization = "JSON.SERIALIZE_FAILED"
	ErrDecode        = "JSON.DECODE_FAILED"

	// Category: INI: секция или ключ отсутствуют в прочитанной конфигурации.
	ErrINIKeyNotFound = "INI.NOT_FOUND"

	// Category: CONFIG: ошибки загрузки и парсинга конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// Category: COMMAND: ошибки выполнения команд.
	ErrCommandNotFound = "COMMAND.NOT_FOUND"
	ErrCommandExec     = "COMMAND.EXEC_FAILED"

	// Category: OUTPUT: ошибки форматирования вывода.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// AppError представляет структурированную ошибку приложения.
// Реализует error interface и поддерживает wrapping через Unwrap().
//
// Пример использования:
//
//	return apperrors.NewAppError(apperrors.ErrNotFound,
//	    "файл не найден: "+path,
//	    err)
type AppError struct {
	// Code: машиночитаемый код ошибки в формате CATEGORY.SPECIFIC.
	Code string `json:"code"`

	// Message: человекочитаемое описание ошибки.
	Message string `json:"message"`

	// Cause: wrapped оригинальная ошибка.
	// Не сериализуется в JSON.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает wrapped ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду, чтобы errors.Is(err, &AppError{Code: ...}) работал
// без сравнения сообщений.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewAppError создаёт новый AppError с заданным кодом, сообщением и причиной.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NotFound создаёт ошибку IO.NOT_FOUND для пути.
// cause должен оборачивать fs.ErrNotExist, чтобы errors.Is(err, fs.ErrNotExist) оставался true.
func NotFound(path string, cause error) *AppError {
	return NewAppError(ErrNotFound, "файл не найден: "+path, cause)
}

// InvalidArgument создаёт ошибку ARG.INVALID.
func InvalidArgument(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

// TypeMismatch создаёт ошибку TYPE.MISMATCH.
func TypeMismatch(message string) *AppError {
	return NewAppError(ErrTypeMismatch, message, nil)
}

// Serialization создаёт ошибку JSON.SERIALIZE_FAILED.
func Serialization(message string, cause error) *AppError {
	return NewAppError(ErrSerialization, message, cause)
}

// Code возвращает код первой AppError в цепочке или пустую строку.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode проверяет, что в цепочке err есть AppError с указанным кодом.
func IsCode(err error, code string) bool {
	return errors.Is(err, &AppError{Code: code})
}
