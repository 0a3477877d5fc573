// Package logging предоставляет интерфейс и реализации для структурированного логирования.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Основная реализация: SlogAdapter поверх log/slog.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("Файл открыт", "path", path, "mode", "append")
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	With(args ...any) Logger
}
