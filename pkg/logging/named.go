package logging

import (
	"io"
	"os"
)

// LoggerNameKey: атрибут, которым помечаются именованные логгеры.
const LoggerNameKey = "logger"

// GetLogger возвращает логгер уровня debug с выводом в stderr, помеченный именем name.
// Каждая запись содержит время, имя логгера и сообщение.
func GetLogger(name string) Logger {
	return getLoggerWithWriter(name, os.Stderr)
}

func getLoggerWithWriter(name string, w io.Writer) Logger {
	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	return Named(NewLoggerWithWriter(cfg, w), name)
}

// Named добавляет к l атрибут logger=name. Пустое имя возвращает l без изменений.
func Named(l Logger, name string) Logger {
	if l == nil {
		l = NewNopLogger()
	}
	if name == "" {
		return l
	}
	return l.With(LoggerNameKey, name)
}
