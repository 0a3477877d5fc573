package fileio

import (
	"encoding/json"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// ReadJSON читает файл с одним JSON-документом.
func ReadJSON[T any](path string, opts ...Option) (T, error) {
	var v T
	text, err := ReadFile(path, opts...)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return v, apperrors.NewAppError(apperrors.ErrDecode, "файл не является JSON: "+path, err)
	}
	return v, nil
}

// ReadJSONOr читает JSON-документ или возвращает def, если файла нет.
func ReadJSONOr[T any](path string, def T, opts ...Option) (T, error) {
	v, err := ReadJSON[T](path, opts...)
	return orDefault(v, err, def)
}

// WriteJSON перезаписывает файл JSON-документом v в одну строку.
// Значения вне JSON обрабатываются хуком WithSerializer.
func WriteJSON(path string, v any, opts ...Option) error {
	o := newOptions(opts)
	text, err := encodeRecord(v, o.serializer)
	if err != nil {
		return err
	}
	return WriteFile(path, text, opts...)
}
