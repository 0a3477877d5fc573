package listutil

import (
	"fmt"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// ListToMap строит словарь записей по значению поля key.
// Запись без поля key даёт TYPE.MISMATCH. При совпадении ключей побеждает последняя запись.
func ListToMap(items []map[string]any, key string) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(items))
	for i, item := range items {
		v, ok := item[key]
		if !ok {
			return nil, apperrors.TypeMismatch(fmt.Sprintf("в элементе %d нет ключа %q", i, key))
		}
		out[fmt.Sprint(v)] = item
	}
	return out, nil
}

// IndexBy строит словарь элементов по ключу, вычисленному функцией key.
func IndexBy[K comparable, T any](items []T, key func(T) K) map[K]T {
	out := make(map[K]T, len(items))
	for _, item := range items {
		out[key(item)] = item
	}
	return out
}
