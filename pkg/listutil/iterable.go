package listutil

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// ToSlice материализует итерируемое значение в []any.
//
// Поддерживаются срезы, массивы, каналы (читаются до закрытия),
// iter.Seq[any] и iter.Seq[string]. Строка отклоняется с ARG.INVALID:
// её легко спутать со списком односимвольных элементов.
// Любое другое значение даёт TYPE.MISMATCH.
func ToSlice(v any) ([]any, error) {
	switch s := v.(type) {
	case nil:
		return nil, apperrors.TypeMismatch("nil не является итерируемым значением")
	case string:
		return nil, apperrors.InvalidArgument("ожидалась последовательность, получена строка")
	case []byte:
		return nil, apperrors.InvalidArgument("ожидалась последовательность, получен []byte")
	case []any:
		return s, nil
	case iter.Seq[any]:
		var out []any
		for e := range s {
			out = append(out, e)
		}
		return out, nil
	case iter.Seq[string]:
		var out []any
		for e := range s {
			out = append(out, e)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	case reflect.Chan:
		if rv.Type().ChanDir()&reflect.RecvDir == 0 {
			return nil, apperrors.TypeMismatch("канал только для записи не итерируется")
		}
		var out []any
		for {
			e, ok := rv.Recv()
			if !ok {
				return out, nil
			}
			out = append(out, e.Interface())
		}
	default:
		return nil, apperrors.TypeMismatch(fmt.Sprintf("значение типа %T не является итерируемым", v))
	}
}

// Strings материализует v и проверяет, что каждый элемент является строкой.
func Strings(v any) ([]string, error) {
	items, err := ToSlice(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, apperrors.TypeMismatch(fmt.Sprintf("элемент %d имеет тип %T, ожидалась строка", i, item))
		}
		out[i] = s
	}
	return out, nil
}
