// Package jsonsafe приводит значения, которые encoding/json не умеет кодировать,
// к JSON-совместимому виду через пользовательскую функцию-хук.
package jsonsafe

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// Hook переводит значение, не представимое в JSON, в строку.
type Hook func(v any) (string, error)

var (
	jsonMarshalerType = reflect.TypeFor[json.Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// Serialize является хуком по умолчанию для значений вне JSON:
//   - комплексные числа: "(1+2i)"
//   - NaN и бесконечности: "NaN", "+Inf", "-Inf"
//   - []byte: текст UTF-8 либо base64, если байты не являются валидным UTF-8
//   - fmt.Stringer: результат String()
//
// Каналы, функции и прочие значения дают JSON.SERIALIZE_FAILED.
func Serialize(v any) (string, error) {
	switch x := v.(type) {
	case complex64:
		return strconv.FormatComplex(complex128(x), 'g', -1, 64), nil
	case complex128:
		return strconv.FormatComplex(x, 'g', -1, 128), nil
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case []byte:
		if utf8.Valid(x) {
			return string(x), nil
		}
		return base64.StdEncoding.EncodeToString(x), nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", apperrors.Serialization(fmt.Sprintf("значение типа %T не сериализуется в JSON", v), nil)
}

func formatFloat(f float64, bits int) (string, error) {
	switch {
	case math.IsNaN(f):
		return "NaN", nil
	case math.IsInf(f, 1):
		return "+Inf", nil
	case math.IsInf(f, -1):
		return "-Inf", nil
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

// Normalize обходит v и заменяет каждое значение, которое encoding/json не кодирует,
// строкой hook(value). Структуры превращаются в map с учётом тегов json
// ("-", переименование, omitempty). Результат пригоден для json.Marshal.
// Циклическая ссылка даёт JSON.SERIALIZE_FAILED.
func Normalize(v any, hook Hook) (any, error) {
	if hook == nil {
		hook = Serialize
	}
	if v == nil {
		return nil, nil
	}
	w := &walker{hook: hook, seen: make(map[visit]struct{})}
	return w.normalize(reflect.ValueOf(v))
}

// visit идентифицирует указатель, map или срез на текущем пути обхода.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

type walker struct {
	hook Hook
	seen map[visit]struct{}
}

// enter отмечает rv как посещённое на текущем пути. Повторный вход означает цикл.
func (w *walker) enter(rv reflect.Value) (func(), error) {
	key := visit{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		key.len = rv.Len()
	}
	if _, ok := w.seen[key]; ok {
		return nil, apperrors.Serialization(
			fmt.Sprintf("циклическая ссылка в значении типа %s", rv.Type()), nil)
	}
	w.seen[key] = struct{}{}
	return func() { delete(w.seen, key) }, nil
}

func (w *walker) callHook(rv reflect.Value) (any, error) {
	s, err := w.hook(rv.Interface())
	if err != nil {
		return nil, apperrors.Serialization(fmt.Sprintf("хук не смог сериализовать значение типа %s", rv.Type()), err)
	}
	return s, nil
}

func (w *walker) normalize(rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	t := rv.Type()
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil
		}
		if _, err := json.Marshal(rv.Interface()); err != nil {
			return w.callHook(rv)
		}
		return rv.Interface(), nil
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Interface(), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return w.callHook(rv)
		}
		return rv.Interface(), nil
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return w.normalize(rv.Elem())
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		leave, err := w.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.normalize(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return rv.Interface(), nil
		}
		leave, err := w.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.normalizeList(rv)
	case reflect.Array:
		return w.normalizeList(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		leave, err := w.enter(rv)
		if err != nil {
			return nil, err
		}
		defer leave()
		return w.normalizeMap(rv)
	case reflect.Struct:
		out := make(map[string]any, t.NumField())
		if err := w.normalizeStruct(rv, out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		// complex, chan, func, unsafe.Pointer
		return w.callHook(rv)
	}
}

func (w *walker) normalizeList(rv reflect.Value) (any, error) {
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		v, err := w.normalize(rv.Index(i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (w *walker) normalizeMap(rv reflect.Value) (any, error) {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := w.mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		v, err := w.normalize(iter.Value())
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (w *walker) mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", apperrors.Serialization("не удалось сериализовать ключ словаря", err)
		}
		return string(b), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	s, err := w.hook(k.Interface())
	if err != nil {
		return "", apperrors.Serialization(fmt.Sprintf("хук не смог сериализовать ключ типа %s", k.Type()), err)
	}
	return s, nil
}

// normalizeStruct раскрывает встроенные структуры так же, как encoding/json:
// поля неэкспортируемой встроенной структуры тоже поднимаются наверх.
func (w *walker) normalizeStruct(rv reflect.Value, out map[string]any) error {
	t := rv.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}

		fv := rv.Field(i)
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if !f.IsExported() && ft.Kind() != reflect.Struct {
				continue
			}
			if ft.Kind() == reflect.Struct {
				if err := w.embedded(fv, out); err != nil {
					return err
				}
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		v, err := w.normalize(fv)
		if err != nil {
			return err
		}
		out[name] = v
	}
	return nil
}

func (w *walker) embedded(fv reflect.Value, out map[string]any) error {
	if fv.Kind() != reflect.Pointer {
		return w.normalizeStruct(fv, out)
	}
	if fv.IsNil() {
		return nil
	}
	leave, err := w.enter(fv)
	if err != nil {
		return err
	}
	defer leave()
	return w.normalizeStruct(fv.Elem(), out)
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}

// isEmptyValue повторяет правило omitempty из encoding/json.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
