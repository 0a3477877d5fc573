package fileio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/jsonsafe"
)

// encodeRecord кодирует v в одну строку JSON без завершающего '\n'.
// Не-ASCII символы и символы HTML пишутся как есть. Если encoding/json
// не справляется, значение приводится через hook; без хука это JSON.SERIALIZE_FAILED.
func encodeRecord(v any, hook jsonsafe.Hook) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		if hook == nil {
			return "", apperrors.Serialization(fmt.Sprintf("значение типа %T не сериализуется в JSON", v), err)
		}
		normalized, nerr := jsonsafe.Normalize(v, hook)
		if nerr != nil {
			return "", nerr
		}
		buf.Reset()
		if err := enc.Encode(normalized); err != nil {
			return "", apperrors.Serialization("значение не сериализуется в JSON даже после хука", err)
		}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// encodeRecords кодирует все записи до любой записи в файл.
func encodeRecords[T any](records []T, hook jsonsafe.Hook) ([]string, error) {
	lines := make([]string, len(records))
	for i, rec := range records {
		line, err := encodeRecord(rec, hook)
		if err != nil {
			return nil, fmt.Errorf("запись %d: %w", i, err)
		}
		lines[i] = line + "\n"
	}
	return lines, nil
}

// decodeRecord разбирает одну строку JSON Lines и при наличии схемы проверяет её.
func decodeRecord[T any](path string, lineNo int, line string, sch *jsonschema.Schema) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return rec, apperrors.NewAppError(apperrors.ErrDecode,
			fmt.Sprintf("%s:%d: строка не является JSON", path, lineNo), err)
	}
	if sch != nil {
		inst, err := jsonschema.UnmarshalJSON(strings.NewReader(line))
		if err != nil {
			return rec, apperrors.NewAppError(apperrors.ErrDecode,
				fmt.Sprintf("%s:%d: строка не является JSON", path, lineNo), err)
		}
		if err := sch.Validate(inst); err != nil {
			return rec, apperrors.Serialization(
				fmt.Sprintf("%s:%d: запись не соответствует схеме", path, lineNo), err)
		}
	}
	return rec, nil
}
