package fileio

import (
	"errors"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// JSONLExt: ожидаемое расширение файлов JSON Lines.
const JSONLExt = ".jsonl"

// JSONLineFile: хендл файла JSON Lines, одна запись T на строку.
// Режимы переключаются так же, как у TextFile; чтение несуществующего
// файла всегда даёт IO.NOT_FOUND.
type JSONLineFile[T any] struct {
	*TextFile
	schema *jsonschema.Schema
}

// NewJSONLineFile создаёт хендл файла JSON Lines.
func NewJSONLineFile[T any](path string, opts ...Option) (*JSONLineFile[T], error) {
	tf, err := NewTextFile(path, opts...)
	if err != nil {
		return nil, err
	}
	sch, err := tf.opts.compileSchema()
	if err != nil {
		return nil, err
	}
	return &JSONLineFile[T]{TextFile: tf, schema: sch}, nil
}

// warnJSONLExt пишет предупреждение, если имя файла не оканчивается на .jsonl.
func (o *options) warnJSONLExt(path string) {
	if !strings.EqualFold(filepath.Ext(path), JSONLExt) {
		o.logger.Warn("Файл JSON Lines без расширения .jsonl", "path", path)
	}
}

// ReadRecords лениво читает записи с начала файла. Пустые строки пропускаются.
// Первая ошибка передаётся потребителю и завершает последовательность.
func (f *JSONLineFile[T]) ReadRecords() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if err := f.switchMode(ModeRead); err != nil {
			yield(zero, err)
			return
		}
		r := f.d.reader
		for lineNo := 1; ; lineNo++ {
			line, err := r.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				yield(zero, apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать файл: "+f.path, err))
				return
			}
			if strings.TrimFunc(line, isSpace) != "" {
				rec, derr := decodeRecord[T](f.path, lineNo, line, f.schema)
				if derr != nil {
					yield(zero, derr)
					return
				}
				if !yield(rec, nil) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}

// ReadAll читает все записи файла.
func (f *JSONLineFile[T]) ReadAll() ([]T, error) {
	records := []T{}
	for rec, err := range f.ReadRecords() {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadAllOr читает все записи или возвращает def, если файла нет.
func (f *JSONLineFile[T]) ReadAllOr(def []T) ([]T, error) {
	records, err := f.ReadAll()
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return def, nil
	}
	return records, err
}

// WriteRecord пишет запись одной строкой. Файл обрезается только при переходе в запись,
// поэтому последовательные вызовы сохраняют все записи.
func (f *JSONLineFile[T]) WriteRecord(rec T) error {
	line, err := encodeRecord(rec, f.opts.serializer)
	if err != nil {
		return err
	}
	return f.writeIn(ModeWrite, line+"\n")
}

// WriteRecords сериализует все записи и только затем пишет их в файл.
func (f *JSONLineFile[T]) WriteRecords(records []T) error {
	lines, err := encodeRecords(records, f.opts.serializer)
	if err != nil {
		return err
	}
	return f.writeIn(ModeWrite, lines...)
}

// AppendRecord дописывает запись одной строкой в конец файла.
func (f *JSONLineFile[T]) AppendRecord(rec T) error {
	line, err := encodeRecord(rec, f.opts.serializer)
	if err != nil {
		return err
	}
	return f.writeIn(ModeAppend, line+"\n")
}

// AppendRecords дописывает записи по одной. Добавление не атомарно:
// запись, которую не удалось сериализовать, прерывает операцию,
// а предыдущие остаются в файле.
func (f *JSONLineFile[T]) AppendRecords(records []T) error {
	for _, rec := range records {
		if err := f.AppendRecord(rec); err != nil {
			return err
		}
	}
	return nil
}
