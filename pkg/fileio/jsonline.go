package fileio

import (
	"iter"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/listutil"
)

// ReadJSONLines читает все записи файла JSON Lines.
func ReadJSONLines[T any](path string, opts ...Option) (records []T, err error) {
	f, err := NewJSONLineFile[T](path, opts...)
	if err != nil {
		return nil, err
	}
	defer closeInto(&err, f)
	return f.ReadAll()
}

// ReadJSONLinesOr читает записи или возвращает def, если файла нет.
func ReadJSONLinesOr[T any](path string, def []T, opts ...Option) ([]T, error) {
	records, err := ReadJSONLines[T](path, opts...)
	return orDefault(records, err, def)
}

// ReadJSONLinesLazy лениво читает записи. Каждый запуск range открывает файл заново.
func ReadJSONLinesLazy[T any](path string, opts ...Option) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		f, err := NewJSONLineFile[T](path, opts...)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		defer f.Close() //nolint:errcheck // дескриптор только для чтения
		for rec, err := range f.ReadRecords() {
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// ReadJSONLinesLazyOr работает как ReadJSONLinesLazy, но для несуществующего файла выдаёт элементы def.
func ReadJSONLinesLazyOr[T any](path string, def []T, opts ...Option) iter.Seq2[T, error] {
	return lazyOr(ReadJSONLinesLazy[T](path, opts...), def)
}

// ReadJSONLineChunksLazy лениво читает записи группами по n.
func ReadJSONLineChunksLazy[T any](path string, n int, opts ...Option) (iter.Seq2[[]T, error], error) {
	return listutil.ChunkSeq2(ReadJSONLinesLazy[T](path, opts...), n)
}

// ReadJSONLineChunks читает все записи, сгруппированные по n.
func ReadJSONLineChunks[T any](path string, n int, opts ...Option) ([][]T, error) {
	chunks, err := ReadJSONLineChunksLazy[T](path, n, opts...)
	if err != nil {
		return nil, err
	}
	out := [][]T{}
	for chunk, err := range chunks {
		if err != nil {
			return nil, err
		}
		out = append(out, chunk)
	}
	return out, nil
}

// WriteJSONLines перезаписывает файл записями, по одной на строку.
// Все записи сериализуются до открытия файла: при ошибке файл не меняется.
// Пустой список даёт ARG.INVALID.
func WriteJSONLines[T any](path string, records []T, opts ...Option) (err error) {
	if len(records) == 0 {
		return apperrors.InvalidArgument("нет записей для записи")
	}
	o := newOptions(opts)
	o.warnJSONLExt(path)
	lines, err := encodeRecords(records, o.serializer)
	if err != nil {
		return err
	}

	f, err := NewTextFile(path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	return f.writeIn(ModeWrite, lines...)
}

// WriteJSONLinesFrom принимает записи как произвольное итерируемое значение.
// Строка вместо списка даёт ARG.INVALID, неитерируемое значение даёт TYPE.MISMATCH.
func WriteJSONLinesFrom(path string, records any, opts ...Option) error {
	items, err := listutil.ToSlice(records)
	if err != nil {
		return err
	}
	return WriteJSONLines(path, items, opts...)
}

// AppendJSONLine дописывает одну запись.
func AppendJSONLine[T any](path string, record T, opts ...Option) (err error) {
	f, err := NewJSONLineFile[T](path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	f.opts.warnJSONLExt(path)
	return f.AppendRecord(record)
}

// AppendJSONLines дописывает записи по одной. С RemoveFirst файл сначала удаляется.
// Добавление не атомарно: при ошибке сериализации предыдущие записи остаются в файле.
func AppendJSONLines[T any](path string, records []T, opts ...Option) (err error) {
	f, err := NewJSONLineFile[T](path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	f.opts.warnJSONLExt(path)
	return f.AppendRecords(records)
}
