package fileio

import (
	"iter"
	"strings"

	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/listutil"
)

// closeInto закрывает c и записывает ошибку закрытия в *err, если там пусто.
func closeInto(err *error, c interface{ Close() error }) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// orDefault возвращает def, если err означает отсутствие файла.
func orDefault[T any](v T, err error, def T) (T, error) {
	if apperrors.IsCode(err, apperrors.ErrNotFound) {
		return def, nil
	}
	return v, err
}

// lazyOr заменяет IO.NOT_FOUND в начале seq элементами def.
func lazyOr[T any](seq iter.Seq2[T, error], def []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		first := true
		for v, err := range seq {
			if first && apperrors.IsCode(err, apperrors.ErrNotFound) {
				for _, d := range def {
					if !yield(d, nil) {
						return
					}
				}
				return
			}
			first = false
			if !yield(v, err) {
				return
			}
		}
	}
}

// ReadLines читает строки файла. Несуществующий путь даёт IO.NOT_FOUND.
func ReadLines(path string, opts ...Option) (lines []string, err error) {
	f, err := NewTextFile(path, opts...)
	if err != nil {
		return nil, err
	}
	defer closeInto(&err, f)
	return f.ReadLines()
}

// ReadLinesOr читает строки файла или возвращает def, если файла нет.
func ReadLinesOr(path string, def []string, opts ...Option) ([]string, error) {
	lines, err := ReadLines(path, opts...)
	return orDefault(lines, err, def)
}

// ReadLinesLazy лениво читает строки. Каждый запуск range открывает файл заново;
// файл закрывается по исчерпании или при досрочном выходе из цикла.
func ReadLinesLazy(path string, opts ...Option) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := NewTextFile(path, opts...)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close() //nolint:errcheck // дескриптор только для чтения
		for line, err := range f.Lines() {
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// ReadLinesLazyOr работает как ReadLinesLazy, но для несуществующего файла выдаёт элементы def.
func ReadLinesLazyOr(path string, def []string, opts ...Option) iter.Seq2[string, error] {
	return lazyOr(ReadLinesLazy(path, opts...), def)
}

// ReadFile возвращает весь текст файла.
func ReadFile(path string, opts ...Option) (text string, err error) {
	f, err := NewTextFile(path, opts...)
	if err != nil {
		return "", err
	}
	defer closeInto(&err, f)
	return f.Read()
}

// ReadFileOr возвращает текст файла или def, если файла нет.
func ReadFileOr(path, def string, opts ...Option) (string, error) {
	text, err := ReadFile(path, opts...)
	return orDefault(text, err, def)
}

// WriteFile перезаписывает файл текстом.
func WriteFile(path, text string, opts ...Option) (err error) {
	f, err := NewTextFile(path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	return f.Write(text)
}

// WriteLines перезаписывает файл строками, разделёнными '\n', с '\n' в конце.
// Strip и SkipEmpty применяются до записи. Пустой итоговый список даёт ARG.INVALID,
// и файл назначения не открывается.
func WriteLines(path string, lines []string, opts ...Option) (err error) {
	o := newOptions(opts)
	prepared := make([]string, 0, len(lines))
	for _, line := range lines {
		if o.strip {
			line = strings.TrimFunc(line, isSpace)
		}
		if o.skipEmpty && line == "" {
			continue
		}
		prepared = append(prepared, line)
	}
	if len(prepared) == 0 {
		return apperrors.InvalidArgument("нет строк для записи")
	}

	f, err := NewTextFile(path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	return f.Write(strings.Join(prepared, "\n") + "\n")
}

// WriteLinesFrom принимает строки как произвольное итерируемое значение.
// Одна строка вместо списка даёт ARG.INVALID, неитерируемое значение или
// элемент не типа string дают TYPE.MISMATCH.
func WriteLinesFrom(path string, lines any, opts ...Option) error {
	items, err := listutil.Strings(lines)
	if err != nil {
		return err
	}
	return WriteLines(path, items, opts...)
}

// AppendLine дописывает строку и '\n', если его нет.
func AppendLine(path, line string, opts ...Option) (err error) {
	f, err := NewTextFile(path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	return f.AppendLine(line)
}

// AppendLines дописывает строки по порядку через один дескриптор.
// С RemoveFirst файл сначала удаляется. Добавление не атомарно.
func AppendLines(path string, lines []string, opts ...Option) (err error) {
	f, err := NewTextFile(path, opts...)
	if err != nil {
		return err
	}
	defer closeInto(&err, f)
	return f.AppendLines(lines)
}
