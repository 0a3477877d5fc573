// Package listutil содержит утилиты для последовательностей:
// разбиение на чанки, материализацию произвольных итерируемых значений
// и преобразование списка записей в словарь.
package listutil

import (
	"fmt"
	"iter"

	"github.com/Kargones/textkit/pkg/apperrors"
)

func checkSize(n int) error {
	if n <= 0 {
		return apperrors.InvalidArgument(fmt.Sprintf("размер чанка должен быть положительным, получено %d", n))
	}
	return nil
}

// Chunk разбивает seq на последовательные группы не длиннее n элементов.
// Источник читается за один проход по мере потребления чанков.
// Пустой источник даёт ноль чанков, последний чанк может быть короче n.
func Chunk[T any](seq iter.Seq[T], n int) (iter.Seq[[]T], error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	return func(yield func([]T) bool) {
		buf := make([]T, 0, n)
		for v := range seq {
			buf = append(buf, v)
			if len(buf) == n {
				if !yield(buf) {
					return
				}
				buf = make([]T, 0, n)
			}
		}
		if len(buf) > 0 {
			yield(buf)
		}
	}, nil
}

// ChunkSlice разбивает срез на подсрезы длиной n без копирования элементов.
func ChunkSlice[T any](s []T, n int) ([][]T, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	chunks := make([][]T, 0, (len(s)+n-1)/n)
	for start := 0; start < len(s); start += n {
		end := min(start+n, len(s))
		chunks = append(chunks, s[start:end:end])
	}
	return chunks, nil
}

// ChunkSeq2 разбивает поток с ошибками на чанки.
// Ошибка источника сначала выталкивает накопленный неполный чанк,
// затем передаётся потребителю и завершает поток.
func ChunkSeq2[T any](seq iter.Seq2[T, error], n int) (iter.Seq2[[]T, error], error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	return func(yield func([]T, error) bool) {
		buf := make([]T, 0, n)
		for v, err := range seq {
			if err != nil {
				if len(buf) > 0 && !yield(buf, nil) {
					return
				}
				yield(nil, err)
				return
			}
			buf = append(buf, v)
			if len(buf) == n {
				if !yield(buf, nil) {
					return
				}
				buf = make([]T, 0, n)
			}
		}
		if len(buf) > 0 {
			yield(buf, nil)
		}
	}, nil
}
