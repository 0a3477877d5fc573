package fileio

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// ListDir возвращает отсортированные пути записей директории dir, соединённые с dir.
// WithSuffix фильтрует имена файлов, Recursive обходит поддиректории,
// FilesOnly исключает директории. Несуществующая директория даёт IO.NOT_FOUND.
func ListDir(dir string, opts ...Option) ([]string, error) {
	o := newOptions(opts)
	out := []string{}
	if err := o.listDir(dir, &out); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (o *options) listDir(dir string, out *[]string) error {
	entries, err := o.fs.ReadDir(dir)
	if err != nil {
		if o.fs.IsNotExist(err) {
			return apperrors.NotFound(dir, err)
		}
		return apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать директорию: "+dir, err)
	}

	for _, e := range entries {
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if !o.filesOnly && o.suffix == "" {
				*out = append(*out, full)
			}
			if o.recursive {
				if err := o.listDir(full, out); err != nil {
					return err
				}
			}
			continue
		}
		if o.suffix != "" && !strings.HasSuffix(e.Name(), o.suffix) {
			continue
		}
		*out = append(*out, full)
	}
	return nil
}
