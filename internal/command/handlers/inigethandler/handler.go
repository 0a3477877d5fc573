// Package inigethandler реализует команду ini-get: чтение INI файла,
// секции или отдельного ключа.
package inigethandler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&INIGetHandler{}, constants.AliasReadINI)
}

// INIData - результат ini-get. Заполнено одно из: Sections, Keys или Value.
type INIData struct {
	Path     string            `json:"path"`
	Section  string            `json:"section,omitempty"`
	Key      string            `json:"key,omitempty"`
	Value    *string           `json:"value,omitempty"`
	Keys     []fileio.KeyValue `json:"keys,omitempty"`
	Sections []fileio.Section  `json:"sections,omitempty"`
}

// WriteText печатает значение ключа, ключи секции "key = value"
// или весь файл в виде INI.
func (d *INIData) WriteText(w io.Writer) error {
	switch {
	case d.Value != nil:
		_, err := fmt.Fprintln(w, *d.Value)
		return err
	case d.Section != "":
		return writeKeys(w, d.Keys)
	}
	for i, s := range d.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", s.Name); err != nil {
			return err
		}
		if err := writeKeys(w, s.Keys); err != nil {
			return err
		}
	}
	return nil
}

func writeKeys(w io.Writer, keys []fileio.KeyValue) error {
	for _, kv := range keys {
		if _, err := fmt.Fprintf(w, "%s = %s\n", kv.Key, kv.Value); err != nil {
			return err
		}
	}
	return nil
}

// INIGetHandler обрабатывает команду ini-get.
type INIGetHandler struct{}

// Name возвращает имя команды.
func (h *INIGetHandler) Name() string { return constants.ActINIGet }

// Description возвращает описание команды для вывода в help.
func (h *INIGetHandler) Description() string {
	return "Чтение INI: ini-get <path> [section [key]]"
}

// Execute читает INI файл. Отсутствующий файл читается как пустая конфигурация,
// поэтому запрос секции или ключа из него даёт INI.NOT_FOUND.
// Ключ, которого нет в секции, ищется в DEFAULT.
func (h *INIGetHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActINIGet)

	if err := shared.RequireArgs(app, constants.ActINIGet, 1, "<path> [section [key]]"); err != nil {
		return shared.WriteError(ctx, app, constants.ActINIGet, start, err)
	}
	path := shared.Arg(app, 0)
	sectionName := shared.Arg(app, 1)
	key := shared.Arg(app, 2)

	cfg, err := fileio.ReadINI(path, shared.FileOptions(app, log)...)
	if err != nil {
		log.Error("не удалось прочитать INI", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActINIGet, start, err)
	}

	data, err := lookup(cfg, path, sectionName, key)
	if err != nil {
		log.Warn("значение не найдено", "path", path, "section", sectionName, "key", key)
		return shared.WriteError(ctx, app, constants.ActINIGet, start, err)
	}

	shared.RecordItems(app, constants.ActINIGet, metrics.KindKeys, countKeys(data))
	return shared.WriteSuccess(ctx, app, constants.ActINIGet, start, data, nil)
}

func lookup(cfg *fileio.INIConfig, path, sectionName, key string) (*INIData, error) {
	data := &INIData{Path: path}
	if sectionName == "" {
		data.Sections = cfg.Sections
		if data.Sections == nil {
			data.Sections = []fileio.Section{}
		}
		return data, nil
	}

	section, ok := cfg.Section(sectionName)
	if key == "" {
		if !ok {
			return nil, apperrors.NewAppError(apperrors.ErrINIKeyNotFound,
				fmt.Sprintf("секция [%s] не найдена в %s", sectionName, path), nil)
		}
		data.Section = sectionName
		data.Keys = section.Keys
		if data.Keys == nil {
			data.Keys = []fileio.KeyValue{}
		}
		return data, nil
	}

	value, found := cfg.Get(sectionName, key)
	if !found {
		return nil, apperrors.NewAppError(apperrors.ErrINIKeyNotFound,
			fmt.Sprintf("ключ %s не найден в секции [%s] файла %s", key, sectionName, path), nil)
	}
	data.Section = sectionName
	data.Key = key
	data.Value = &value
	return data, nil
}

func countKeys(d *INIData) int {
	if d.Value != nil {
		return 1
	}
	if d.Section != "" {
		return len(d.Keys)
	}
	var n int
	for _, s := range d.Sections {
		n += len(s.Keys)
	}
	return n
}
