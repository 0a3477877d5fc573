package fileio

import (
	"bytes"
	"io"
	"maps"
	"slices"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/Kargones/textkit/pkg/apperrors"
)

// DefaultSection: имя неявной секции для ключей до первого заголовка.
const DefaultSection = "DEFAULT"

// KeyValue: пара ключ-значение секции INI.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section: секция INI с ключами в порядке файла.
type Section struct {
	Name string     `json:"name"`
	Keys []KeyValue `json:"keys"`
}

// Get возвращает значение ключа секции без учёта регистра ключа.
func (s Section) Get(key string) (string, bool) {
	for _, kv := range s.Keys {
		if strings.EqualFold(kv.Key, key) {
			return kv.Value, true
		}
	}
	return "", false
}

// INIConfig: упорядоченная конфигурация INI.
type INIConfig struct {
	Sections []Section `json:"sections"`
}

// Section возвращает секцию по имени. Имена секций чувствительны к регистру.
func (c *INIConfig) Section(name string) (Section, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionNames возвращает имена секций в порядке файла.
func (c *INIConfig) SectionNames() []string {
	names := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		names[i] = s.Name
	}
	return names
}

// Get возвращает значение ключа. Ключ, которого нет в существующей секции,
// ищется в DEFAULT. Для несуществующей секции DEFAULT не используется.
func (c *INIConfig) Get(section, key string) (string, bool) {
	s, ok := c.Section(section)
	if !ok {
		return "", false
	}
	if v, ok := s.Get(key); ok {
		return v, true
	}
	if section == DefaultSection {
		return "", false
	}
	if d, ok := c.Section(DefaultSection); ok {
		return d.Get(key)
	}
	return "", false
}

// Set задаёт значение ключа, создавая секцию при необходимости.
func (c *INIConfig) Set(section, key, value string) {
	for i := range c.Sections {
		if c.Sections[i].Name != section {
			continue
		}
		for j := range c.Sections[i].Keys {
			if strings.EqualFold(c.Sections[i].Keys[j].Key, key) {
				c.Sections[i].Keys[j].Value = value
				return
			}
		}
		c.Sections[i].Keys = append(c.Sections[i].Keys, KeyValue{Key: key, Value: value})
		return
	}
	c.Sections = append(c.Sections, Section{Name: section, Keys: []KeyValue{{Key: key, Value: value}}})
}

// ToMap возвращает конфигурацию как вложенный словарь.
func (c *INIConfig) ToMap() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.Sections))
	for _, s := range c.Sections {
		keys := make(map[string]string, len(s.Keys))
		for _, kv := range s.Keys {
			keys[kv.Key] = kv.Value
		}
		out[s.Name] = keys
	}
	return out
}

// INIFromMap строит конфигурацию из словаря с отсортированными именами секций и ключей.
func INIFromMap(m map[string]map[string]string) *INIConfig {
	cfg := &INIConfig{Sections: make([]Section, 0, len(m))}
	for _, name := range slices.Sorted(maps.Keys(m)) {
		keys := m[name]
		s := Section{Name: name, Keys: make([]KeyValue, 0, len(keys))}
		for _, k := range slices.Sorted(maps.Keys(keys)) {
			s.Keys = append(s.Keys, KeyValue{Key: k, Value: keys[k]})
		}
		cfg.Sections = append(cfg.Sections, s)
	}
	return cfg
}

// ReadINI разбирает файл INI. Несуществующий файл даёт пустую конфигурацию без ошибки.
// Ключи приводятся к нижнему регистру, имена секций сохраняются как есть.
func ReadINI(path string, opts ...Option) (*INIConfig, error) {
	o := newOptions(opts)
	enc, err := lookupEncoding(o.encoding)
	if err != nil {
		return nil, err
	}

	raw, err := o.fs.ReadFile(path)
	if err != nil {
		if o.fs.IsNotExist(err) {
			o.logger.Debug("Файл INI не найден, используется пустая конфигурация", "path", path)
			return &INIConfig{}, nil
		}
		return nil, apperrors.NewAppError(apperrors.ErrIO, "не удалось прочитать файл: "+path, err)
	}
	data, err := io.ReadAll(decodeReader(bytes.NewReader(raw), enc))
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrIO, "не удалось декодировать файл: "+path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{InsensitiveKeys: true}, data)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrDecode, "файл не является INI: "+path, err)
	}

	cfg := &INIConfig{}
	for _, sec := range file.Sections() {
		keys := sec.Keys()
		if sec.Name() == DefaultSection && len(keys) == 0 {
			continue
		}
		s := Section{Name: sec.Name(), Keys: make([]KeyValue, 0, len(keys))}
		for _, k := range keys {
			s.Keys = append(s.Keys, KeyValue{Key: k.Name(), Value: k.Value()})
		}
		cfg.Sections = append(cfg.Sections, s)
	}
	return cfg, nil
}

// WriteINI перезаписывает файл конфигурацией cfg.
func WriteINI(path string, cfg *INIConfig, opts ...Option) error {
	if cfg == nil {
		return apperrors.InvalidArgument("конфигурация INI не задана")
	}

	file := ini.Empty()
	for _, s := range cfg.Sections {
		sec := file.Section("")
		if s.Name != DefaultSection {
			var err error
			if sec, err = file.NewSection(s.Name); err != nil {
				return apperrors.NewAppError(apperrors.ErrInvalidArgument, "недопустимое имя секции: "+s.Name, err)
			}
		}
		for _, kv := range s.Keys {
			if _, err := sec.NewKey(kv.Key, kv.Value); err != nil {
				return apperrors.NewAppError(apperrors.ErrInvalidArgument, "недопустимый ключ: "+kv.Key, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return apperrors.NewAppError(apperrors.ErrIO, "не удалось сформировать INI: "+path, err)
	}
	return WriteFile(path, buf.String(), opts...)
}
