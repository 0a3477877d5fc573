package command

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"sync"
)

// Ошибки регистрации. Возвращаются из Register и RegisterWithAlias.
var (
	ErrNilHandler       = errors.New("command: nil handler")
	ErrEmptyName        = errors.New("command: empty handler name")
	ErrInvalidName      = errors.New("command: invalid handler name format (must be kebab-case)")
	ErrDuplicateHandler = errors.New("command: duplicate handler registration")
	ErrAliasSameAsName  = errors.New("command: deprecated name cannot be same as handler name")
)

var (
	// registry хранит зарегистрированные обработчики: имя команды -> обработчик.
	registry = make(map[string]Handler)
	mu       sync.RWMutex
	// commandNamePattern: строгий kebab-case, начинается с буквы.
	commandNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
)

// Register регистрирует обработчик команды в глобальном реестре.
// Вызывается из RegisterCmd() пакетов-обработчиков.
//
// Формат имени: kebab-case (a-z, 0-9, дефис), начинается с буквы.
// Примеры: "read-lines", "jsonl-chunks", "version".
func Register(h Handler) error {
	if h == nil {
		return ErrNilHandler
	}
	name := h.Name()
	if name == "" {
		return ErrEmptyName
	}
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	mu.Lock()
	defer mu.Unlock()
	return registerLocked(name, h)
}

func registerLocked(name string, h Handler) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	registry[name] = h
	return nil
}

// Get возвращает обработчик команды по имени.
func Get(name string) (Handler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[name]
	return h, ok
}

// All возвращает копию реестра.
func All() map[string]Handler {
	mu.RLock()
	defer mu.RUnlock()
	return maps.Clone(registry)
}

// Names возвращает отсортированный список имён всех зарегистрированных команд,
// включая deprecated-алиасы.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Sorted(maps.Keys(registry))
}

// RegisterWithAlias регистрирует обработчик под его именем и, если deprecated
// не пустой, под старым именем через DeprecatedBridge.
//
// Старые имена не проверяются на kebab-case: это snake_case имена вида "read_lines".
//
//	func RegisterCmd() error {
//	    return command.RegisterWithAlias(&Handler{}, "read_lines")
//	}
func RegisterWithAlias(h Handler, deprecated string) error {
	if err := Register(h); err != nil {
		return err
	}
	if deprecated == "" {
		return nil
	}
	if deprecated == h.Name() {
		return fmt.Errorf("%w: %s", ErrAliasSameAsName, deprecated)
	}

	mu.Lock()
	defer mu.Unlock()
	return registerLocked(deprecated, &DeprecatedBridge{
		actual:     h,
		deprecated: deprecated,
		newName:    h.Name(),
	})
}

// Info описывает команду и её deprecated-алиас.
type Info struct {
	// Name: основное имя команды.
	Name string
	// DeprecatedAlias: старое имя или пустая строка.
	DeprecatedAlias string
}

// ListAllWithAliases возвращает все команды без отдельных записей для
// DeprecatedBridge: алиас попадает в поле DeprecatedAlias основной команды.
// Результат отсортирован по имени.
func ListAllWithAliases() []Info {
	mu.RLock()
	defer mu.RUnlock()

	aliasMap := make(map[string]string)
	for _, h := range registry {
		if bridge, ok := h.(*DeprecatedBridge); ok {
			aliasMap[bridge.newName] = bridge.deprecated
		}
	}

	result := make([]Info, 0, len(registry)-len(aliasMap))
	for name, h := range registry {
		if _, isBridge := h.(*DeprecatedBridge); isBridge {
			continue
		}
		result = append(result, Info{Name: name, DeprecatedAlias: aliasMap[name]})
	}
	slices.SortFunc(result, func(a, b Info) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return result
}

// clearRegistry очищает реестр. Только для тестов.
func clearRegistry() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Handler)
}
