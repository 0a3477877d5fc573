// Package help реализует команду help: список команд и переменных окружения.
package help

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
)

func RegisterCmd() error {
	return command.Register(&Handler{})
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	Commands []CommandInfo `json:"commands"`
	Options  []OptionInfo  `json:"options"`
}

// CommandInfo описывает одну команду.
type CommandInfo struct {
	// Name - имя команды.
	Name string `json:"name"`
	// Description - описание команды.
	Description string `json:"description"`
	// Deprecated - true, если это устаревшее имя.
	Deprecated bool `json:"deprecated,omitempty"`
	// NewName - актуальное имя команды (если deprecated).
	NewName string `json:"new_name,omitempty"`
}

// OptionInfo описывает переменную окружения, влияющую на команды.
type OptionInfo struct {
	Env         string `json:"env"`
	Description string `json:"description"`
}

var options = []OptionInfo{
	{"TK_OUTPUT_FORMAT=json", "Машиночитаемый вывод"},
	{"TK_CONFIG=<path>", "YAML файл конфигурации"},
	{"TK_ENCODING=<name>", "Кодировка файлов (по умолчанию utf-8)"},
	{"TK_FS_TYPE=disk|memory", "Файловая система"},
	{"TK_BASE_PATH=<dir>", "Корень файловой системы"},
	{"TK_STRIP=true", "Обрезать пробелы по краям строк"},
	{"TK_SKIP_EMPTY=true", "Пропускать пустые строки"},
	{"TK_KEEP_LINE_BREAK=true", "Сохранять перевод строки при чтении"},
	{"TK_REMOVE_FIRST=true", "Удалить файл перед добавлением"},
	{"TK_DRY_RUN=true", "План изменений без записи в файлы"},
	{"TK_CHUNK_SIZE=<n>", "Размер чанка jsonl-chunks"},
	{"TK_SCHEMA=<path>", "JSON Schema для проверки записей"},
	{"TK_SUFFIX=<ext>", "Фильтр list-dir по суффиксу"},
	{"TK_RECURSIVE=true", "Рекурсивный list-dir"},
	{"TK_FILES_ONLY=true", "Только файлы в list-dir"},
	{"TK_LOG_LEVEL=debug", "Уровень логирования"},
}

// Handler обрабатывает команду help.
type Handler struct{}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute собирает список команд и выводит результат.
func (h *Handler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	return shared.WriteSuccess(ctx, app, constants.ActHelp, start, buildData(), nil)
}

// buildData собирает информацию обо всех зарегистрированных командах.
func buildData() *Data {
	data := &Data{Options: options}

	for name, handler := range command.All() {
		info := CommandInfo{
			Name:        name,
			Description: handler.Description(),
		}
		if dep, ok := handler.(command.Deprecatable); ok && dep.IsDeprecated() {
			info.Deprecated = true
			info.NewName = dep.NewName()
		}
		data.Commands = append(data.Commands, info)
	}
	sort.Slice(data.Commands, func(i, j int) bool {
		return data.Commands[i].Name < data.Commands[j].Name
	})

	return data
}

// WriteText выводит информацию о командах в человекочитаемом формате.
func (d *Data) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - чтение и запись текстовых, JSONL и INI файлов\n", constants.AppName)
	fmt.Fprintf(&sb, "\nИспользование: %s <команда> [аргументы]\n", constants.AppName)
	sb.WriteString("\nКоманды:\n")

	maxLen := 0
	for _, cmd := range d.Commands {
		maxLen = max(maxLen, len(cmd.Name))
	}

	for _, cmd := range d.Commands {
		if cmd.Deprecated {
			continue
		}
		fmt.Fprintf(&sb, "  %-*s  %s\n", maxLen, cmd.Name, cmd.Description)
	}

	var deprecated []CommandInfo
	for _, cmd := range d.Commands {
		if cmd.Deprecated {
			deprecated = append(deprecated, cmd)
		}
	}
	if len(deprecated) > 0 {
		sb.WriteString("\nУстаревшие имена:\n")
		for _, cmd := range deprecated {
			fmt.Fprintf(&sb, "  %-*s  -> %s\n", maxLen, cmd.Name, cmd.NewName)
		}
	}

	sb.WriteString("\nОпции:\n")
	for _, opt := range d.Options {
		fmt.Fprintf(&sb, "  %-25s %s\n", opt.Env, opt.Description)
	}

	_, err := fmt.Fprint(w, sb.String())
	return err
}
