// Package version реализует команду version: версия сборки и таблица
// устаревших имён команд.
package version

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
)

func RegisterCmd() error {
	return command.Register(&VersionHandler{})
}

// VersionData содержит информацию о версии приложения.
type VersionData struct {
	// Version - полная версия приложения.
	Version string `json:"version"`

	// GoVersion - версия Go, использованная при сборке.
	GoVersion string `json:"go_version"`

	// Commit - хеш коммита на момент сборки.
	Commit string `json:"commit"`

	// DeprecatedAliases связывает команды с их старыми именами.
	DeprecatedAliases []AliasEntry `json:"deprecated_aliases"`
}

// AliasEntry описывает пару "команда - устаревшее имя".
type AliasEntry struct {
	Command string `json:"command"`
	Alias   string `json:"alias"`
}

// WriteText выводит информацию о версии в человекочитаемом формате.
func (d *VersionData) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n  Go:     %s\n  Commit: %s\n",
		constants.AppName, d.Version, d.GoVersion, d.Commit)
	if err != nil {
		return err
	}

	if len(d.DeprecatedAliases) == 0 {
		return nil
	}
	if _, err = fmt.Fprintln(w, "\nDeprecated aliases:"); err != nil {
		return err
	}
	for _, entry := range d.DeprecatedAliases {
		if _, err = fmt.Fprintf(w, "  %-20s -> %s\n", entry.Alias, entry.Command); err != nil {
			return err
		}
	}
	return nil
}

// buildVersionData создаёт VersionData с fallback значениями.
// Если version пустой, используется "dev", если commit пустой - "unknown".
func buildVersionData(version, commit string) *VersionData {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	return &VersionData{
		Version:           version,
		GoVersion:         runtime.Version(),
		Commit:            commit,
		DeprecatedAliases: buildAliases(),
	}
}

// buildAliases берёт из реестра только команды, у которых есть устаревшее имя.
func buildAliases() []AliasEntry {
	infos := command.ListAllWithAliases()
	entries := make([]AliasEntry, 0, len(infos))
	for _, info := range infos {
		if info.DeprecatedAlias == "" {
			continue
		}
		entries = append(entries, AliasEntry{Command: info.Name, Alias: info.DeprecatedAlias})
	}
	return entries
}

// VersionHandler обрабатывает команду version.
type VersionHandler struct{}

// Name возвращает имя команды.
func (h *VersionHandler) Name() string {
	return constants.ActVersion
}

// Description возвращает описание команды для вывода в help.
func (h *VersionHandler) Description() string {
	return "Вывод информации о версии приложения"
}

// Execute собирает данные о версии и выводит результат.
// В текстовом формате печатается компактный блок без metadata.
func (h *VersionHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	data := buildVersionData(constants.Version, constants.PreCommitHash)
	return shared.WriteSuccess(ctx, app, constants.ActVersion, start, data, nil)
}
