// Package inisethandler реализует команду ini-set: запись ключа в INI файл.
package inisethandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/command/handlers/shared"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/dryrun"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/pkg/fileio"
)

func RegisterCmd() error {
	return command.RegisterWithAlias(&INISetHandler{}, constants.AliasWriteINI)
}

// INISetHandler обрабатывает команду ini-set.
type INISetHandler struct{}

// Name возвращает имя команды.
func (h *INISetHandler) Name() string { return constants.ActINISet }

// Description возвращает описание команды для вывода в help.
func (h *INISetHandler) Description() string {
	return "Запись ключа в INI: ini-set <path> <section> <key> <value>"
}

// Execute читает файл (отсутствующий файл - пустая конфигурация), задаёт ключ
// и перезаписывает файл целиком. Ключи хранятся в нижнем регистре.
func (h *INISetHandler) Execute(ctx context.Context, app *di.App) error {
	start := time.Now()
	log := shared.Logger(ctx, app, constants.ActINISet)

	if err := shared.RequireArgs(app, constants.ActINISet, 4, "<path> <section> <key> <value>"); err != nil {
		return shared.WriteError(ctx, app, constants.ActINISet, start, err)
	}
	path := shared.Arg(app, 0)
	section := shared.Arg(app, 1)
	key := strings.ToLower(shared.Arg(app, 2))
	value := strings.Join(shared.Args(app, 3), " ")

	opts := shared.FileOptions(app, log)
	cfg, err := fileio.ReadINI(path, opts...)
	if err != nil {
		log.Error("не удалось прочитать INI", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActINISet, start, err)
	}

	if dryrun.IsDryRun() {
		plan := dryrun.BuildPlan(constants.ActINISet,
			dryrun.Step{Operation: dryrun.OpSet, Path: path, Detail: fmt.Sprintf("[%s] %s = %s", section, key, value)},
			dryrun.Step{Operation: dryrun.OpWrite, Path: path, Detail: "файл перезаписывается целиком"},
		)
		return shared.WriteSuccess(ctx, app, constants.ActINISet, start, plan, nil)
	}

	cfg.Set(section, key, value)
	if err := fileio.WriteINI(path, cfg, opts...); err != nil {
		log.Error("не удалось записать INI", "path", path, "error", err.Error())
		return shared.WriteError(ctx, app, constants.ActINISet, start, err)
	}

	log.Info("ключ записан", "path", path, "section", section, "key", key)
	shared.RecordItems(app, constants.ActINISet, metrics.KindKeys, 1)

	return shared.WriteSuccess(ctx, app, constants.ActINISet, start,
		&shared.WrittenData{Path: path, Count: 1, Kind: metrics.KindKeys}, nil)
}
