// Package command предоставляет интерфейс обработчика и реестр команд CLI.
// Обработчики регистрируются явно через handlers.RegisterAll().
package command

import (
	"context"

	"github.com/Kargones/textkit/internal/di"
)

// Handler определяет интерфейс обработчика команды.
type Handler interface {
	// Name возвращает имя команды в kebab-case (см. internal/constants).
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду. Зависимости (файловая система, логгер,
	// writer результата, метрики) приходят через app.
	Execute(ctx context.Context, app *di.App) error
}
