package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Kargones/textkit/internal/di"
)

// Deprecatable опционально реализуется deprecated-обработчиками.
// Используется командой help.
type Deprecatable interface {
	IsDeprecated() bool
	NewName() string
}

var (
	_ Handler      = (*DeprecatedBridge)(nil)
	_ Deprecatable = (*DeprecatedBridge)(nil)
)

// DeprecatedBridge выполняет команду под старым именем функции библиотеки
// (например, "read_lines" для "read-lines") и предупреждает о новом имени.
//
// Предупреждение пишется в stderr на каждый вызов: stdout занят результатом команды.
type DeprecatedBridge struct {
	actual     Handler
	deprecated string
	newName    string

	// warnOut: куда писать предупреждение, nil означает os.Stderr.
	warnOut io.Writer
}

// Name возвращает старое имя команды.
func (b *DeprecatedBridge) Name() string { return b.deprecated }

// Description делегирует описание основному обработчику.
func (b *DeprecatedBridge) Description() string { return b.actual.Description() }

// IsDeprecated всегда true.
func (b *DeprecatedBridge) IsDeprecated() bool { return true }

// NewName возвращает рекомендуемое имя команды.
func (b *DeprecatedBridge) NewName() string { return b.newName }

// Execute пишет предупреждение и выполняет основной обработчик.
// Отменённый ctx возвращается без предупреждения и без выполнения.
func (b *DeprecatedBridge) Execute(ctx context.Context, app *di.App) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := b.warnOut
	if w == nil {
		w = os.Stderr
	}
	_, _ = fmt.Fprintf(w, "WARNING: command '%s' is deprecated, use '%s' instead\n", //nolint:errcheck // stderr warning
		b.deprecated, b.newName)
	if app != nil && app.Logger != nil {
		app.Logger.Warn("вызвана deprecated команда",
			"deprecated", b.deprecated, "command", b.newName)
	}
	return b.actual.Execute(ctx, app)
}
