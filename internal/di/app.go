package di

import (
	"context"

	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/logging"
)

// App содержит инициализированные зависимости одного запуска команды.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config передаётся извне через InitializeApp().
	Config *config.Config

	// Logger создаётся через ProvideLogger на основе LoggingConfig.
	Logger logging.Logger

	// OutputWriter форматирует результаты команд (TK_OUTPUT_FORMAT).
	OutputWriter output.Writer

	// TraceID коррелирует логи, span-ы и JSON-вывод одного запуска.
	TraceID string

	// FileSystem: backend всех файловых операций (disk или memory, TK_FS_TYPE).
	FileSystem filer.FileSystem

	// MetricsCollector: NopCollector, если метрики отключены.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	TracerShutdown func(context.Context) error
}
