// Package testutil собирает di.App для тестов обработчиков и перехватывает
// стандартные потоки вывода команд.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/logging"
)

// NewApp собирает di.App для тестов обработчиков: файловая система в памяти
// с корнем "/", текстовый вывод, IOConfig по умолчанию и аргументы args.
// Метрики пишутся в возвращаемый RecordingCollector.
func NewApp(t *testing.T, args ...string) (*di.App, *filer.MemoryFileSystem, *RecordingCollector) {
	t.Helper()
	fs := filer.NewMemoryFileSystem("/")
	collector := &RecordingCollector{}
	app := &di.App{
		Config: &config.Config{
			Args:         args,
			OutputFormat: output.FormatText,
			IOConfig: &config.IOConfig{
				Encoding:  "utf-8",
				FSType:    filer.MemoryFS.String(),
				ChunkSize: 100,
			},
		},
		Logger:           logging.NewNopLogger(),
		OutputWriter:     output.NewTextWriter(),
		TraceID:          "0123456789abcdef0123456789abcdef",
		FileSystem:       fs,
		MetricsCollector: collector,
	}
	return app, fs, collector
}

// UseJSON переключает вывод app на JSON.
func UseJSON(app *di.App) {
	app.Config.OutputFormat = output.FormatJSON
	app.OutputWriter = output.NewJSONWriter()
}

// WriteFile кладёт файл в файловую систему теста.
func WriteFile(t *testing.T, fs filer.FileSystem, name, content string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(name, []byte(content), filer.FileMode))
}

// ReadFile читает файл из файловой системы теста.
func ReadFile(t *testing.T, fs filer.FileSystem, name string) string {
	t.Helper()
	data, err := fs.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

// RecordingCollector запоминает вызовы metrics.Collector.
type RecordingCollector struct {
	mu    sync.Mutex
	Items map[string]int
	Ends  map[string]bool
}

// RecordCommandStart ничего не делает.
func (c *RecordingCollector) RecordCommandStart(string) {}

// RecordCommandEnd запоминает результат команды.
func (c *RecordingCollector) RecordCommandEnd(command string, _ time.Duration, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Ends == nil {
		c.Ends = make(map[string]bool)
	}
	c.Ends[command] = success
}

// RecordItems суммирует элементы по ключу "command/kind".
func (c *RecordingCollector) RecordItems(command, kind string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Items == nil {
		c.Items = make(map[string]int)
	}
	c.Items[command+"/"+kind] += n
}

// Push ничего не делает.
func (c *RecordingCollector) Push(context.Context) error { return nil }

// Count возвращает накопленное число элементов.
func (c *RecordingCollector) Count(command, kind string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Items[command+"/"+kind]
}
