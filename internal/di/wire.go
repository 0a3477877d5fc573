//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/textkit/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideFileSystem,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App через Wire DI из загруженного Config.
//
//	cfg, err := config.Load(os.Args[1:])
//	if err != nil {
//	    return err
//	}
//	app, err := di.InitializeApp(cfg)
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
