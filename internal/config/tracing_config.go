package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/textkit/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	Enabled bool `yaml:"enabled" env:"TK_TRACING_ENABLED" env-default:"false"`

	// Endpoint: URL OTLP HTTP endpoint, например http://jaeger:4318.
	Endpoint string `yaml:"endpoint" env:"TK_TRACING_ENDPOINT"`

	ServiceName string `yaml:"serviceName" env:"TK_TRACING_SERVICE_NAME" env-default:"textkit"`

	Environment string `yaml:"environment" env:"TK_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure: HTTP вместо HTTPS.
	Insecure bool `yaml:"insecure" env:"TK_TRACING_INSECURE" env-default:"true"`

	Timeout time.Duration `yaml:"timeout" env:"TK_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate: от 0.0 (ни одного) до 1.0 (все).
	SamplingRate float64 `yaml:"samplingRate" env:"TK_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

func isTracingConfigPresent(cfg *TracingConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.Endpoint != ""
}

func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		ServiceName:  tracing.DefaultServiceName,
		Environment:  "production",
		Insecure:     true,
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}

func validateTracingConfig(tc *TracingConfig) error {
	if !tc.Enabled {
		return nil
	}
	if tc.Endpoint == "" {
		return fmt.Errorf("tracing: endpoint обязателен при enabled=true")
	}
	if tc.ServiceName == "" {
		return fmt.Errorf("tracing: service name обязателен при enabled=true")
	}
	if tc.Timeout <= 0 {
		return fmt.Errorf("tracing: timeout должен быть положительным")
	}
	if tc.SamplingRate < 0.0 || tc.SamplingRate > 1.0 {
		return fmt.Errorf("tracing: sampling rate должен быть от 0.0 до 1.0, получено: %g", tc.SamplingRate)
	}
	return nil
}

// loadTracingConfig загружает секцию tracing, TK_TRACING_* имеют приоритет.
func loadTracingConfig(l *slog.Logger, cfg *Config) (*TracingConfig, error) {
	if cfg.AppConfig != nil && isTracingConfigPresent(&cfg.AppConfig.Tracing) {
		tracingConfig := &cfg.AppConfig.Tracing
		if err := cleanenv.ReadEnv(tracingConfig); err != nil {
			return nil, err
		}
		l.Debug("Tracing конфигурация загружена из AppConfig",
			slog.Bool("enabled", tracingConfig.Enabled),
			slog.String("endpoint", tracingConfig.Endpoint),
		)
		return tracingConfig, nil
	}

	tracingConfig := getDefaultTracingConfig()
	if err := cleanenv.ReadEnv(tracingConfig); err != nil {
		return nil, err
	}
	return tracingConfig, nil
}
