package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Kargones/textkit/internal/pkg/metrics"
)

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	// Enabled: по умолчанию false.
	Enabled bool `yaml:"enabled" env:"TK_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL, например "http://pushgateway:9091".
	PushgatewayURL string `yaml:"pushgatewayUrl" env:"TK_METRICS_PUSHGATEWAY_URL"`

	JobName string `yaml:"jobName" env:"TK_METRICS_JOB_NAME" env-default:"textkit"`

	Timeout time.Duration `yaml:"timeout" env:"TK_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel: пусто означает hostname.
	InstanceLabel string `yaml:"instanceLabel" env:"TK_METRICS_INSTANCE"`
}

func isMetricsConfigPresent(cfg *MetricsConfig) bool {
	if cfg == nil {
		return false
	}
	return cfg.Enabled || cfg.PushgatewayURL != ""
}

func getDefaultMetricsConfig() *MetricsConfig {
	return &MetricsConfig{
		JobName: metrics.DefaultJobName,
		Timeout: 10 * time.Second,
	}
}

// loadMetricsConfig загружает секцию metrics из AppConfig или значения по умолчанию,
// TK_METRICS_* переопределяют оба источника.
func loadMetricsConfig(l *slog.Logger, cfg *Config) (*MetricsConfig, error) {
	if cfg.AppConfig != nil && isMetricsConfigPresent(&cfg.AppConfig.Metrics) {
		metricsConfig := &cfg.AppConfig.Metrics
		if err := cleanenv.ReadEnv(metricsConfig); err != nil {
			return nil, err
		}
		l.Debug("Metrics конфигурация загружена из AppConfig",
			slog.Bool("enabled", metricsConfig.Enabled),
			slog.String("pushgateway_url", redactURL(metricsConfig.PushgatewayURL)),
			slog.String("job_name", metricsConfig.JobName),
		)
		return metricsConfig, nil
	}

	metricsConfig := getDefaultMetricsConfig()
	if err := cleanenv.ReadEnv(metricsConfig); err != nil {
		return nil, err
	}
	return metricsConfig, nil
}

func validateMetricsConfig(mc *MetricsConfig) error {
	if !mc.Enabled {
		return nil
	}
	if mc.PushgatewayURL == "" {
		return fmt.Errorf("metrics: pushgateway_url обязателен при enabled=true")
	}
	if mc.Timeout <= 0 {
		return fmt.Errorf("metrics: timeout должен быть положительным")
	}
	return nil
}

// redactURL скрывает пароль в URL для логов.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
