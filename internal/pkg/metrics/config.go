package metrics

import (
	"net/url"
	"time"
)

// DefaultJobName: имя job в Pushgateway по умолчанию.
const DefaultJobName = "textkit"

// Config содержит настройки для сбора и отправки Prometheus метрик.
type Config struct {
	// Enabled: включены ли метрики (по умолчанию false).
	Enabled bool

	// PushgatewayURL: URL Prometheus Pushgateway, например "http://pushgateway:9091".
	PushgatewayURL string

	// JobName: имя job для группировки метрик.
	JobName string

	// Timeout: таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration

	// InstanceLabel: переопределение instance label. Пустое значение означает hostname.
	InstanceLabel string
}

// Validate проверяет корректность конфигурации.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию: метрики отключены.
func DefaultConfig() Config {
	return Config{
		JobName: DefaultJobName,
		Timeout: 10 * time.Second,
	}
}

// maskURL скрывает пароль в URL для логов.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	return u.Redacted()
}
