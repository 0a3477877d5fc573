package metrics

import (
	"github.com/Kargones/textkit/pkg/logging"
)

// NewCollector создаёт Collector на основе конфигурации.
// Отключённые метрики дают NopCollector, включённые дают PrometheusCollector.
func NewCollector(config Config, logger logging.Logger) (Collector, error) {
	if !config.Enabled {
		return NewNopCollector(), nil
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewPrometheusCollector(config, logger)
}
