package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/Kargones/textkit/pkg/logging"
)

const namespace = "textkit"

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	commandDuration *prometheus.HistogramVec
	commandSuccess  *prometheus.CounterVec
	commandError    *prometheus.CounterVec
	itemsProcessed  *prometheus.CounterVec

	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector и регистрирует метрики:
//   - textkit_command_duration_seconds (histogram)
//   - textkit_command_success_total (counter)
//   - textkit_command_error_total (counter)
//   - textkit_items_processed_total (counter)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// Файловые команды короткие: buckets от 1 мс до минуты.
	commandDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 60},
		},
		[]string{"command", "status"},
	)

	commandSuccess := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_success_total",
			Help:      "Total number of successful command executions",
		},
		[]string{"command"},
	)

	commandError := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_error_total",
			Help:      "Total number of failed command executions",
		},
		[]string{"command"},
	)

	itemsProcessed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_processed_total",
			Help:      "Total number of lines, records, keys or entries processed by commands",
		},
		[]string{"command", "kind"},
	)

	// Register вместо MustRegister: ошибка возможна только при дублировании имён.
	for _, c := range []prometheus.Collector{commandDuration, commandSuccess, commandError, itemsProcessed} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:          config,
		logger:          logger,
		registry:        registry,
		commandDuration: commandDuration,
		commandSuccess:  commandSuccess,
		commandError:    commandError,
		itemsProcessed:  itemsProcessed,
		instance:        instance,
	}, nil
}

// RecordCommandStart только логирует: для CLI in-flight метрика не нужна.
func (c *PrometheusCollector) RecordCommandStart(command string) {
	c.logger.Debug("metrics: command started", "command", command)
}

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 128

// sanitizeLabel заменяет контрольные символы на '_' и обрезает значение
// до maxLabelLength рун.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCommandEnd обновляет histogram длительности и счётчик success или error.
func (c *PrometheusCollector) RecordCommandEnd(command string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	command = sanitizeLabel(command)

	c.commandDuration.WithLabelValues(command, status).Observe(duration.Seconds())
	if success {
		c.commandSuccess.WithLabelValues(command).Inc()
	} else {
		c.commandError.WithLabelValues(command).Inc()
	}

	c.logger.Debug("metrics: command ended",
		"command", command,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// RecordItems увеличивает счётчик обработанных элементов. n <= 0 игнорируется.
func (c *PrometheusCollector) RecordItems(command, kind string, n int) {
	if n <= 0 {
		return
	}
	c.itemsProcessed.WithLabelValues(sanitizeLabel(command), sanitizeLabel(kind)).Add(float64(n))
}

// Push отправляет метрики в Pushgateway. Ошибка отправки только логируется.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", maskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", maskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// GetRegistry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
