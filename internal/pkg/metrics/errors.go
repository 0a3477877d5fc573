package metrics

import "errors"

var (
	// ErrPushgatewayURLRequired: метрики включены, но URL Pushgateway не задан.
	ErrPushgatewayURLRequired = errors.New("metrics: pushgateway URL обязателен при enabled=true")

	// ErrPushgatewayURLInvalid: URL Pushgateway без схемы или хоста.
	ErrPushgatewayURLInvalid = errors.New("metrics: некорректный pushgateway URL")

	// ErrJobNameRequired: пустое имя job.
	ErrJobNameRequired = errors.New("metrics: job name обязателен")

	// ErrInvalidTimeout: таймаут не положительный.
	ErrInvalidTimeout = errors.New("metrics: timeout должен быть положительным")
)
