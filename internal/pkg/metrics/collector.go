// Package metrics собирает метрики команд textkit и отправляет их
// в Prometheus Pushgateway.
//
// NewCollector выбирает реализацию по конфигурации: PrometheusCollector
// при включённых метриках, NopCollector при отключённых.
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
type Collector interface {
	// RecordCommandStart записывает начало выполнения команды.
	RecordCommandStart(command string)

	// RecordCommandEnd записывает завершение команды с результатом.
	RecordCommandEnd(command string, duration time.Duration, success bool)

	// RecordItems добавляет n обработанных элементов вида kind
	// (строки, записи JSON Lines, ключи INI, записи директории).
	RecordItems(command, kind string, n int)

	// Push отправляет метрики в Pushgateway.
	// Ошибка отправки логируется и не возвращается: метрики не должны ронять команду.
	Push(ctx context.Context) error
}

// Виды элементов для RecordItems.
const (
	KindLines   = "lines"
	KindRecords = "records"
	KindKeys    = "keys"
	KindEntries = "entries"
)
