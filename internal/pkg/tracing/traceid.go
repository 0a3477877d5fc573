// Package tracing генерирует trace ID для корреляции логов одного запуска
// и инициализирует OpenTelemetry трейсинг команд.
//
// Trace ID: 32 hex символа (16 байт), совместим с W3C Trace Context.
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID генерирует trace ID через crypto/rand.
// При ошибке crypto/rand ID строится из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: 16 hex символов времени и 16 hex символов счётчика.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
