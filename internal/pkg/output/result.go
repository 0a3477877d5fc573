// Package output форматирует результаты команд textkit в JSON или текст.
package output

// Возможные значения Result.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIVersion: версия формата JSON вывода.
const APIVersion = "v1"

// Result: структурированный результат выполнения команды.
// Сериализуется в JSON (TK_OUTPUT_FORMAT=json) или в текст (TK_OUTPUT_FORMAT=text).
type Result struct {
	Status  string `json:"status"`
	Command string `json:"command"`

	// Data: payload команды. Если Data реализует TextRenderer,
	// текстовый вывод печатает только его.
	Data any `json:"data,omitempty"`

	// Error заполняется только при Status=error.
	Error *ErrorInfo `json:"error,omitempty"`

	Metadata *Metadata `json:"metadata,omitempty"`

	// Summary копируется в Metadata.Summary при JSON выводе.
	Summary *SummaryInfo `json:"-"`
}

// ErrorInfo: код и сообщение ошибки. Code берётся из apperrors, например "IO.NOT_FOUND".
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata: метаданные выполнения команды.
type Metadata struct {
	DurationMs int64  `json:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty"`
	APIVersion string `json:"api_version"`

	Summary *SummaryInfo `json:"summary,omitempty"`
}
