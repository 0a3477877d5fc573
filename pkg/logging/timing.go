package logging

import "time"

// Ключи атрибутов записи о времени выполнения.
const (
	FuncNameKey     = "func_name"
	RequestStageKey = "request_stage"
	StepTimeKey     = "step_time"
	ResultKey       = "result"
)

// DefaultRequestStage: стадия запроса по умолчанию.
const DefaultRequestStage = "during"

type timeOptions struct {
	stage      string
	withResult bool
}

// TimeOption настраивает LogTime и Timed.
type TimeOption func(*timeOptions)

// WithStage задаёт значение request_stage.
func WithStage(stage string) TimeOption {
	return func(o *timeOptions) { o.stage = stage }
}

// WithResult добавляет результат функции в запись.
func WithResult() TimeOption {
	return func(o *timeOptions) { o.withResult = true }
}

// Timed выполняет fn и пишет в l запись уровня info с именем функции,
// стадией запроса и временем выполнения в миллисекундах.
// Ошибка fn возвращается без изменений; при ошибке запись пишется уровнем warn.
func Timed[T any](l Logger, funcName string, fn func() (T, error), opts ...TimeOption) (T, error) {
	o := timeOptions{stage: DefaultRequestStage}
	for _, opt := range opts {
		opt(&o)
	}
	if l == nil {
		l = NewNopLogger()
	}

	start := time.Now()
	res, err := fn()
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	args := []any{FuncNameKey, funcName, RequestStageKey, o.stage, StepTimeKey, elapsed}
	if o.withResult && err == nil {
		args = append(args, ResultKey, res)
	}
	if err != nil {
		l.Warn("Функция завершилась с ошибкой", append(args, "error", err.Error())...)
		return res, err
	}
	l.Info("Время выполнения", args...)
	return res, nil
}

// LogTime аналогичен Timed для функций без результата.
func LogTime(l Logger, funcName string, fn func() error, opts ...TimeOption) error {
	_, err := Timed(l, funcName, func() (struct{}, error) {
		return struct{}{}, fn()
	}, opts...)
	return err
}
