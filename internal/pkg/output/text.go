package output

import (
	"encoding/json"
	"fmt"
	"io"
)

const summaryDivider = "──────────────────────────────────────"

// TextWriter форматирует Result в человекочитаемый текст.
type TextWriter struct{}

// NewTextWriter создаёт TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write печатает результат. Успешный результат с Data, реализующим TextRenderer,
// печатается только через WriteText, чтобы вывод можно было передать дальше по конвейеру.
func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if r, ok := result.Data.(TextRenderer); ok && result.Status == StatusSuccess {
		return r.WriteText(w)
	}

	if _, err := fmt.Fprintf(w, "%s: %s\n", result.Command, result.Status); err != nil {
		return err
	}

	if result.Error != nil {
		if _, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message); err != nil {
			return err
		}
	}

	if result.Data != nil {
		dataJSON, err := json.MarshalIndent(result.Data, "", "  ")
		if err != nil {
			return fmt.Errorf("не удалось сериализовать Data: %w", err)
		}
		if _, err := fmt.Fprintf(w, "Data: %s\n", dataJSON); err != nil {
			return err
		}
	}

	if result.Status != StatusError && result.Summary != nil {
		return t.writeSummary(w, result)
	}
	return nil
}

func (t *TextWriter) writeSummary(w io.Writer, result *Result) error {
	if _, err := fmt.Fprintf(w, "%s\nСводка\n", summaryDivider); err != nil {
		return err
	}
	if result.Metadata != nil && result.Metadata.DurationMs > 0 {
		if _, err := fmt.Fprintf(w, "Время выполнения: %s\n", formatDuration(result.Metadata.DurationMs)); err != nil {
			return err
		}
	}
	for _, m := range result.Summary.KeyMetrics {
		line := fmt.Sprintf("%s: %s", m.Name, m.Value)
		if m.Unit != "" {
			line += " " + m.Unit
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if result.Summary.WarningsCount > 0 {
		if _, err := fmt.Fprintf(w, "Предупреждений: %d\n", result.Summary.WarningsCount); err != nil {
			return err
		}
		for _, warn := range result.Summary.Warnings {
			if _, err := fmt.Fprintf(w, "  - %s\n", warn); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, summaryDivider)
	return err
}

// formatDuration: миллисекунды, секунды с одним знаком или минуты и секунды.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dмс", ms)
	}
	sec := ms / 1000
	if sec < 60 {
		return fmt.Sprintf("%.1fс", float64(ms)/1000)
	}
	return fmt.Sprintf("%dм %dс", sec/60, sec%60)
}
