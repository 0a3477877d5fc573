// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме изменяющие команды возвращают план действий без записи в файлы.
package dryrun

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Kargones/textkit/internal/constants"
)

// Операции плана.
const (
	OpWrite  = "write"
	OpAppend = "append"
	OpRemove = "remove"
	OpSet    = "set"
)

// IsDryRun проверяет, включён ли dry-run режим.
// Возвращает true, если TK_DRY_RUN равна "true" (без учёта регистра) или "1".
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}

// Step - одна операция плана.
type Step struct {
	Order     int    `json:"order"`
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Detail    string `json:"detail,omitempty"`
}

// Plan - план операций команды.
type Plan struct {
	Command string `json:"command"`
	DryRun  bool   `json:"dry_run"`
	Steps   []Step `json:"steps"`
}

// BuildPlan создаёт план и нумерует шаги с единицы.
func BuildPlan(command string, steps ...Step) *Plan {
	for i := range steps {
		steps[i].Order = i + 1
	}
	if steps == nil {
		steps = []Step{}
	}
	return &Plan{Command: command, DryRun: true, Steps: steps}
}

// WriteText выводит план в человекочитаемом формате.
func (p *Plan) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "План %s (dry-run, файлы не изменяются):\n", p.Command); err != nil {
		return err
	}
	for _, s := range p.Steps {
		line := fmt.Sprintf("  %d. %s %s", s.Order, s.Operation, s.Path)
		if s.Detail != "" {
			line += ": " + s.Detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
