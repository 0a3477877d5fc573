// Package constants содержит тесты для констант textkit.
package constants

import (
	"regexp"
	"testing"
)

// TestActionConstants проверяет имена команд
func TestActionConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ActHelp", ActHelp, "help"},
		{"ActVersion", ActVersion, "version"},
		{"ActReadLines", ActReadLines, "read-lines"},
		{"ActWriteLines", ActWriteLines, "write-lines"},
		{"ActAppendLines", ActAppendLines, "append-lines"},
		{"ActJSONLChunks", ActJSONLChunks, "jsonl-chunks"},
		{"ActJSONLAppend", ActJSONLAppend, "jsonl-append"},
		{"ActINIGet", ActINIGet, "ini-get"},
		{"ActINISet", ActINISet, "ini-set"},
		{"ActListDir", ActListDir, "list-dir"},
		{"ActJSONLIndex", ActJSONLIndex, "jsonl-index"},
		{"ActJSONLToJSON", ActJSONLToJSON, "jsonl-to-json"},
		{"ActJSONToJSONL", ActJSONToJSONL, "json-to-jsonl"},
	}

	kebab := regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("Константа %s = %q, ожидалось %q", tt.name, tt.constant, tt.expected)
			}
			if !kebab.MatchString(tt.constant) {
				t.Errorf("Константа %s = %q не в kebab-case", tt.name, tt.constant)
			}
		})
	}
}

// TestAliasConstants проверяет, что алиасы не пересекаются с именами команд
func TestAliasConstants(t *testing.T) {
	aliases := []string{
		AliasReadLines, AliasWriteLines, AliasAppendLines,
		AliasJSONLineChunks, AliasAppendJSONL, AliasReadINI, AliasWriteINI,
	}
	commands := map[string]bool{
		ActHelp: true, ActVersion: true, ActReadLines: true, ActWriteLines: true,
		ActAppendLines: true, ActJSONLChunks: true, ActJSONLAppend: true,
		ActINIGet: true, ActINISet: true, ActListDir: true,
		ActJSONLIndex: true, ActJSONLToJSON: true, ActJSONToJSONL: true,
	}

	seen := make(map[string]bool)
	for _, a := range aliases {
		if commands[a] {
			t.Errorf("алиас %q совпадает с именем команды", a)
		}
		if seen[a] {
			t.Errorf("дублирующийся алиас %q", a)
		}
		seen[a] = true
	}
}

// TestVersionDefaults проверяет значения версии без ldflags
func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version не должна быть пустой")
	}
	if PreCommitHash == "" {
		t.Error("PreCommitHash не должен быть пустым")
	}
	if APIVersion != "v1" {
		t.Errorf("APIVersion = %q, ожидалось v1", APIVersion)
	}
}
