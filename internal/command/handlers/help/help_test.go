package help

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/internal/pkg/testutil"
)

type fakeHandler struct{ name string }

func (h *fakeHandler) Name() string                                { return h.name }
func (h *fakeHandler) Description() string                         { return "Тестовая команда" }
func (h *fakeHandler) Execute(_ context.Context, _ *di.App) error { return nil }

func init() {
	_ = RegisterCmd()
	_ = command.RegisterWithAlias(&fakeHandler{name: "fake-help-test"}, "fake_help_test")
}

func TestHelpHandler_Name(t *testing.T) {
	h := &Handler{}
	assert.Equal(t, constants.ActHelp, h.Name())
	assert.Equal(t, "Вывод списка доступных команд", h.Description())
}

func TestHelpHandler_Execute_TextOutput(t *testing.T) {
	h := &Handler{}

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = h.Execute(context.Background(), nil)
	})
	require.NoError(t, execErr)

	assert.Contains(t, out, "textkit - чтение и запись")
	assert.Contains(t, out, "Команды:")
	assert.Contains(t, out, "Вывод списка доступных команд")
	assert.Contains(t, out, "fake-help-test")
	assert.Contains(t, out, "Устаревшие имена:")
	assert.Contains(t, out, "-> fake-help-test")
	assert.Contains(t, out, "TK_OUTPUT_FORMAT=json")
}

func TestHelpHandler_Execute_JSONOutput(t *testing.T) {
	h := &Handler{}
	app := &di.App{Config: &config.Config{}, OutputWriter: output.NewWriter(output.FormatJSON)}

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = h.Execute(context.Background(), app)
	})
	require.NoError(t, execErr)

	var result struct {
		Status   string          `json:"status"`
		Command  string          `json:"command"`
		Data     Data            `json:"data"`
		Metadata output.Metadata `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "stdout должен содержать валидный JSON")

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "help", result.Command)
	assert.Equal(t, constants.APIVersion, result.Metadata.APIVersion)
	assert.NotEmpty(t, result.Metadata.TraceID)
	assert.NotEmpty(t, result.Data.Options)

	var alias *CommandInfo
	for i := range result.Data.Commands {
		if result.Data.Commands[i].Name == "fake_help_test" {
			alias = &result.Data.Commands[i]
		}
	}
	require.NotNil(t, alias, "устаревшее имя должно быть в списке")
	assert.True(t, alias.Deprecated)
	assert.Equal(t, "fake-help-test", alias.NewName)
}

func TestBuildData_Sorted(t *testing.T) {
	data := buildData()
	require.NotEmpty(t, data.Commands)
	for i := 1; i < len(data.Commands); i++ {
		assert.Less(t, data.Commands[i-1].Name, data.Commands[i].Name)
	}
}

func TestData_WriteText_NoDeprecated(t *testing.T) {
	d := &Data{Commands: []CommandInfo{{Name: "read-lines", Description: "Чтение"}}}

	var buf bytes.Buffer
	require.NoError(t, d.WriteText(&buf))
	assert.Contains(t, buf.String(), "read-lines  Чтение")
	assert.NotContains(t, buf.String(), "Устаревшие имена")
}
