package jsonltojsonhandler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/testutil"
	"github.com/Kargones/textkit/pkg/apperrors"
)

func init() {
	_ = RegisterCmd()
}

func TestJSONLToJSONHandler_Registration(t *testing.T) {
	_, ok := command.Get(constants.ActJSONLToJSON)
	assert.True(t, ok)
}

func TestJSONLToJSONHandler_Execute(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		want  string
		count int
		text  string
	}{
		{"записи", "{\"a\": 1}\n\n{\"b\":\"<x>\"}\n", `[{"a":1},{"b":"<x>"}]`, 2, "out.json: 2 records\n"},
		{"большое число", "{\"n\":12345678901234567890}\n", `[{"n":12345678901234567890}]`, 1, "out.json: 1 records\n"},
		{"пустой файл", "", `[]`, 0, "out.json: 0 records\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, fs, collector := testutil.NewApp(t, "data.jsonl", "out.json")
			testutil.WriteFile(t, fs, "data.jsonl", tt.src)

			var execErr error
			out := testutil.CaptureStdout(t, func() {
				execErr = (&JSONLToJSONHandler{}).Execute(context.Background(), app)
			})

			require.NoError(t, execErr)
			assert.Equal(t, tt.text, out)
			assert.Equal(t, tt.want, testutil.ReadFile(t, fs, "out.json"))
			assert.Equal(t, tt.count, collector.Count(constants.ActJSONLToJSON, metrics.KindRecords))
		})
	}
}

func TestJSONLToJSONHandler_Execute_Schema(t *testing.T) {
	app, fs, _ := testutil.NewApp(t, "data.jsonl", "out.json")
	app.Config.IOConfig.SchemaPath = "schema.json"
	testutil.WriteFile(t, fs, "schema.json", `{"type": "object", "required": ["id"]}`)
	testutil.WriteFile(t, fs, "data.jsonl", "{\"id\":1}\n{\"name\":\"x\"}\n")

	var execErr error
	testutil.CaptureStdout(t, func() {
		execErr = (&JSONLToJSONHandler{}).Execute(context.Background(), app)
	})

	require.Error(t, execErr)
	assert.True(t, apperrors.IsCode(execErr, apperrors.ErrSerialization))
	assert.Contains(t, execErr.Error(), "data.jsonl:2")

	_, statErr := fs.Stat("out.json")
	assert.True(t, fs.IsNotExist(statErr))
}

func TestJSONLToJSONHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"нет назначения", []string{"data.jsonl"}, apperrors.ErrInvalidArgument},
		{"нет источника", []string{"absent.jsonl", "out.json"}, apperrors.ErrNotFound},
		{"битая строка", []string{"bad.jsonl", "out.json"}, apperrors.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, fs, _ := testutil.NewApp(t, tt.args...)
			testutil.WriteFile(t, fs, "bad.jsonl", "{\"a\":1}\n{oops\n")

			var execErr error
			out := testutil.CaptureStdout(t, func() {
				execErr = (&JSONLToJSONHandler{}).Execute(context.Background(), app)
			})

			require.Error(t, execErr)
			assert.True(t, apperrors.IsCode(execErr, tt.code), "код: %s", apperrors.Code(execErr))
			assert.Contains(t, out, "jsonl-to-json: error")

			_, statErr := fs.Stat("out.json")
			assert.True(t, fs.IsNotExist(statErr), "файл назначения не должен создаваться")
		})
	}
}

func TestJSONLToJSONHandler_Execute_DryRun(t *testing.T) {
	t.Setenv("TK_DRY_RUN", "true")
	app, fs, _ := testutil.NewApp(t, "data.jsonl", "out.json")
	testutil.WriteFile(t, fs, "data.jsonl", "{\"a\":1}\n{\"a\":2}\n")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&JSONLToJSONHandler{}).Execute(context.Background(), app)
	})

	require.NoError(t, execErr)
	assert.Contains(t, out, "1. write out.json: 2 records из data.jsonl")

	_, statErr := fs.Stat("out.json")
	assert.True(t, fs.IsNotExist(statErr))
}
