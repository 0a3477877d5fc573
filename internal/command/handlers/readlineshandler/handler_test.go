package readlineshandler

import (
	"context"
	"encoding/json"
	"strings"
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

func TestReadLinesHandler_Registration(t *testing.T) {
	h, ok := command.Get(constants.ActReadLines)
	require.True(t, ok)
	assert.Equal(t, constants.ActReadLines, h.Name())

	alias, ok := command.Get(constants.AliasReadLines)
	require.True(t, ok)
	dep, ok := alias.(command.Deprecatable)
	require.True(t, ok)
	assert.Equal(t, constants.ActReadLines, dep.NewName())
}

func TestReadLinesHandler_Execute_Text(t *testing.T) {
	app, fs, collector := testutil.NewApp(t, "in.txt")
	testutil.WriteFile(t, fs, "in.txt", "первая\nвторая\r\nтретья")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&ReadLinesHandler{}).Execute(context.Background(), app)
	})

	require.NoError(t, execErr)
	assert.Equal(t, "первая\nвторая\nтретья\n", out)
	assert.Equal(t, 3, collector.Count(constants.ActReadLines, metrics.KindLines))
}

func TestReadLinesHandler_Execute_StripSkipEmpty(t *testing.T) {
	app, fs, _ := testutil.NewApp(t, "in.txt")
	app.Config.IOConfig.Strip = true
	app.Config.IOConfig.SkipEmpty = true
	testutil.UseJSON(app)
	testutil.WriteFile(t, fs, "in.txt", "  a  \n\n\t\n b\n")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&ReadLinesHandler{}).Execute(context.Background(), app)
	})
	require.NoError(t, execErr)

	var result struct {
		Status string    `json:"status"`
		Data   LinesData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, []string{"a", "b"}, result.Data.Lines)
	assert.Equal(t, 2, result.Data.Count)
	assert.Equal(t, "in.txt", result.Data.Path)
}

func TestReadLinesHandler_Execute_KeepLineBreak(t *testing.T) {
	app, fs, _ := testutil.NewApp(t, "in.txt")
	app.Config.IOConfig.KeepLineBreak = true
	testutil.WriteFile(t, fs, "in.txt", "a\nb")

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, (&ReadLinesHandler{}).Execute(context.Background(), app))
	})
	assert.Equal(t, "a\nb\n", out)
}

func TestReadLinesHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"без аргументов", nil, apperrors.ErrInvalidArgument},
		{"нет файла", []string{"missing.txt"}, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _ := testutil.NewApp(t, tt.args...)

			var execErr error
			out := testutil.CaptureStdout(t, func() {
				execErr = (&ReadLinesHandler{}).Execute(context.Background(), app)
			})

			require.Error(t, execErr)
			assert.True(t, apperrors.IsCode(execErr, tt.wantCode))
			assert.Contains(t, out, "read-lines: error")
			assert.Contains(t, out, "["+tt.wantCode+"]")
		})
	}
}

func TestLinesData_WriteText_Empty(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, (&LinesData{Lines: []string{}}).WriteText(&buf))
	assert.Empty(t, buf.String())
}
