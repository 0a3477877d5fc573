package listdirhandler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/command"
	"github.com/Kargones/textkit/internal/constants"
	"github.com/Kargones/textkit/internal/pkg/metrics"
	"github.com/Kargones/textkit/internal/pkg/testutil"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/filer"
)

func init() {
	_ = RegisterCmd()
}

func seed(t *testing.T, fs *filer.MemoryFileSystem) {
	t.Helper()
	testutil.WriteFile(t, fs, "data/b.jsonl", "{}\n")
	testutil.WriteFile(t, fs, "data/a.txt", "a\n")
	testutil.WriteFile(t, fs, "data/sub/c.jsonl", "{}\n")
}

func TestListDirHandler_Registration(t *testing.T) {
	h, ok := command.Get(constants.ActListDir)
	require.True(t, ok)
	assert.Equal(t, constants.ActListDir, h.Name())
}

func TestListDirHandler_Execute(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		suffix    string
		recursive bool
		filesOnly bool
		want      string
	}{
		{
			name: "все записи",
			args: []string{"data"},
			want: "data/a.txt\ndata/b.jsonl\ndata/sub\n",
		},
		{
			name:      "только файлы",
			args:      []string{"data"},
			filesOnly: true,
			want:      "data/a.txt\ndata/b.jsonl\n",
		},
		{
			name:      "суффикс из аргумента, рекурсивно",
			args:      []string{"data", ".jsonl"},
			suffix:    ".txt",
			recursive: true,
			want:      "data/b.jsonl\ndata/sub/c.jsonl\n",
		},
		{
			name:   "суффикс из конфигурации",
			args:   []string{"data"},
			suffix: ".txt",
			want:   "data/a.txt\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, fs, _ := testutil.NewApp(t, tt.args...)
			app.Config.IOConfig.Suffix = tt.suffix
			app.Config.IOConfig.Recursive = tt.recursive
			app.Config.IOConfig.FilesOnly = tt.filesOnly
			seed(t, fs)

			var execErr error
			out := testutil.CaptureStdout(t, func() {
				execErr = (&ListDirHandler{}).Execute(context.Background(), app)
			})

			require.NoError(t, execErr)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestListDirHandler_Execute_JSON(t *testing.T) {
	app, fs, collector := testutil.NewApp(t, "data")
	app.Config.IOConfig.FilesOnly = true
	testutil.UseJSON(app)
	seed(t, fs)

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&ListDirHandler{}).Execute(context.Background(), app)
	})
	require.NoError(t, execErr)

	var result struct {
		Data DirData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"data/a.txt", "data/b.jsonl"}, result.Data.Entries)
	assert.Equal(t, 2, collector.Count(constants.ActListDir, metrics.KindEntries))
}

func TestListDirHandler_Execute_MissingDir(t *testing.T) {
	app, _, _ := testutil.NewApp(t, "nope")

	var execErr error
	out := testutil.CaptureStdout(t, func() {
		execErr = (&ListDirHandler{}).Execute(context.Background(), app)
	})

	assert.True(t, apperrors.IsCode(execErr, apperrors.ErrNotFound))
	assert.Contains(t, out, "list-dir: error")
}
