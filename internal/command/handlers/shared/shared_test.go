package shared

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/internal/config"
	"github.com/Kargones/textkit/internal/di"
	"github.com/Kargones/textkit/internal/pkg/output"
	"github.com/Kargones/textkit/internal/pkg/testutil"
	"github.com/Kargones/textkit/internal/pkg/tracing"
	"github.com/Kargones/textkit/pkg/apperrors"
	"github.com/Kargones/textkit/pkg/fileio"
	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/logging"
)

func TestTraceID_Priority(t *testing.T) {
	app := &di.App{TraceID: "22222222222222222222222222222222"}

	ctx := tracing.WithTraceID(context.Background(), "11111111111111111111111111111111")
	assert.Equal(t, "11111111111111111111111111111111", TraceID(ctx, app))
	assert.Equal(t, "22222222222222222222222222222222", TraceID(context.Background(), app))
	assert.Len(t, TraceID(context.Background(), nil), 32)
}

func TestRequireArgs(t *testing.T) {
	app := &di.App{Config: &config.Config{Args: []string{"a.txt"}}}

	assert.NoError(t, RequireArgs(app, "read-lines", 1, "<path>"))

	err := RequireArgs(app, "ini-set", 4, "<path> <section> <key> <value>")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "textkit ini-set <path> <section> <key> <value>")

	assert.Error(t, RequireArgs(nil, "read-lines", 1, "<path>"))
}

func TestArgs(t *testing.T) {
	app := &di.App{Config: &config.Config{Args: []string{"p", "x", "y"}}}

	assert.Equal(t, "p", Arg(app, 0))
	assert.Equal(t, []string{"x", "y"}, Args(app, 1))
	assert.Nil(t, Args(app, 3))
	assert.Nil(t, Args(nil, 0))
	assert.Empty(t, Arg(nil, 0))
}

func TestLineOptions_UseConfiguredFileSystem(t *testing.T) {
	fs := filer.NewMemoryFileSystem("/")
	require.NoError(t, fs.WriteFile("in.txt", []byte("  a  \n\n b\n"), filer.FileMode))

	app := &di.App{
		Config:     &config.Config{IOConfig: &config.IOConfig{Encoding: "utf-8", Strip: true, SkipEmpty: true}},
		FileSystem: fs,
	}

	lines, err := fileio.ReadLines("in.txt", LineOptions(app, logging.NewNopLogger())...)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines)
}

func TestRecordOptions_SerializerAndSchema(t *testing.T) {
	fs := filer.NewMemoryFileSystem("/")
	require.NoError(t, fs.WriteFile("id.schema.json", []byte(`{"type":"object","required":["id"]}`), filer.FileMode))

	app := &di.App{
		Config:     &config.Config{IOConfig: &config.IOConfig{Encoding: "utf-8", SchemaPath: "id.schema.json"}},
		FileSystem: fs,
	}
	opts := RecordOptions(app, logging.NewNopLogger())

	err := fileio.WriteJSONLines("out.jsonl", []map[string]any{{"id": 1, "z": complex(1, 2)}}, opts...)
	require.NoError(t, err)
	data, err := fs.ReadFile("out.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":1,\"z\":\"(1+2i)\"}\n", string(data))

	require.NoError(t, fs.WriteFile("bad.jsonl", []byte("{\"name\":\"x\"}\n"), filer.FileMode))
	_, err = fileio.ReadJSONLines[map[string]any]("bad.jsonl", opts...)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrSerialization))

	_, err = fileio.ReadJSONLines[map[string]any]("bad.jsonl", FileOptions(app, logging.NewNopLogger())...)
	assert.NoError(t, err, "FileOptions не подключает схему")
}

func TestWriteSuccess_JSON(t *testing.T) {
	app := &di.App{OutputWriter: output.NewJSONWriter(), TraceID: "abababababababababababababababab"}

	out := testutil.CaptureStdout(t, func() {
		require.NoError(t, WriteSuccess(context.Background(), app, "read-lines", time.Now(),
			map[string]int{"count": 2}, nil))
	})

	var result output.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, output.StatusSuccess, result.Status)
	assert.Equal(t, "read-lines", result.Command)
	assert.Equal(t, "abababababababababababababababab", result.Metadata.TraceID)
	assert.Equal(t, "v1", result.Metadata.APIVersion)
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "AppError",
			err:         apperrors.InvalidArgument("нет строк для записи"),
			wantCode:    apperrors.ErrInvalidArgument,
			wantMessage: "нет строк для записи",
		},
		{
			name:        "AppError с причиной",
			err:         apperrors.NotFound("a.txt", errors.New("file does not exist")),
			wantCode:    apperrors.ErrNotFound,
			wantMessage: "файл не найден: a.txt: file does not exist",
		},
		{
			name:        "обычная ошибка",
			err:         errors.New("boom"),
			wantCode:    apperrors.ErrCommandExec,
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &di.App{OutputWriter: output.NewJSONWriter()}

			var gotErr error
			out := testutil.CaptureStdout(t, func() {
				gotErr = WriteError(context.Background(), app, "write-lines", time.Now(), tt.err)
			})

			assert.Same(t, tt.err, gotErr)
			var result output.Result
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, output.StatusError, result.Status)
			require.NotNil(t, result.Error)
			assert.Equal(t, tt.wantCode, result.Error.Code)
			assert.Equal(t, tt.wantMessage, result.Error.Message)
		})
	}
}

func TestWriteError_TextDefault(t *testing.T) {
	out := testutil.CaptureStdout(t, func() {
		_ = WriteError(context.Background(), nil, "ini-get", time.Now(), apperrors.InvalidArgument("bad"))
	})

	assert.Equal(t, "ini-get: error\nError [ARG.INVALID]: bad\n", out)
}

func TestWrittenData_WriteText(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, (&WrittenData{Path: "out.txt", Count: 3, Kind: "lines"}).WriteText(&buf))
	assert.Equal(t, "out.txt: 3 lines\n", buf.String())
}
