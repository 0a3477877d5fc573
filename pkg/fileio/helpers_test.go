package fileio

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Kargones/textkit/pkg/filer"
	"github.com/Kargones/textkit/pkg/logging"
)

// trackingFS считает открытые и закрытые дескрипторы.
type trackingFS struct {
	filer.FileSystem
	mu     sync.Mutex
	opened int
	closed int
}

type trackedFile struct {
	filer.File
	fs *trackingFS
}

func (f *trackedFile) Close() error {
	f.fs.mu.Lock()
	f.fs.closed++
	f.fs.mu.Unlock()
	return f.File.Close()
}

func (t *trackingFS) OpenFile(name string, flag int, perm os.FileMode) (filer.File, error) {
	f, err := t.FileSystem.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	t.opened++
	t.mu.Unlock()
	return &trackedFile{File: f, fs: t}, nil
}

func (t *trackingFS) open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened - t.closed
}

func newMemFS() *filer.MemoryFileSystem {
	return filer.NewMemoryFileSystem("/")
}

func writeRaw(t *testing.T, fs filer.FileSystem, path, data string) {
	t.Helper()
	require.NoError(t, fs.WriteFile(path, []byte(data), filer.FileMode))
}

func readRaw(t *testing.T, fs filer.FileSystem, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func bufferLogger(buf *bytes.Buffer) logging.Logger {
	return logging.NewLoggerWithWriter(logging.Config{Level: logging.LevelDebug}, buf)
}
