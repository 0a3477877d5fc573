package filer

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// memNode хранит содержимое файла. Несколько хендлов MemoryFile
// разделяют один узел, поэтому запись через один хендл видна остальным.
type memNode struct {
	data    []byte
	mode    os.FileMode
	modTime time.Time
}

// MemoryFile представляет открытый хендл файла в памяти:
// собственная позиция и флаги поверх общего узла.
type MemoryFile struct {
	fs     *MemoryFileSystem
	node   *memNode
	name   string
	offset int64
	flag   int
	closed bool
}

var _ File = (*MemoryFile)(nil)

func (f *MemoryFile) readable() bool {
	return f.flag&(os.O_WRONLY|os.O_RDWR) != os.O_WRONLY
}

func (f *MemoryFile) writable() bool {
	return f.flag&(os.O_WRONLY|os.O_RDWR) != 0
}

// Read читает данные с текущей позиции.
func (f *MemoryFile) Read(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrFileClosed
	}
	if !f.readable() {
		return 0, ErrWriteOnlyFile
	}
	if f.offset >= int64(len(f.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.node.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

// Write записывает данные с текущей позиции, при O_APPEND всегда в конец.
func (f *MemoryFile) Write(p []byte) (int, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrFileClosed
	}
	if !f.writable() {
		return 0, ErrReadOnlyFile
	}
	if f.flag&os.O_APPEND != 0 {
		f.offset = int64(len(f.node.data))
	}

	end := f.offset + int64(len(p))
	if end > int64(len(f.node.data)) {
		grown := make([]byte, end)
		copy(grown, f.node.data)
		f.node.data = grown
	}
	n := copy(f.node.data[f.offset:], p)
	f.offset += int64(n)
	f.node.modTime = time.Now()
	return n, nil
}

// Seek изменяет позицию в файле.
func (f *MemoryFile) Seek(offset int64, whence int) (int64, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return 0, ErrFileClosed
	}
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = int64(len(f.node.data)) + offset
	default:
		return 0, ErrUnsupportedOperation
	}
	if next < 0 {
		return 0, ErrInvalidPath
	}
	f.offset = next
	return next, nil
}

// Close закрывает хендл. Повторное закрытие не является ошибкой.
func (f *MemoryFile) Close() error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.closed = true
	return nil
}

// Name возвращает имя, под которым файл был открыт.
func (f *MemoryFile) Name() string {
	return f.name
}

// Stat возвращает информацию о файле.
func (f *MemoryFile) Stat() (os.FileInfo, error) {
	f.fs.mu.RLock()
	defer f.fs.mu.RUnlock()

	if f.closed {
		return nil, ErrFileClosed
	}
	return &memoryFileInfo{
		name:    filepath.Base(f.name),
		size:    int64(len(f.node.data)),
		mode:    f.node.mode,
		modTime: f.node.modTime,
	}, nil
}

// Sync ничего не делает: данные уже в памяти.
func (f *MemoryFile) Sync() error {
	f.fs.mu.RLock()
	defer f.fs.mu.RUnlock()
	if f.closed {
		return ErrFileClosed
	}
	return nil
}

// Truncate изменяет размер файла.
func (f *MemoryFile) Truncate(size int64) error {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if f.closed {
		return ErrFileClosed
	}
	if !f.writable() {
		return ErrReadOnlyFile
	}
	if size < 0 {
		return ErrInvalidPath
	}
	f.node.truncate(size)
	return nil
}

func (n *memNode) truncate(size int64) {
	switch {
	case size <= int64(len(n.data)):
		n.data = n.data[:size:size]
	default:
		grown := make([]byte, size)
		copy(grown, n.data)
		n.data = grown
	}
	n.modTime = time.Now()
}

// memoryFileInfo реализует os.FileInfo для MemoryFileSystem.
type memoryFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (fi *memoryFileInfo) Name() string       { return fi.name }
func (fi *memoryFileInfo) Size() int64        { return fi.size }
func (fi *memoryFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *memoryFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memoryFileInfo) IsDir() bool        { return fi.isDir }
func (fi *memoryFileInfo) Sys() any           { return nil }

// memoryDirEntry реализует os.DirEntry для MemoryFileSystem.
type memoryDirEntry struct {
	info *memoryFileInfo
}

func (e *memoryDirEntry) Name() string               { return e.info.name }
func (e *memoryDirEntry) IsDir() bool                { return e.info.isDir }
func (e *memoryDirEntry) Type() os.FileMode          { return e.info.mode.Type() }
func (e *memoryDirEntry) Info() (os.FileInfo, error) { return e.info, nil }
