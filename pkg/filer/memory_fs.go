package filer

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFileSystem хранит файлы и директории в памяти.
// Используется в тестах и для команд CLI с TK_FS_TYPE=memory.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	root  string
	files map[string]*memNode
	dirs  map[string]time.Time
}

var _ FileSystem = (*MemoryFileSystem)(nil)

// NewMemoryFileSystem создаёт пустую файловую систему с корнем root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	if root == "" {
		root = DefaultMemoryRoot
	}
	root = filepath.Clean(root)
	return &MemoryFileSystem{
		root:  root,
		files: make(map[string]*memNode),
		dirs:  map[string]time.Time{root: time.Now()},
	}
}

// Type возвращает MemoryFS.
func (m *MemoryFileSystem) Type() FSType {
	return MemoryFS
}

// resolvePath переводит имя в ключ хранилища.
func (m *MemoryFileSystem) resolvePath(name string) (string, error) {
	if name == "" || hasControlChars(name) {
		return "", ErrInvalidPath
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(m.root, name), nil
}

// Open открывает файл для чтения.
func (m *MemoryFileSystem) Open(name string) (File, error) {
	return m.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile открывает файл с флагами os.O_*.
func (m *MemoryFileSystem) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	path, err := m.resolvePath(name)
	if err != nil {
		return nil, WrapError("open", name, err, MemoryFS)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, isDir := m.dirs[path]; isDir {
		return nil, WrapError("open", name, ErrIsDir, MemoryFS)
	}

	node, exists := m.files[path]
	switch {
	case exists && flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, WrapError("open", name, os.ErrExist, MemoryFS)
	case !exists && flag&os.O_CREATE == 0:
		return nil, WrapError("open", name, os.ErrNotExist, MemoryFS)
	case !exists:
		if perm == 0 {
			perm = FileMode
		}
		m.mkdirAllLocked(filepath.Dir(path))
		node = &memNode{mode: perm, modTime: time.Now()}
		m.files[path] = node
	}

	if flag&os.O_TRUNC != 0 && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		node.truncate(0)
	}

	return &MemoryFile{fs: m, node: node, name: name, flag: flag}, nil
}

// Remove удаляет файл или пустую директорию. Открытые хендлы
// удалённого файла продолжают работать со своим узлом.
func (m *MemoryFileSystem) Remove(name string) error {
	path, err := m.resolvePath(name)
	if err != nil {
		return WrapError("remove", name, err, MemoryFS)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		if !m.isDirEmptyLocked(path) {
			return WrapError("remove", name, ErrNotEmpty, MemoryFS)
		}
		delete(m.dirs, path)
		return nil
	}
	return WrapError("remove", name, os.ErrNotExist, MemoryFS)
}

// Stat возвращает информацию о файле или директории.
func (m *MemoryFileSystem) Stat(name string) (os.FileInfo, error) {
	path, err := m.resolvePath(name)
	if err != nil {
		return nil, WrapError("stat", name, err, MemoryFS)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if node, ok := m.files[path]; ok {
		return &memoryFileInfo{
			name:    filepath.Base(path),
			size:    int64(len(node.data)),
			mode:    node.mode,
			modTime: node.modTime,
		}, nil
	}
	if modTime, ok := m.dirs[path]; ok {
		return &memoryFileInfo{
			name:    filepath.Base(path),
			mode:    DirMode | os.ModeDir,
			modTime: modTime,
			isDir:   true,
		}, nil
	}
	return nil, WrapError("stat", name, os.ErrNotExist, MemoryFS)
}

// ReadDir возвращает прямых потомков директории, отсортированных по имени.
func (m *MemoryFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	path, err := m.resolvePath(name)
	if err != nil {
		return nil, WrapError("read directory", name, err, MemoryFS)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.dirs[path]; !ok {
		return nil, WrapError("read directory", name, os.ErrNotExist, MemoryFS)
	}

	var entries []os.DirEntry
	for dirPath, modTime := range m.dirs {
		if dirPath != path && filepath.Dir(dirPath) == path {
			entries = append(entries, &memoryDirEntry{info: &memoryFileInfo{
				name:    filepath.Base(dirPath),
				mode:    DirMode | os.ModeDir,
				modTime: modTime,
				isDir:   true,
			}})
		}
	}
	for filePath, node := range m.files {
		if filepath.Dir(filePath) == path {
			entries = append(entries, &memoryDirEntry{info: &memoryFileInfo{
				name:    filepath.Base(filePath),
				size:    int64(len(node.data)),
				mode:    node.mode,
				modTime: node.modTime,
			}})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// MkdirAll создаёт директорию вместе с родительскими.
func (m *MemoryFileSystem) MkdirAll(name string, _ os.FileMode) error {
	path, err := m.resolvePath(name)
	if err != nil {
		return WrapError("mkdir all", name, err, MemoryFS)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; ok {
		return WrapError("mkdir all", name, os.ErrExist, MemoryFS)
	}
	m.mkdirAllLocked(path)
	return nil
}

// ReadFile читает файл целиком.
func (m *MemoryFileSystem) ReadFile(name string) ([]byte, error) {
	f, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // закрытие хендла в памяти не возвращает ошибок
	return io.ReadAll(f)
}

// WriteFile перезаписывает файл.
func (m *MemoryFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	f, err := m.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // закрытие хендла в памяти не возвращает ошибок
	_, err = f.Write(data)
	return err
}

// IsNotExist сообщает, что err означает отсутствие файла.
func (m *MemoryFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (m *MemoryFileSystem) mkdirAllLocked(path string) {
	for p := filepath.Clean(path); ; p = filepath.Dir(p) {
		if _, ok := m.dirs[p]; ok {
			return
		}
		m.dirs[p] = time.Now()
		if parent := filepath.Dir(p); parent == p || parent == "." {
			return
		}
	}
}

func (m *MemoryFileSystem) isDirEmptyLocked(path string) bool {
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}
	return true
}
