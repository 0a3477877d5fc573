package filer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DiskFileSystem реализует FileSystem поверх пакета os.
//
// Без базового пути имена передаются в ОС как есть. С базовым путём
// имена обязаны быть относительными и не выходить за пределы базы.
type DiskFileSystem struct {
	basePath  string
	pathUtils *PathUtils
}

var _ FileSystem = (*DiskFileSystem)(nil)

// NewDiskFileSystem создаёт дисковую файловую систему.
// Базовая директория создаётся при необходимости.
func NewDiskFileSystem(config Config) (*DiskFileSystem, error) {
	dfs := &DiskFileSystem{pathUtils: NewPathUtils()}
	if config.BasePath == "" {
		return dfs, nil
	}

	basePath, err := dfs.pathUtils.NormalizePath(config.BasePath)
	if err != nil {
		return nil, fmt.Errorf("недопустимый базовый путь: %w", err)
	}
	if err := dfs.pathUtils.EnsureDir(basePath); err != nil {
		return nil, fmt.Errorf("не удалось создать базовую директорию: %w", err)
	}
	dfs.basePath = basePath
	return dfs, nil
}

// BasePath возвращает базовую директорию или пустую строку.
func (dfs *DiskFileSystem) BasePath() string {
	return dfs.basePath
}

// Type возвращает DiskFS.
func (dfs *DiskFileSystem) Type() FSType {
	return DiskFS
}

// getFullPath переводит имя в путь ОС с учётом базовой директории.
func (dfs *DiskFileSystem) getFullPath(name string) (string, error) {
	if dfs.basePath == "" {
		if name == "" || hasControlChars(name) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
		}
		return name, nil
	}

	fullPath, err := dfs.pathUtils.JoinPath(dfs.basePath, name)
	if err != nil {
		return "", err
	}
	if !dfs.pathUtils.IsSubPath(dfs.basePath, fullPath) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return fullPath, nil
}

// Open открывает файл для чтения.
func (dfs *DiskFileSystem) Open(name string) (File, error) {
	return dfs.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile открывает файл с указанными флагами.
// При O_CREATE недостающие родительские директории создаются.
func (dfs *DiskFileSystem) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return nil, WrapError("open", name, err, DiskFS)
	}

	if flag&os.O_CREATE != 0 {
		if err := dfs.pathUtils.EnsureDir(filepath.Dir(fullPath)); err != nil {
			return nil, WrapError("create parent directories", name, err, DiskFS)
		}
	}

	// #nosec G304 - путь проверен в getFullPath
	f, err := os.OpenFile(fullPath, flag, perm)
	if err != nil {
		return nil, WrapError("open", name, err, DiskFS)
	}
	return f, nil
}

// Remove удаляет файл или пустую директорию.
func (dfs *DiskFileSystem) Remove(name string) error {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return WrapError("remove", name, err, DiskFS)
	}
	return WrapError("remove", name, os.Remove(fullPath), DiskFS)
}

// Stat возвращает информацию о файле.
func (dfs *DiskFileSystem) Stat(name string) (os.FileInfo, error) {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return nil, WrapError("stat", name, err, DiskFS)
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, WrapError("stat", name, err, DiskFS)
	}
	return info, nil
}

// ReadDir читает директорию.
func (dfs *DiskFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return nil, WrapError("read directory", name, err, DiskFS)
	}
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, WrapError("read directory", name, err, DiskFS)
	}
	return entries, nil
}

// MkdirAll создаёт директорию вместе с родительскими.
func (dfs *DiskFileSystem) MkdirAll(path string, perm os.FileMode) error {
	fullPath, err := dfs.getFullPath(path)
	if err != nil {
		return WrapError("mkdir all", path, err, DiskFS)
	}
	return WrapError("mkdir all", path, os.MkdirAll(fullPath, perm), DiskFS)
}

// ReadFile читает файл целиком.
func (dfs *DiskFileSystem) ReadFile(name string) ([]byte, error) {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return nil, WrapError("read file", name, err, DiskFS)
	}
	// #nosec G304 - путь проверен в getFullPath
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, WrapError("read file", name, err, DiskFS)
	}
	return data, nil
}

// WriteFile перезаписывает файл.
func (dfs *DiskFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	fullPath, err := dfs.getFullPath(name)
	if err != nil {
		return WrapError("write file", name, err, DiskFS)
	}
	if err := dfs.pathUtils.EnsureDir(filepath.Dir(fullPath)); err != nil {
		return WrapError("create parent directories", name, err, DiskFS)
	}
	return WrapError("write file", name, os.WriteFile(fullPath, data, perm), DiskFS)
}

// IsNotExist сообщает, что err означает отсутствие файла.
func (dfs *DiskFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
