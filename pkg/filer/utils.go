package filer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathUtils содержит операции над путями для DiskFileSystem.
type PathUtils struct{}

// NewPathUtils создаёт PathUtils.
func NewPathUtils() *PathUtils {
	return &PathUtils{}
}

// NormalizePath возвращает абсолютный очищенный путь.
func (pu *PathUtils) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: пустой путь", ErrInvalidPath)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("не удалось получить абсолютный путь для %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// JoinPath соединяет base и относительный rel после проверки rel.
func (pu *PathUtils) JoinPath(base, rel string) (string, error) {
	if err := ValidatePath(rel); err != nil {
		return "", err
	}
	return filepath.Join(base, rel), nil
}

// IsSubPath проверяет, что child лежит внутри parent или совпадает с ним.
func (pu *PathUtils) IsSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// EnsureDir создаёт директорию, если её нет.
func (pu *PathUtils) EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s существует и не является директорией", ErrInvalidPath, path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(path, DirMode)
}
