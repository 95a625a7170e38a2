package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Storage defines the interface for the filesystem operations of a rename.
// Names are basenames inside the storage's directory.
type Storage interface {
	// Exists reports whether a file with the name is present
	Exists(name string) (bool, error)

	// Rename moves from to to, replacing any file already at to
	Rename(from, to string) error
}

// LocalStorage implements the Storage interface using the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage rooted at an existing directory
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("opening storage directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening storage directory: %s is not a directory", basePath)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// Exists checks for a file in local storage
func (l *LocalStorage) Exists(name string) (bool, error) {
	fullPath, err := l.path(name)
	if err != nil {
		return false, err
	}
	_, err = os.Lstat(fullPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking file: %w", err)
	}
	return true, nil
}

// Rename renames a file in local storage
func (l *LocalStorage) Rename(from, to string) error {
	fromPath, err := l.path(from)
	if err != nil {
		return err
	}
	toPath, err := l.path(to)
	if err != nil {
		return err
	}
	if err := os.Rename(fromPath, toPath); err != nil {
		return fmt.Errorf("renaming file: %w", err)
	}
	return nil
}

func (l *LocalStorage) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	return filepath.Join(l.basePath, name), nil
}
