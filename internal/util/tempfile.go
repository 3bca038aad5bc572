package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempDir is a temporary directory removed by Cleanup.
type TempDir struct {
	path string
}

// Path returns the directory path.
func (d *TempDir) Path() string {
	return d.path
}

// Cleanup removes the directory and everything under it. Safe to call more
// than once.
func (d *TempDir) Cleanup() error {
	if d == nil || d.path == "" {
		return nil
	}
	err := os.RemoveAll(d.path)
	d.path = ""
	return err
}

// CreateTempDir creates a uniquely named directory under baseDir.
// The directory name is prefix followed by a short unique suffix.
func CreateTempDir(baseDir, prefix string) (*TempDir, error) {
	path := filepath.Join(baseDir, fmt.Sprintf("%s_%s", prefix, uuid.New().String()[:8]))
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory %s: %w", path, err)
	}
	return &TempDir{path: path}, nil
}
