package util

import (
	"fmt"
	"os"
)

// TempDir is a temporary directory that is removed on Cleanup.
type TempDir struct {
	Path string
}

// CreateTempDir creates a new temporary directory under baseDir with the
// given prefix. An empty baseDir uses the system default.
func CreateTempDir(baseDir, prefix string) (*TempDir, error) {
	path, err := os.MkdirTemp(baseDir, prefix+"_")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}
	return &TempDir{Path: path}, nil
}

// Cleanup removes the directory and everything in it.
func (d *TempDir) Cleanup() error {
	if d == nil || d.Path == "" {
		return nil
	}
	err := os.RemoveAll(d.Path)
	d.Path = ""
	return err
}

// EnsureDirectoryWritable verifies that path is an existing, writable directory.
func EnsureDirectoryWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory %s does not exist: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	probe, err := os.CreateTemp(path, ".writecheck")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", path, err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
