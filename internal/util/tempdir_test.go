package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateTempDir(t *testing.T) {
	base := t.TempDir()

	td, err := CreateTempDir(base, "ssimtune_test")
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(td.Path), "ssimtune_test_") {
		t.Errorf("temp dir name %q missing prefix", filepath.Base(td.Path))
	}

	info, err := os.Stat(td.Path)
	if err != nil {
		t.Fatalf("temp dir was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("temp dir path is not a directory")
	}

	if err := td.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(base)); err != nil {
		t.Fatalf("base dir disappeared: %v", err)
	}
}

func TestCleanupRemovesContents(t *testing.T) {
	td, err := CreateTempDir(t.TempDir(), "ssimtune_test")
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}
	path := td.Path

	if err := os.WriteFile(filepath.Join(path, "sample_0.mkv"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := td.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("directory still exists after Cleanup")
	}

	// Second cleanup is a no-op.
	if err := td.Cleanup(); err != nil {
		t.Errorf("repeated Cleanup() error = %v", err)
	}
}

func TestEnsureDirectoryWritable(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDirectoryWritable(dir); err != nil {
		t.Errorf("EnsureDirectoryWritable() error = %v", err)
	}

	if err := EnsureDirectoryWritable(filepath.Join(dir, "missing")); err == nil {
		t.Error("EnsureDirectoryWritable() expected error for missing directory")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectoryWritable(file); err == nil {
		t.Error("EnsureDirectoryWritable() expected error for non-directory")
	}
}
