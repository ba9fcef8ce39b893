package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileStem(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/media/movie.mkv", "movie"},
		{"clip.mp4", "clip"},
		{"/a/b/noext", "noext"},
		{"archive.tar.gz", "archive.tar"},
	}

	for _, tt := range tests {
		got := GetFileStem(tt.path)
		if got != tt.expected {
			t.Errorf("GetFileStem(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()

	video := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(video, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !IsVideoFile(video) {
		t.Errorf("IsVideoFile(%q) = false, want true", video)
	}
	if IsVideoFile(text) {
		t.Errorf("IsVideoFile(%q) = true, want false", text)
	}
	if IsVideoFile(dir) {
		t.Error("IsVideoFile() on a directory = true, want false")
	}
	if IsVideoFile(filepath.Join(dir, "missing.mkv")) {
		t.Error("IsVideoFile() on a missing file = true, want false")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists() = true for missing file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for directory")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mkv")
	dst := filepath.Join(dir, "dst.mkv")
	if err := os.WriteFile(src, []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}
	if FileExists(src) {
		t.Error("source still exists after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read destination: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("destination content = %q, want %q", data, "content")
	}
}
