package filesystem

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ytbatch/domain/media"
)

func TestChecker_EnsureDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "downloads")

	c := NewChecker()
	if err := c.EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir() unexpected error: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", target)
	}

	// Existing directory is fine
	if err := c.EnsureDir(target); err != nil {
		t.Errorf("EnsureDir() on existing directory: %v", err)
	}
}

func TestChecker_EnsureDir_BlockedByFile(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := NewChecker().EnsureDir(filepath.Join(blocker, "downloads"))
	if !errors.Is(err, media.ErrIO) {
		t.Errorf("EnsureDir() error = %v, want ErrIO", err)
	}
}

func TestChecker_Open(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "urls.txt")
	if err := os.WriteFile(path, []byte("https://youtu.be/a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rc, err := NewChecker().Open(path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "https://youtu.be/a\n" {
		t.Errorf("content = %q", data)
	}
}

func TestChecker_Open_Errors(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(root, "missing.txt"), media.ErrFileNotFound},
		{"directory", root, media.ErrIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChecker().Open(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestChecker_Exists(t *testing.T) {
	root := t.TempDir()
	c := NewChecker()

	if !c.Exists(root) {
		t.Errorf("Exists(%q) = false, want true", root)
	}
	if c.Exists(filepath.Join(root, "nope")) {
		t.Error("Exists() = true for missing path")
	}
}
