package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFileSystem(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileSystem(tempDir)

	content := []byte("Hello, World!")
	if err := os.MkdirAll(filepath.Join(tempDir, "css"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "index.html"), content, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "css", "styles.css"), []byte("body {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Test ReadFile
	readContent, err := fs.ReadFile("index.html")
	if err != nil {
		t.Errorf("ReadFile failed: %v", err)
	}
	if string(readContent) != string(content) {
		t.Errorf("Expected %s, got %s", content, readContent)
	}

	// Test ReadFile in a sub directory
	readContent, err = fs.ReadFile("css/styles.css")
	if err != nil {
		t.Errorf("ReadFile failed: %v", err)
	}
	if string(readContent) != "body {}" {
		t.Errorf("Expected body {}, got %s", readContent)
	}

	// Directories are not files
	if _, err := fs.ReadFile("css"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound for a directory, got %v", err)
	}
}

func TestReadFileNotFound(t *testing.T) {
	fs := NewLocalFileSystem(t.TempDir())

	if _, err := fs.ReadFile("missing.html"); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestReadFileInvalidPath(t *testing.T) {
	tempDir := t.TempDir()
	root := filepath.Join(tempDir, "public")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "secret.txt"), []byte("secret"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewLocalFileSystem(root)
	for _, name := range []string{"", "/", "../secret.txt", "css/../../secret.txt", "a\x00b"} {
		if _, err := fs.ReadFile(name); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ReadFile(%q): expected ErrInvalidPath, got %v", name, err)
		}
	}
}

func TestUtilityFunctions(t *testing.T) {
	path := "/path/to/file.txt"

	ext := GetFileExtension(path)
	if ext != ".txt" {
		t.Errorf("Expected .txt, got %s", ext)
	}
}
