package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Error constants for better error handling
var (
	ErrFileNotFound = fmt.Errorf("filesystem: file not found")
	ErrInvalidPath  = fmt.Errorf("filesystem: invalid path")
)

// Filesystem gives read access to the files below a root directory.
type Filesystem interface {
	ReadFile(name string) ([]byte, error)
}

type localFileSystem struct {
	root string
}

func NewLocalFileSystem(root string) Filesystem {
	return &localFileSystem{root: root}
}

// resolve maps a slash separated name onto the root, refusing names that
// would leave it.
func (filesystem *localFileSystem) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(filepath.ToSlash(name), "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}

	cleaned := path.Clean("/" + name)
	if cleaned == "/" {
		return "", ErrInvalidPath
	}

	relative := strings.TrimPrefix(cleaned, "/")
	if !fs.ValidPath(relative) {
		return "", ErrInvalidPath
	}

	return filepath.Join(filesystem.root, filepath.FromSlash(relative)), nil
}

func (filesystem *localFileSystem) ReadFile(name string) ([]byte, error) {
	fullPath, err := filesystem.resolve(name)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("closing file error", "error", closeErr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, name)
	}

	return io.ReadAll(file)
}

func GetFileExtension(name string) string {
	return filepath.Ext(name)
}
