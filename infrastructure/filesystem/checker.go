package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"ytbatch/domain/media"
)

// DefaultDirPermissions is the mode used for created directories
const DefaultDirPermissions = 0755

// Checker implements the media filesystem ports using the os package
type Checker struct{}

// NewChecker creates a new filesystem checker
func NewChecker() *Checker {
	return &Checker{}
}

// Exists returns true if the path exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates path with all missing parents
func (c *Checker) EnsureDir(path string) error {
	if err := os.MkdirAll(path, DefaultDirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory %s: %v", media.ErrIO, path, err)
	}
	return nil
}

// Open opens a URL list file, mapping a missing file to media.ErrFileNotFound
func (c *Checker) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", media.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: opening %s: %v", media.ErrIO, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: stat %s: %v", media.ErrIO, path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", media.ErrIO, path)
	}

	return f, nil
}

// Ensure Checker implements the media ports
var (
	_ media.DirectoryEnsurer = (*Checker)(nil)
	_ media.URLFileOpener    = (*Checker)(nil)
)
