package dailyrotate

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the set of file operations a Logger performs. It exists so
// tests and embedders can substitute the operating system, e.g. to inject a
// failing rename.
type FileSystem interface {
	// OpenFile opens name for writing with the given os.O_* flags.
	OpenFile(name string, flag int, perm fs.FileMode) (io.WriteCloser, error)
	Stat(name string) (fs.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// OSFileSystem is the FileSystem backed by package os.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// OpenFile opens the named file, creating its parent directories first.
func (OSFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (io.WriteCloser, error) {
	// make sure the parent dir is existed, e.g.:
	// ./foo/bar/baz/hello.log must make sure ./foo/bar/baz is existed
	dirname := filepath.Dir(name)
	if err := os.MkdirAll(dirname, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for logfile: %w", err)
	}
	return os.OpenFile(name, flag, perm)
}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (OSFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// exists reports whether name can be stat'ed.
func exists(fsys FileSystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
