package dailyrotate

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFS is an in-memory FileSystem. Open handles keep writing to the file
// they opened even after it is renamed, like an inode.
type memFS struct {
	mu    sync.Mutex
	files map[string]*memFile
	clock Clock

	// hooks for failure injection, may be nil
	renameErr func(oldpath, newpath string) error
	openErr   func(name string, flag int) error
	removeErr func(name string) error
}

type memFile struct {
	data    []byte
	modTime time.Time
}

func newMemFS(clock Clock) *memFS {
	return &memFS{files: make(map[string]*memFile), clock: clock}
}

func (m *memFS) OpenFile(name string, flag int, _ fs.FileMode) (io.WriteCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.openErr != nil {
		if err := m.openErr(name, flag); err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}
	f, ok := m.files[name]
	if !ok {
		if flag&os.O_CREATE == 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		f = &memFile{modTime: m.clock.Now()}
		m.files[name] = f
	}
	if flag&os.O_TRUNC != 0 {
		f.data = nil
		f.modTime = m.clock.Now()
	}
	return &memHandle{fs: m, file: f}, nil
}

func (m *memFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return memInfo{name: filepath.Base(name), size: int64(len(f.data)), modTime: f.modTime}, nil
}

func (m *memFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renameErr != nil {
		if err := m.renameErr(oldpath, newpath); err != nil {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
		}
	}
	f, ok := m.files[oldpath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	m.files[newpath] = f
	delete(m.files, oldpath)
	return nil
}

func (m *memFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.removeErr != nil {
		if err := m.removeErr(name); err != nil {
			return &fs.PathError{Op: "remove", Path: name, Err: err}
		}
	}
	if _, ok := m.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(m.files, name)
	return nil
}

// put creates or replaces a file.
func (m *memFS) put(name, content string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = &memFile{data: []byte(content), modTime: modTime}
}

// read returns the content of a file and whether it exists.
func (m *memFS) read(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[name]
	if !ok {
		return "", false
	}
	return string(f.data), true
}

// names returns all file names, sorted.
func (m *memFS) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type memHandle struct {
	fs     *memFS
	file   *memFile
	closed bool
}

func (h *memHandle) Write(b []byte) (int, error) {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()
	if h.closed {
		return 0, os.ErrClosed
	}
	h.file.data = append(h.file.data, b...)
	h.file.modTime = h.fs.clock.Now()
	return len(b), nil
}

func (h *memHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()
	if h.closed {
		return os.ErrClosed
	}
	h.closed = true
	return nil
}

type memInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return i.size }
func (i memInfo) Mode() fs.FileMode  { return 0644 }
func (i memInfo) ModTime() time.Time { return i.modTime }
func (i memInfo) IsDir() bool        { return false }
func (i memInfo) Sys() any           { return nil }

func Test_OSFileSystem(t *testing.T) {
	dir := filepath.Join(baseTestDir, "Test_OSFileSystem")
	defer os.RemoveAll(dir)

	var fsys OSFileSystem
	name := filepath.Join(dir, "nest1", "nest2", "app.log")

	f, err := fsys.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err, "OpenFile should create parent directories")
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := fsys.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
	assert.True(t, exists(fsys, name))

	require.NoError(t, fsys.Rename(name, name+".1"))
	assert.False(t, exists(fsys, name))
	assert.True(t, exists(fsys, name+".1"))

	require.NoError(t, fsys.Remove(name+".1"))
	assert.False(t, exists(fsys, name+".1"))
}
