package types

import (
	"io"
	"io/fs"
)

// File is a readable, seekable-by-offset file handle. Archives are read
// through ReaderAt, so both the OS and the in-memory filesystems must
// provide it.
type File interface {
	io.Reader
	io.ReaderAt
	io.Closer
	Stat() (fs.FileInfo, error)
}

// FS is the filesystem interface required by the drawables goals
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (File, error)
	Create(name string) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error

	// RealPath returns the canonical form of name, with symbolic links
	// resolved where the implementation supports them.
	RealPath(name string) (string, error)
}
