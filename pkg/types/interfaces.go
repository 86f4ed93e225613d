package types

import (
	"io/fs"
)

// FS is the filesystem the disk store, dependency resolver, packager and
// registry cache run on. Paths are host paths.
type FS interface {
	// Reads. ReadDir returns entries sorted by name; that order is the walk
	// order of the resolver and the packager.
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)

	// Writes used to materialize packages and archives.
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	RemoveAll(path string) error

	// Rename moves a fully extracted download into the package cache.
	Rename(oldpath, newpath string) error
}
