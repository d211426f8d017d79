package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an entry visited while walking a directory.
type File interface {
	// Path returns the location of the entry as the provider addresses it
	Path() string

	// RelativePath returns the path relative to the walked directory ("." for the directory itself)
	RelativePath() string

	// Info returns entry metadata without following symbolic links
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover entries
type Directory interface {
	// Path returns the location of the directory
	Path() string

	// Walk traverses the directory tree in pre-order, the directory itself first.
	// Children are visited in listing order. Symbolic links are not followed.
	// If the function returns an error, walking stops
	Walk(fn func(File, error) error) error
}

// Reader covers the read-side capability the snapshot engine consumes.
type Reader interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the immediate children of path in listing order,
	// excluding the "." and ".." pseudo-entries.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path, following links
	Stat(path string) (FileInfo, error)

	// Exists reports whether path names an existing entry
	Exists(path string) bool

	// RealPath returns the absolute path with "." / ".." and links resolved
	RealPath(path string) (string, error)

	// Writable reports whether the entry at path carries the owner write bit
	Writable(path string) bool
}

// Writer covers the mutating operations used by delete, copy and empty.
type Writer interface {
	// Mkdir creates a single directory; the parent must exist
	Mkdir(path string, perm fs.FileMode) error

	// CopyFile copies src to dst, overwriting dst and keeping src's permission bits
	CopyFile(src, dst string) error

	// Remove deletes a file or an empty directory
	Remove(path string) error

	// RemoveDir deletes an empty directory
	RemoveDir(path string) error
}

// FileSystemProvider is the full filesystem capability
type FileSystemProvider interface {
	Reader
	Writer
}
