package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is one entry met while walking a Directory.
type File interface {
	// RelativePath returns the slash-separated path relative to the walk root.
	RelativePath() string

	Info() FileInfo

	ReadContent() ([]byte, error)
}

// Directory is a tree that can be walked in lexical order.
type Directory interface {
	// Walk calls fn for every file and directory under the root, the root
	// included. A non-nil error from fn stops the walk and is returned.
	// A panic inside fn is converted to an error.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider gives the collector and scanner access to SQL sources.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
