package ports

import "io/fs"

// FileSystem abstracts the filesystem operations resolution needs.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for the given path.
	Stat(path string) (fs.FileInfo, error)
	// Canonicalize returns the absolute path of an existing file with symlinks, "." and ".." resolved.
	Canonicalize(path string) (string, error)
	// Glob returns matches for the given pattern.
	Glob(pattern string) ([]string, error)
}
