package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem the configuration is read from.
type FileSystemRepository interface {
	afero.Fs
}

// NewOsFileSystem returns the real filesystem.
func NewOsFileSystem() FileSystemRepository {
	return afero.NewOsFs()
}
