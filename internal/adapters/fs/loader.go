package fs

import (
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.ModuleLoader = (*Loader)(nil)

// Loader reads module sources from disk.
type Loader struct {
	fs     ports.FileSystem
	hasher ports.Hasher
}

// NewLoader creates a Loader.
func NewLoader(fs ports.FileSystem, hasher ports.Hasher) *Loader {
	return &Loader{fs: fs, hasher: hasher}
}

// Load reads the file named by a concrete identity.
// Virtual identities have no file and are rejected.
func (l *Loader) Load(id domain.FileIdentity) (*domain.ModuleSource, error) {
	path, ok := id.Path()
	if !ok {
		return nil, domain.NewError(domain.ErrUnsupportedIdentity, nil, "identity", id.String())
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.ErrModuleRead, err, "path", path)
	}

	return &domain.ModuleSource{
		Identity: id,
		Contents: data,
		Hash:     l.hasher.HashContent(data),
	}, nil
}
