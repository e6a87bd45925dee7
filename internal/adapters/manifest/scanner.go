// Package manifest decodes package.json files into domain manifests.
package manifest

import (
	"encoding/json"
	"unicode/utf8"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.ManifestScanner = (*Scanner)(nil)

// Scanner implements ports.ManifestScanner on top of a ports.FileSystem.
type Scanner struct {
	fs ports.FileSystem
}

// NewScanner creates a new Scanner.
func NewScanner(fs ports.FileSystem) *Scanner {
	return &Scanner{fs: fs}
}

// Scan reads the manifest at path.
// Unknown keys are ignored. A present key with the wrong JSON type is a parse error.
func (s *Scanner) Scan(path string) (*domain.PackageManifest, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.ErrManifestRead, err, "manifest", path)
	}

	if !utf8.Valid(data) {
		return nil, domain.NewError(domain.ErrManifestRead, nil, "manifest", path, "reason", "invalid utf-8")
	}

	var manifest domain.PackageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, domain.NewError(domain.ErrManifestParse, err, "manifest", path)
	}

	return &manifest, nil
}
