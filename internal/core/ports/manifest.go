package ports

import "go.trai.ch/knit/internal/core/domain"

// ManifestScanner reads a package.json into a PackageManifest.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestScanner interface {
	// Scan reads and decodes the manifest at path without validating it.
	Scan(path string) (*domain.PackageManifest, error)
}

// ManifestDiscoverer expands package directory patterns into manifest paths.
type ManifestDiscoverer interface {
	// Discover returns the sorted, de-duplicated package.json paths matched by patterns under root.
	Discover(root string, patterns []string) ([]string, error)
}
