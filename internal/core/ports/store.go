package ports

import "go.trai.ch/knit/internal/core/domain"

// BundleInfoStore defines the interface for storing and retrieving bundle information.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BundleInfoStore interface {
	// Get retrieves the bundle info recorded for an output path.
	// Returns nil, nil if not found.
	Get(root, output string) (*domain.BundleInfo, error)

	// Put stores the bundle info.
	Put(root string, info domain.BundleInfo) error
}
