package ports

import (
	"context"

	"go.trai.ch/knit/internal/core/domain"
)

// Bundler turns entry modules into a single bundle.
// It parses modules, builds the module graph and emits code; every import it meets is routed
// through resolver and every module it reads is routed through loader.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	Bundle(
		ctx context.Context,
		req domain.BundleRequest,
		resolver SpecifierResolver,
		loader ModuleLoader,
	) (*domain.BundleResult, error)
}
