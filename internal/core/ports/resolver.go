package ports

import "go.trai.ch/knit/internal/core/domain"

// SpecifierResolver maps an import specifier, seen from a referencing module, to a module identity.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type SpecifierResolver interface {
	// Resolve returns the identity specifier names when imported from base.
	Resolve(base domain.FileIdentity, specifier string) (domain.FileIdentity, error)
}

// ModuleLoader returns the source of a module identity.
type ModuleLoader interface {
	// Load reads the module named by id.
	Load(id domain.FileIdentity) (*domain.ModuleSource, error)
}
