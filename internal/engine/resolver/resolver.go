// Package resolver maps import specifiers to module identities.
package resolver

import (
	"context"
	"path/filepath"
	"runtime"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.SpecifierResolver = (*Resolver)(nil)

// Resolver resolves specifiers against a package registry and the filesystem.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	registry       *domain.PackageRegistry
	fs             ports.FileSystem
	strictAbsolute bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrictAbsolutePaths canonicalizes absolute specifiers and fails when they do not exist.
// By default absolute specifiers are returned verbatim without touching the filesystem.
func WithStrictAbsolutePaths(strict bool) Option {
	return func(r *Resolver) {
		r.strictAbsolute = strict
	}
}

// New creates a Resolver over a built registry.
func New(registry *domain.PackageRegistry, fs ports.FileSystem, opts ...Option) *Resolver {
	r := &Resolver{registry: registry, fs: fs}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the identity specifier names when imported from base.
//
// Registered package names win over any file lookup. Otherwise a relative specifier is
// joined with the directory of base and canonicalized, and an absolute one is used as is.
// No extensions are probed and no node_modules directories are searched.
func (r *Resolver) Resolve(base domain.FileIdentity, specifier string) (domain.FileIdentity, error) {
	if id, ok := r.registry.Lookup(specifier); ok {
		return id, nil
	}

	basePath, ok := base.Path()
	if !ok {
		return domain.FileIdentity{}, domain.NewError(domain.ErrBaseNotResolvable, nil,
			"base", base.String(),
			"specifier", specifier,
		)
	}

	if filepath.IsAbs(specifier) {
		return r.resolveAbsolute(basePath, specifier)
	}

	joined := filepath.Join(filepath.Dir(basePath), specifier)
	canonical, err := r.fs.Canonicalize(joined)
	if err != nil {
		return domain.FileIdentity{}, domain.NewError(domain.ErrUnresolvedRelativePath, err,
			"base", basePath,
			"specifier", specifier,
			"path", joined,
		)
	}

	return domain.Concrete(canonical), nil
}

func (r *Resolver) resolveAbsolute(basePath, specifier string) (domain.FileIdentity, error) {
	if !r.strictAbsolute {
		return domain.Concrete(specifier), nil
	}

	canonical, err := r.fs.Canonicalize(specifier)
	if err != nil {
		return domain.FileIdentity{}, domain.NewError(domain.ErrUnresolvedAbsolutePath, err,
			"base", basePath,
			"specifier", specifier,
		)
	}
	return domain.Concrete(canonical), nil
}

// ResolveAll resolves a batch of requests concurrently.
// Results keep the order of reqs. The first failure cancels the remaining work and is returned.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []domain.ResolutionRequest) ([]domain.FileIdentity, error) {
	results := make([]domain.FileIdentity, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := r.Resolve(req.Base, req.Specifier)
			if err != nil {
				return err
			}
			results[i] = id
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
