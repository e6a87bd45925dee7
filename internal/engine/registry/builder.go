package registry

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

// Builder scans manifests and folds their entry points into a PackageRegistry.
type Builder struct {
	scanner     ports.ManifestScanner
	entryPoints *EntryPointResolver
	logger      ports.Logger
	tracer      ports.Tracer
}

// NewBuilder creates a Builder.
func NewBuilder(
	scanner ports.ManifestScanner,
	fs ports.FileSystem,
	logger ports.Logger,
	tracer ports.Tracer,
) *Builder {
	return &Builder{
		scanner:     scanner,
		entryPoints: NewEntryPointResolver(fs),
		logger:      logger,
		tracer:      tracer,
	}
}

// Build scans manifestPaths in order and returns the frozen registry.
// The first failing manifest aborts the build; no partial registry is returned.
func (b *Builder) Build(
	ctx context.Context,
	manifestPaths []string,
	policy domain.DuplicatePolicy,
) (*domain.PackageRegistry, error) {
	ctx, span := b.tracer.Start(ctx, "registry.build")
	defer span.End()
	span.SetAttribute("manifests", len(manifestPaths))

	reg, err := b.build(ctx, manifestPaths, policy)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("packages", reg.Len())
	return reg, nil
}

func (b *Builder) build(
	ctx context.Context,
	manifestPaths []string,
	policy domain.DuplicatePolicy,
) (*domain.PackageRegistry, error) {
	rb := domain.NewRegistryBuilder(policy)

	for _, manifestPath := range manifestPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		manifest, err := b.scanner.Scan(manifestPath)
		if err != nil {
			return nil, err
		}

		entries, err := b.entryPoints.ResolveEntryPoints(manifest, filepath.Dir(manifestPath))
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if err := rb.Add(entry); err != nil {
				return nil, err
			}
		}
	}

	for _, r := range rb.Replacements() {
		b.logger.Warn(fmt.Sprintf(
			"package %q from %s replaces the one from %s",
			r.Current.Name, r.Current.Manifest, r.Previous.Manifest,
		))
	}

	return rb.Build(), nil
}
