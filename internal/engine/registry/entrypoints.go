// Package registry builds the package registry from package manifests.
package registry

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

// EntryPointResolver derives the importable names of a package from its manifest.
type EntryPointResolver struct {
	fs ports.FileSystem
}

// NewEntryPointResolver creates an EntryPointResolver that checks targets against fs.
func NewEntryPointResolver(fs ports.FileSystem) *EntryPointResolver {
	return &EntryPointResolver{fs: fs}
}

// ResolveEntryPoints returns the entries exposed by the package in packageDir.
//
// A non-empty exports map wins over the legacy fields and yields one entry per subpath.
// Otherwise the first present of browser, module and main yields a single entry under the package name.
// Every target is canonicalized; a missing file is an error.
func (r *EntryPointResolver) ResolveEntryPoints(
	manifest *domain.PackageManifest,
	packageDir string,
) ([]domain.PackageEntry, error) {
	manifestPath := filepath.Join(packageDir, domain.ManifestFileName)

	name, ok := manifest.PackageName()
	if !ok {
		return nil, domain.NewError(domain.ErrMissingPackageName, nil, "manifest", manifestPath)
	}

	if manifest.HasExports() {
		return r.resolveExports(name, manifest.Exports, packageDir, manifestPath)
	}

	field, target, ok := manifest.LegacyEntry()
	if !ok {
		return nil, domain.NewError(domain.ErrMissingEntryPoint, nil,
			"package", name,
			"manifest", manifestPath,
		)
	}

	path, err := r.fs.Canonicalize(filepath.Join(packageDir, target))
	if err != nil {
		return nil, domain.NewError(domain.ErrUnresolvedEntryPoint, err,
			"package", name,
			"field", field,
			"target", target,
			"manifest", manifestPath,
		)
	}

	return []domain.PackageEntry{{
		Name:     name,
		Identity: domain.Concrete(path),
		Manifest: manifestPath,
	}}, nil
}

func (r *EntryPointResolver) resolveExports(
	name string,
	exports map[string]domain.ExportTarget,
	packageDir, manifestPath string,
) ([]domain.PackageEntry, error) {
	// Sorted so the output and the first reported failure do not depend on map order.
	subpaths := make([]string, 0, len(exports))
	for subpath := range exports {
		subpaths = append(subpaths, subpath)
	}
	slices.Sort(subpaths)

	entries := make([]domain.PackageEntry, 0, len(subpaths))
	for _, subpath := range subpaths {
		if !strings.HasPrefix(subpath, domain.RootSubpath) {
			return nil, domain.NewError(domain.ErrInvalidExportSubpath, nil,
				"package", name,
				"subpath", subpath,
				"manifest", manifestPath,
			)
		}

		target, ok := exports[subpath].Select()
		if !ok {
			return nil, domain.NewError(domain.ErrMissingConditionEntry, nil,
				"package", name,
				"subpath", subpath,
				"manifest", manifestPath,
			)
		}

		path, err := r.fs.Canonicalize(filepath.Join(packageDir, target))
		if err != nil {
			return nil, domain.NewError(domain.ErrUnresolvedExportTarget, err,
				"package", name,
				"subpath", subpath,
				"target", target,
				"manifest", manifestPath,
			)
		}

		entries = append(entries, domain.PackageEntry{
			Name:     domain.ExportedName(name, subpath),
			Identity: domain.Concrete(path),
			Manifest: manifestPath,
		})
	}

	return entries, nil
}
