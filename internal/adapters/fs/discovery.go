package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.ManifestDiscoverer = (*Discoverer)(nil)

// recursiveSuffix marks a pattern whose directory is searched for manifests at any depth.
const recursiveSuffix = "/**"

// Discoverer expands package directory patterns into manifest paths.
type Discoverer struct {
	fs     ports.FileSystem
	walker *Walker
}

// NewDiscoverer creates a Discoverer.
func NewDiscoverer(fs ports.FileSystem, walker *Walker) *Discoverer {
	return &Discoverer{fs: fs, walker: walker}
}

// Discover resolves patterns relative to root. Absolute patterns are used as is.
//
// A pattern is a filepath.Glob pattern. Matched directories must contain a package.json,
// matched package.json files are taken as is, and other files are ignored.
// A pattern ending in "/**" collects every package.json below its directory, skipping node_modules.
func (d *Discoverer) Discover(root string, patterns []string) ([]string, error) {
	uniquePaths := make(map[string]struct{})

	for _, pattern := range patterns {
		if dir, ok := strings.CutSuffix(filepath.ToSlash(pattern), recursiveSuffix); ok {
			if err := d.walkManifests(anchor(root, filepath.FromSlash(dir)), pattern, uniquePaths); err != nil {
				return nil, err
			}
			continue
		}

		if err := d.globManifests(root, pattern, uniquePaths); err != nil {
			return nil, err
		}
	}

	result := make([]string, 0, len(uniquePaths))
	for path := range uniquePaths {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}

// walkManifests collects every package.json below dir. A walk that fails part way returns an error
// so the registry is never built from a truncated list.
func (d *Discoverer) walkManifests(dir, pattern string, into map[string]struct{}) error {
	info, err := d.fs.Stat(dir)
	if err != nil {
		return domain.NewError(domain.ErrPackageDirNotFound, err, "pattern", pattern, "path", dir)
	}
	if !info.IsDir() {
		return domain.NewError(domain.ErrPackageDirNotFound, nil, "pattern", pattern, "path", dir)
	}

	for path, err := range d.walker.WalkFiles(dir, nil) {
		if err != nil {
			return domain.NewError(domain.ErrPackageDirUnreadable, err, "pattern", pattern, "path", dir)
		}
		if filepath.Base(path) == domain.ManifestFileName {
			into[path] = struct{}{}
		}
	}

	return nil
}

func (d *Discoverer) globManifests(root, pattern string, into map[string]struct{}) error {
	path := anchor(root, pattern)

	matches, err := d.fs.Glob(path)
	if err != nil {
		return domain.NewError(domain.ErrInvalidPackagePattern, err, "pattern", pattern)
	}
	if len(matches) == 0 {
		return domain.NewError(domain.ErrPackageDirNotFound, nil, "pattern", pattern, "path", path)
	}

	for _, match := range matches {
		info, err := d.fs.Stat(match)
		if err != nil {
			return domain.NewError(domain.ErrPackageDirNotFound, err, "path", match)
		}

		if !info.IsDir() {
			if filepath.Base(match) == domain.ManifestFileName {
				into[match] = struct{}{}
			}
			continue
		}

		manifest := filepath.Join(match, domain.ManifestFileName)
		if _, err := d.fs.Stat(manifest); err != nil {
			return domain.NewError(domain.ErrPackageDirNotFound, err, "path", match)
		}
		into[manifest] = struct{}{}
	}

	return nil
}

func anchor(root, pattern string) string {
	if filepath.IsAbs(pattern) {
		return pattern
	}
	return filepath.Join(root, pattern)
}
