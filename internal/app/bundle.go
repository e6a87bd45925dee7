package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

// SourceMapBesideOutput as BundleOptions.SourceMap writes the map next to the bundle.
const SourceMapBesideOutput = "auto"

// BundleOptions configuration for the Bundle and Watch methods.
// Empty fields keep the values from knit.yaml; relative paths are taken from Dir.
type BundleOptions struct {
	ProjectOptions
	Entries   []string
	Output    string
	SourceMap string
	Format    string
	Minify    bool
}

func (o *BundleOptions) apply(dir string, cfg *domain.BundleConfig) error {
	if len(o.Entries) > 0 {
		cfg.Entries = anchorAll(dir, o.Entries)
	}
	if o.Output != "" {
		cfg.Output = anchor(dir, o.Output)
	}
	switch o.SourceMap {
	case "":
	case SourceMapBesideOutput:
		if cfg.Output != "" {
			cfg.SourceMap = cfg.Output + domain.SourceMapExt
		}
	default:
		cfg.SourceMap = anchor(dir, o.SourceMap)
	}
	if o.Format != "" {
		format, err := domain.ParseFormat(o.Format)
		if err != nil {
			return err
		}
		cfg.Format = format
	}
	if o.Minify {
		cfg.Minify = true
	}
	return nil
}

// BundleReport summarizes a written bundle.
type BundleReport struct {
	Output    string
	SourceMap string
	// Bytes is the size of the bundle.
	Bytes int
	// Modules is the number of files read from disk.
	Modules  int
	Packages int
	// Unchanged is set when the inputs match the previous bundle of the same output.
	Unchanged bool
	// PackageDirs are the canonical directories of the registered packages, sorted.
	PackageDirs []string
}

// Bundle builds the registry, bundles the entries and writes the output.
func (a *App) Bundle(ctx context.Context, opts BundleOptions) (*BundleReport, error) {
	cfg, err := a.configure(opts.ProjectOptions, &opts)
	if err != nil {
		return nil, err
	}
	return a.bundle(ctx, cfg, a.loader)
}

func (a *App) bundle(ctx context.Context, cfg *domain.BundleConfig, loader ports.ModuleLoader) (*BundleReport, error) {
	if len(cfg.Entries) == 0 {
		return nil, domain.NewError(domain.ErrNoEntries, nil)
	}
	if cfg.Output == "" {
		return nil, domain.NewError(domain.ErrNoOutput, nil)
	}

	ctx, span := a.tracer.Start(ctx, "bundle")
	defer span.End()
	span.SetAttribute("output", cfg.Output)

	report, err := a.runBundle(ctx, cfg, loader)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("modules", report.Modules)
	span.SetAttribute("unchanged", report.Unchanged)
	return report, nil
}

func (a *App) runBundle(ctx context.Context, cfg *domain.BundleConfig, loader ports.ModuleLoader) (*BundleReport, error) {
	reg, err := a.buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.FileIdentity, 0, len(cfg.Entries))
	for _, entry := range cfg.Entries {
		id, err := a.canonicalEntry(entry)
		if err != nil {
			return nil, err
		}
		entries = append(entries, id)
	}

	recorder := newRecordingLoader(loader)
	result, err := a.bundler.Bundle(ctx, domain.BundleRequest{
		WorkDir:   filepath.Dir(cfg.Output),
		Entries:   entries,
		Output:    cfg.Output,
		SourceMap: cfg.SourceMap != "",
		Format:    cfg.Format,
		Minify:    cfg.Minify,
	}, a.newResolver(reg, cfg), recorder)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		a.logger.Warn(warning)
	}

	if err := writeOutput(cfg.Output, result.Code); err != nil {
		return nil, err
	}
	if cfg.SourceMap != "" {
		if err := writeOutput(cfg.SourceMap, result.SourceMap); err != nil {
			return nil, err
		}
	}

	info := a.bundleInfo(cfg, entries, reg.Len(), recorder.modules(), result.Code)
	report := &BundleReport{
		Output:    cfg.Output,
		SourceMap: cfg.SourceMap,
		Bytes:     len(result.Code),
		Modules:   len(info.Modules),
		Packages:  reg.Len(),
	}
	report.PackageDirs = a.packageDirs(reg)

	previous, err := a.store.Get(cfg.Root, cfg.Output)
	if err != nil {
		a.logger.Warn("ignoring previous bundle info: " + err.Error())
	}
	report.Unchanged = previous != nil && previous.InputHash == info.InputHash

	if err := a.store.Put(cfg.Root, info); err != nil {
		return nil, err
	}

	return report, nil
}

func (a *App) bundleInfo(
	cfg *domain.BundleConfig,
	entries []domain.FileIdentity,
	packages int,
	modules map[string]uint64,
	code []byte,
) domain.BundleInfo {
	entryPaths := make([]string, len(entries))
	for i, entry := range entries {
		entryPaths[i] = entry.String()
	}

	digests := make(map[string]string, len(modules))
	for path, hash := range modules {
		digests[path] = fmt.Sprintf("%016x", hash)
	}

	return domain.BundleInfo{
		Output:     cfg.Output,
		Entries:    entryPaths,
		Packages:   packages,
		Modules:    digests,
		InputHash:  a.hasher.ComputeInputHash(modules),
		OutputHash: fmt.Sprintf("%016x", a.hasher.HashContent(code)),
		Timestamp:  time.Now().UTC(),
	}
}

// packageDirs returns the canonical directory of every registered package manifest.
func (a *App) packageDirs(reg *domain.PackageRegistry) []string {
	seen := make(map[string]struct{})
	for entry := range reg.Entries() {
		if entry.Manifest == "" {
			continue
		}
		dir, err := a.fs.Canonicalize(filepath.Dir(entry.Manifest))
		if err != nil {
			continue
		}
		seen[dir] = struct{}{}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return domain.NewError(domain.ErrOutputWriteFailed, err, "path", path)
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return domain.NewError(domain.ErrOutputWriteFailed, err, "path", path)
	}
	return nil
}

// recordingLoader remembers the digest of every file the bundler reads.
// esbuild loads modules from several goroutines.
type recordingLoader struct {
	loader ports.ModuleLoader

	mu     sync.Mutex
	hashes map[string]uint64
}

func newRecordingLoader(loader ports.ModuleLoader) *recordingLoader {
	return &recordingLoader{loader: loader, hashes: make(map[string]uint64)}
}

func (r *recordingLoader) Load(id domain.FileIdentity) (*domain.ModuleSource, error) {
	src, err := r.loader.Load(id)
	if err != nil {
		return nil, err
	}
	if path, ok := id.Path(); ok {
		r.mu.Lock()
		r.hashes[path] = src.Hash
		r.mu.Unlock()
	}
	return src, nil
}

func (r *recordingLoader) modules() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint64, len(r.hashes))
	for path, hash := range r.hashes {
		out[path] = hash
	}
	return out
}
