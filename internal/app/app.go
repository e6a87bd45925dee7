// Package app implements the application layer for knit.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/knit/internal/adapters/telemetry" //nolint:depguard // tracing is installed by the app layer
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
	"go.trai.ch/knit/internal/engine/registry"
	"go.trai.ch/knit/internal/engine/resolver"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	discoverer   ports.ManifestDiscoverer
	registry     *registry.Builder
	fs           ports.FileSystem
	loader       ports.ModuleLoader
	bundler      ports.Bundler
	store        ports.BundleInfoStore
	hasher       ports.Hasher
	tracer       ports.Tracer
	logger       ports.Logger

	watcher        ports.Watcher
	cache          ports.ModuleCache
	debounceWindow time.Duration
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	discoverer ports.ManifestDiscoverer,
	builder *registry.Builder,
	fs ports.FileSystem,
	loader ports.ModuleLoader,
	bundler ports.Bundler,
	store ports.BundleInfoStore,
	hasher ports.Hasher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		discoverer:   discoverer,
		registry:     builder,
		fs:           fs,
		loader:       loader,
		bundler:      bundler,
		store:        store,
		hasher:       hasher,
		tracer:       tracer,
		logger:       log,
	}
}

// WithWatcher enables watch mode. Rebuilds read modules through cache.
func (a *App) WithWatcher(w ports.Watcher, cache ports.ModuleCache, window time.Duration) *App {
	a.watcher = w
	a.cache = cache
	a.debounceWindow = window
	return a
}

// EnableTracing reports finished spans through the logger.
func (a *App) EnableTracing() {
	telemetry.Install(telemetry.NewBridge(a.logger))
}

// ProjectOptions select the project and override how its packages are registered.
// Empty fields keep the values from knit.yaml.
type ProjectOptions struct {
	// Dir is the directory knit.yaml is searched from. Defaults to the working directory.
	Dir string
	// Packages replaces the package directory patterns. Relative patterns are taken from Dir.
	Packages []string
	// Duplicates replaces the duplicate policy.
	Duplicates string
	// StrictAbsolutePaths enables strict absolute specifiers when set.
	StrictAbsolutePaths bool
}

// Packages builds the registry and returns its entries sorted by name.
func (a *App) Packages(ctx context.Context, opts ProjectOptions) ([]domain.PackageEntry, error) {
	cfg, err := a.configure(opts, nil)
	if err != nil {
		return nil, err
	}

	reg, err := a.buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.PackageEntry, 0, reg.Len())
	for entry := range reg.Entries() {
		entries = append(entries, entry)
	}
	return entries, nil
}

// CommandLineImporter tags the virtual importer used when Resolve is given no importer file.
// Only registered package names resolve from it.
const CommandLineImporter = "<command-line>"

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	ProjectOptions
	// Importer is the file the specifiers are imported from. Relative paths are taken from Dir.
	// Empty selects a virtual importer.
	Importer string
	// Specifiers are resolved in order.
	Specifiers []string
}

// Resolution is the identity one specifier resolved to.
type Resolution struct {
	Specifier string
	Identity  domain.FileIdentity
}

// Resolve builds the registry and resolves each specifier as an import of the importer.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) ([]Resolution, error) {
	cfg, err := a.configure(opts.ProjectOptions, nil)
	if err != nil {
		return nil, err
	}

	reg, err := a.buildRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}

	importer := domain.Virtual(CommandLineImporter)
	if opts.Importer != "" {
		importer, err = a.canonicalEntry(anchor(a.dir(opts.ProjectOptions), opts.Importer))
		if err != nil {
			return nil, err
		}
	}

	ctx, span := a.tracer.Start(ctx, "resolve.batch")
	defer span.End()
	span.SetAttribute("specifiers", len(opts.Specifiers))

	reqs := make([]domain.ResolutionRequest, len(opts.Specifiers))
	for i, specifier := range opts.Specifiers {
		reqs[i] = domain.ResolutionRequest{Base: importer, Specifier: specifier}
	}

	ids, err := a.newResolver(reg, cfg).ResolveAll(ctx, reqs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	resolutions := make([]Resolution, len(ids))
	for i, id := range ids {
		resolutions[i] = Resolution{Specifier: opts.Specifiers[i], Identity: id}
	}
	return resolutions, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// Dir is the directory knit.yaml is searched from. Defaults to the working directory.
	Dir string
	// Output also removes the configured bundle and source map.
	Output bool
}

// Clean removes the state directory and, on request, the bundle output.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	cfg, err := a.configure(ProjectOptions{Dir: opts.Dir}, nil)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, domain.NewError(domain.ErrCleanFailed, err, "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(filepath.Join(cfg.Root, domain.DefaultKnitPath()), "bundle info store")

	if opts.Output {
		if cfg.Output != "" {
			remove(cfg.Output, cfg.Output)
		}
		if cfg.SourceMap != "" {
			remove(cfg.SourceMap, cfg.SourceMap)
		}
	}

	return errs
}

// configure loads knit.yaml from the options' directory and applies the overrides.
func (a *App) configure(opts ProjectOptions, bundle *BundleOptions) (*domain.BundleConfig, error) {
	dir := a.dir(opts)

	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, err
	}

	if len(opts.Packages) > 0 {
		cfg.Packages = anchorAll(dir, opts.Packages)
	}
	if opts.Duplicates != "" {
		policy, err := domain.ParseDuplicatePolicy(opts.Duplicates)
		if err != nil {
			return nil, err
		}
		cfg.Duplicates = policy
	}
	if opts.StrictAbsolutePaths {
		cfg.StrictAbsolutePaths = true
	}

	if bundle != nil {
		if err := bundle.apply(dir, cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (a *App) dir(opts ProjectOptions) string {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

func (a *App) buildRegistry(ctx context.Context, cfg *domain.BundleConfig) (*domain.PackageRegistry, error) {
	manifests, err := a.discoverer.Discover(cfg.Root, cfg.Packages)
	if err != nil {
		return nil, err
	}
	return a.registry.Build(ctx, manifests, cfg.Duplicates)
}

func (a *App) newResolver(reg *domain.PackageRegistry, cfg *domain.BundleConfig) *resolver.Resolver {
	return resolver.New(reg, a.fs, resolver.WithStrictAbsolutePaths(cfg.StrictAbsolutePaths))
}

// canonicalEntry returns the identity of an existing file named on the command line or in knit.yaml.
func (a *App) canonicalEntry(path string) (domain.FileIdentity, error) {
	canonical, err := a.fs.Canonicalize(path)
	if err != nil {
		return domain.FileIdentity{}, domain.NewError(domain.ErrEntryNotFound, err, "entry", path)
	}
	return domain.Concrete(canonical), nil
}

func anchor(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func anchorAll(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = anchor(dir, p)
	}
	return out
}
