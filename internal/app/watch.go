package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/knit/internal/adapters/watcher" //nolint:depguard // debouncing is part of the watch loop
	"go.trai.ch/knit/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// Watch bundles once and then rebuilds after every debounced batch of file changes.
// Startup failures are returned. Failed rebuilds are logged and watching continues
// until ctx is canceled.
func (a *App) Watch(ctx context.Context, opts BundleOptions) error {
	if a.watcher == nil || a.cache == nil {
		return domain.NewError(domain.ErrWatchFailed, nil, "reason", "no watcher configured")
	}

	cfg, err := a.configure(opts.ProjectOptions, &opts)
	if err != nil {
		return err
	}

	report, err := a.bundle(ctx, cfg, a.cache)
	if err != nil {
		return err
	}
	a.logReport(report)

	root, err := a.fs.Canonicalize(cfg.Root)
	if err != nil {
		return domain.NewError(domain.ErrWatchFailed, err, "path", cfg.Root)
	}
	ignored := a.outputPaths(cfg)

	roots := watchRoots(root, report.PackageDirs)
	if err := a.watcher.Start(ctx, roots); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()
	a.logger.Info("watching " + strings.Join(roots, ", "))

	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan []string)

	debouncer := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		select {
		case batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if _, skip := ignored[event.Path]; skip {
				continue
			}
			debouncer.Add(event.Path)
		}
		return nil
	})

	// Rebuilds run one at a time on this goroutine.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-batches:
				a.rebuild(ctx, cfg, paths)
			}
		}
	})

	return g.Wait()
}

func (a *App) rebuild(ctx context.Context, cfg *domain.BundleConfig, paths []string) {
	a.cache.Invalidate(paths)
	a.logger.Info(fmt.Sprintf("%d files changed, rebuilding", len(paths)))

	report, err := a.bundle(ctx, cfg, a.cache)
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}
	a.logReport(report)
}

func (a *App) logReport(r *BundleReport) {
	msg := fmt.Sprintf("bundled %d modules into %s (%d bytes)", r.Modules, r.Output, r.Bytes)
	if r.Unchanged {
		msg += ", inputs unchanged"
	}
	a.logger.Info(msg)
}

// watchRoots returns root followed by the package directories it does not already contain.
// Symlinked workspace packages resolve outside the root and are watched on their own.
// Packages registered by later rebuilds are not added.
func watchRoots(root string, packageDirs []string) []string {
	roots := []string{root}
	for _, dir := range packageDirs {
		if slices.ContainsFunc(roots, func(r string) bool { return within(r, dir) }) {
			continue
		}
		roots = append(roots, dir)
	}
	return roots
}

func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// outputPaths returns the files a bundle writes, as the watcher reports them.
func (a *App) outputPaths(cfg *domain.BundleConfig) map[string]struct{} {
	paths := make(map[string]struct{}, 4)
	for _, path := range []string{cfg.Output, cfg.SourceMap} {
		if path == "" {
			continue
		}
		paths[path] = struct{}{}
		if dir, err := a.fs.Canonicalize(filepath.Dir(path)); err == nil {
			paths[filepath.Join(dir, filepath.Base(path))] = struct{}{}
		}
	}
	return paths
}
