package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/knit/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/esbuild"   //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/knit/internal/core/ports"
	"go.trai.ch/knit/internal/engine/registry"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.DiscovererNodeID,
			registry.NodeID,
			fs.FileSystemNodeID,
			fs.LoaderNodeID,
			esbuild.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			watcher.WatcherNodeID,
			watcher.ContentCacheNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	discoverer, err := graft.Dep[ports.ManifestDiscoverer](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*registry.Builder](ctx)
	if err != nil {
		return nil, err
	}

	fileSystem, err := graft.Dep[ports.FileSystem](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ModuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BundleInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ModuleCache](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, discoverer, builder, fileSystem, loader, bundler, store, hasher, tracer, log).
		WithWatcher(w, cache, watcher.DefaultDebounceWindow), nil
}
