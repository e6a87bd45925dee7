package esbuild

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

const (
	pluginName = "knit"

	// fileNamespace is esbuild's namespace for files on disk.
	fileNamespace = "file"
	// virtualNamespace holds modules that have no file behind them.
	virtualNamespace = "virtual"
)

// plugin routes esbuild's resolve and load callbacks to knit's ports.
// esbuild calls it from several goroutines; the first failure wins.
type plugin struct {
	ctx      context.Context
	resolver ports.SpecifierResolver
	loader   ports.ModuleLoader

	mu  sync.Mutex
	err error
}

func newPlugin(ctx context.Context, resolver ports.SpecifierResolver, loader ports.ModuleLoader) *plugin {
	return &plugin{ctx: ctx, resolver: resolver, loader: loader}
}

func (p *plugin) plugin() api.Plugin {
	return api.Plugin{
		Name: pluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: ".*"}, p.onResolve)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: fileNamespace}, p.onLoad)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: virtualNamespace}, p.onLoad)
		},
	}
}

func (p *plugin) onResolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	if err := p.ctx.Err(); err != nil {
		return api.OnResolveResult{}, p.fail(err)
	}

	// Entry points are canonicalized before the build starts.
	if args.Kind == api.ResolveEntryPoint {
		return api.OnResolveResult{Path: args.Path, Namespace: fileNamespace}, nil
	}

	id, err := p.resolver.Resolve(identityOf(args.Namespace, args.Importer), args.Path)
	if err != nil {
		return api.OnResolveResult{}, p.fail(err)
	}

	if path, ok := id.Path(); ok {
		return api.OnResolveResult{Path: path, Namespace: fileNamespace}, nil
	}
	tag, _ := id.Tag()
	return api.OnResolveResult{Path: tag, Namespace: virtualNamespace}, nil
}

func (p *plugin) onLoad(args api.OnLoadArgs) (api.OnLoadResult, error) {
	if err := p.ctx.Err(); err != nil {
		return api.OnLoadResult{}, p.fail(err)
	}

	src, err := p.loader.Load(identityOf(args.Namespace, args.Path))
	if err != nil {
		return api.OnLoadResult{}, p.fail(err)
	}

	contents := string(src.Contents)
	return api.OnLoadResult{
		Contents:   &contents,
		ResolveDir: filepath.Dir(args.Path),
		Loader:     loaderFor(args.Path),
	}, nil
}

// fail records err if it is the first failure and returns it for esbuild to report.
func (p *plugin) fail(err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
	return err
}

func (p *plugin) failure() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func identityOf(namespace, path string) domain.FileIdentity {
	if namespace == virtualNamespace {
		return domain.Virtual(path)
	}
	return domain.Concrete(path)
}

func loaderFor(path string) api.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsx":
		return api.LoaderJSX
	case ".ts", ".mts", ".cts":
		return api.LoaderTS
	case ".tsx":
		return api.LoaderTSX
	case ".json":
		return api.LoaderJSON
	case ".css":
		return api.LoaderCSS
	default:
		return api.LoaderJS
	}
}
