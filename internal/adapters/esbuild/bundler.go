// Package esbuild drives esbuild's Go API with knit's resolver and loader.
package esbuild

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler implements ports.Bundler with esbuild.
type Bundler struct {
	tracer ports.Tracer
}

// NewBundler creates a Bundler.
func NewBundler(tracer ports.Tracer) *Bundler {
	return &Bundler{tracer: tracer}
}

// Bundle runs esbuild over req.Entries. esbuild parses, links and emits the bundle while every
// import and every read goes through resolver and loader.
// The build must yield exactly one code output; a source map is returned alongside when requested.
func (b *Bundler) Bundle(
	ctx context.Context,
	req domain.BundleRequest,
	resolver ports.SpecifierResolver,
	loader ports.ModuleLoader,
) (*domain.BundleResult, error) {
	ctx, span := b.tracer.Start(ctx, "esbuild")
	defer span.End()

	result, err := b.bundle(ctx, req, resolver, loader)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("bytes", len(result.Code))
	span.SetAttribute("warnings", len(result.Warnings))
	return result, nil
}

func (b *Bundler) bundle(
	ctx context.Context,
	req domain.BundleRequest,
	resolver ports.SpecifierResolver,
	loader ports.ModuleLoader,
) (*domain.BundleResult, error) {
	if len(req.Entries) == 0 {
		return nil, domain.NewError(domain.ErrNoEntries, nil)
	}

	entryPoints := make([]string, 0, len(req.Entries))
	for _, entry := range req.Entries {
		path, ok := entry.Path()
		if !ok {
			return nil, domain.NewError(domain.ErrUnsupportedIdentity, nil, "identity", entry.String())
		}
		entryPoints = append(entryPoints, path)
	}

	p := newPlugin(ctx, resolver, loader)
	options := api.BuildOptions{
		EntryPoints:   entryPoints,
		Bundle:        true,
		Write:         false,
		AbsWorkingDir: req.WorkDir,
		Format:        esbuildFormat(req.Format),
		Platform:      api.PlatformBrowser,
		LogLevel:      api.LogLevelSilent,
		Plugins:       []api.Plugin{p.plugin()},
	}

	// esbuild rejects Outfile for several entries. Emitting into the output directory lets the
	// single-output check below report them instead.
	if len(entryPoints) == 1 {
		options.Outfile = req.Output
	} else {
		options.Outdir = filepath.Dir(req.Output)
	}

	if req.SourceMap {
		options.Sourcemap = api.SourceMapExternal
	}
	if req.Minify {
		options.MinifyWhitespace = true
		options.MinifyIdentifiers = true
		options.MinifySyntax = true
	}

	result := api.Build(options)

	if err := p.failure(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, domain.NewError(domain.ErrBundleFailed, nil,
			"errors", strings.Join(formatMessages(result.Errors), "; "),
		)
	}

	return collectOutput(result, req.SourceMap)
}

// collectOutput picks the single code file and its source map out of esbuild's output files.
func collectOutput(result api.BuildResult, wantSourceMap bool) (*domain.BundleResult, error) {
	var code []api.OutputFile
	maps := make(map[string][]byte)

	for _, file := range result.OutputFiles {
		if strings.HasSuffix(file.Path, domain.SourceMapExt) {
			maps[file.Path] = file.Contents
			continue
		}
		code = append(code, file)
	}

	if len(code) != 1 {
		paths := make([]string, 0, len(code))
		for _, file := range code {
			paths = append(paths, file.Path)
		}
		return nil, domain.NewError(domain.ErrDuplicateOrAmbiguousOutput, nil,
			"outputs", len(code),
			"paths", strings.Join(paths, ", "),
		)
	}

	out := &domain.BundleResult{
		Code:     code[0].Contents,
		Warnings: formatMessages(result.Warnings),
	}
	if wantSourceMap {
		out.SourceMap = maps[code[0].Path+domain.SourceMapExt]
	}
	return out, nil
}

func esbuildFormat(format domain.Format) api.Format {
	switch format {
	case domain.FormatIIFE:
		return api.FormatIIFE
	case domain.FormatCJS:
		return api.FormatCommonJS
	default:
		return api.FormatESModule
	}
}

func formatMessages(msgs []api.Message) []string {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Location == nil {
			out = append(out, msg.Text)
			continue
		}
		out = append(out, fmt.Sprintf("%s:%d:%d: %s",
			msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text))
	}
	return out
}
