package esbuild_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knit/internal/adapters/esbuild"
	"go.trai.ch/knit/internal/adapters/fs"
	"go.trai.ch/knit/internal/adapters/telemetry"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// project writes files below a fresh directory and returns its canonical path.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

// routes makes the resolver answer from a table keyed by specifier.
func routes(t *testing.T, table map[string]domain.FileIdentity) *mocks.MockSpecifierResolver {
	t.Helper()
	resolver := mocks.NewMockSpecifierResolver(gomock.NewController(t))
	resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ domain.FileIdentity, specifier string) (domain.FileIdentity, error) {
			if id, ok := table[specifier]; ok {
				return id, nil
			}
			return domain.FileIdentity{}, domain.NewError(domain.ErrUnresolvedRelativePath, nil, "specifier", specifier)
		},
	).AnyTimes()
	return resolver
}

func request(root string, entries ...string) domain.BundleRequest {
	ids := make([]domain.FileIdentity, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, domain.Concrete(filepath.Join(root, e)))
	}
	return domain.BundleRequest{
		WorkDir: root,
		Entries: ids,
		Output:  filepath.Join(root, "dist", "bundle.js"),
		Format:  domain.FormatESM,
	}
}

func newBundler() *esbuild.Bundler {
	return esbuild.NewBundler(telemetry.NewNoOpTracer())
}

func loader() *fs.Loader {
	return fs.NewLoader(fs.NewOSFS(), fs.NewHasher())
}

func TestBundler_Bundle(t *testing.T) {
	root := project(t, map[string]string{
		"src/main.js":       "import pad from 'leftpad';\nimport { twice } from './util.js';\nconsole.log(pad(twice('MAIN_MARKER')));\n",
		"src/util.js":       "export const twice = (s) => s + s;\n",
		"pkgs/leftpad/i.js": "export default function pad(s) { return ' ' + s + 'LEFTPAD_MARKER'; }\n",
	})
	resolver := routes(t, map[string]domain.FileIdentity{
		"leftpad":   domain.Concrete(filepath.Join(root, "pkgs", "leftpad", "i.js")),
		"./util.js": domain.Concrete(filepath.Join(root, "src", "util.js")),
	})

	result, err := newBundler().Bundle(t.Context(), request(root, "src/main.js"), resolver, loader())
	require.NoError(t, err)

	code := string(result.Code)
	assert.Contains(t, code, "MAIN_MARKER")
	assert.Contains(t, code, "LEFTPAD_MARKER")
	assert.Contains(t, code, "s + s")
	assert.NotContains(t, code, "import ")
	assert.Nil(t, result.SourceMap)
}

func TestBundler_Bundle_SourceMapAndMinify(t *testing.T) {
	root := project(t, map[string]string{
		"src/main.js": "const longVariableName = 'KEEP';\nconsole.log(longVariableName);\n",
	})
	req := request(root, "src/main.js")
	req.SourceMap = true
	req.Minify = true
	req.Format = domain.FormatIIFE

	result, err := newBundler().Bundle(t.Context(), req, routes(t, nil), loader())
	require.NoError(t, err)

	assert.Contains(t, string(result.Code), "KEEP")
	assert.NotContains(t, string(result.Code), "longVariableName")
	require.NotEmpty(t, result.SourceMap)

	var sourceMap struct {
		Version int      `json:"version"`
		Sources []string `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(result.SourceMap, &sourceMap))
	assert.Equal(t, 3, sourceMap.Version)
	require.Len(t, sourceMap.Sources, 1)
	assert.Equal(t, "main.js", filepath.Base(sourceMap.Sources[0]))
}

func TestBundler_Bundle_ResolverErrorIsKept(t *testing.T) {
	root := project(t, map[string]string{
		"src/main.js": "import './missing.js';\n",
	})

	_, err := newBundler().Bundle(t.Context(), request(root, "src/main.js"), routes(t, nil), loader())
	require.ErrorIs(t, err, domain.ErrUnresolvedRelativePath)
}

func TestBundler_Bundle_LoaderErrorIsKept(t *testing.T) {
	root := project(t, map[string]string{
		"src/main.js": "import 'virtual-thing';\n",
	})
	resolver := routes(t, map[string]domain.FileIdentity{"virtual-thing": domain.Virtual("thing")})

	_, err := newBundler().Bundle(t.Context(), request(root, "src/main.js"), resolver, loader())
	require.ErrorIs(t, err, domain.ErrUnsupportedIdentity)
}

func TestBundler_Bundle_SyntaxError(t *testing.T) {
	root := project(t, map[string]string{
		"src/main.js": "export const = ;\n",
	})

	_, err := newBundler().Bundle(t.Context(), request(root, "src/main.js"), routes(t, nil), loader())
	require.ErrorIs(t, err, domain.ErrBundleFailed)
}

func TestBundler_Bundle_AmbiguousOutput(t *testing.T) {
	t.Run("css side output", func(t *testing.T) {
		root := project(t, map[string]string{
			"src/main.js":   "import './style.css';\nconsole.log(1);\n",
			"src/style.css": "body { color: red; }\n",
		})
		resolver := routes(t, map[string]domain.FileIdentity{
			"./style.css": domain.Concrete(filepath.Join(root, "src", "style.css")),
		})

		_, err := newBundler().Bundle(t.Context(), request(root, "src/main.js"), resolver, loader())
		require.ErrorIs(t, err, domain.ErrDuplicateOrAmbiguousOutput)
	})

	t.Run("several entries", func(t *testing.T) {
		root := project(t, map[string]string{
			"src/a.js": "console.log('a');\n",
			"src/b.js": "console.log('b');\n",
		})

		_, err := newBundler().Bundle(t.Context(), request(root, "src/a.js", "src/b.js"), routes(t, nil), loader())
		require.ErrorIs(t, err, domain.ErrDuplicateOrAmbiguousOutput)
	})
}

func TestBundler_Bundle_InvalidRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockSpecifierResolver(ctrl)
	moduleLoader := mocks.NewMockModuleLoader(ctrl)

	_, err := newBundler().Bundle(t.Context(), domain.BundleRequest{}, resolver, moduleLoader)
	require.ErrorIs(t, err, domain.ErrNoEntries)

	_, err = newBundler().Bundle(t.Context(), domain.BundleRequest{
		Entries: []domain.FileIdentity{domain.Virtual("<stdin>")},
	}, resolver, moduleLoader)
	require.ErrorIs(t, err, domain.ErrUnsupportedIdentity)
}

func TestBundler_Bundle_Canceled(t *testing.T) {
	root := project(t, map[string]string{"src/main.js": "console.log(1);\n"})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newBundler().Bundle(ctx, request(root, "src/main.js"), routes(t, nil), loader())
	require.ErrorIs(t, err, context.Canceled)
}
