package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knit/internal/adapters/fs"
	"go.trai.ch/knit/internal/core/domain"
)

func newDiscoverer() *fs.Discoverer {
	return fs.NewDiscoverer(fs.NewOSFS(), fs.NewWalker())
}

func TestDiscoverer_Discover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"packages/a/package.json": `{"name":"a"}`,
		"packages/b/package.json": `{"name":"b"}`,
		"packages/README.md":      "docs",
		"tools/cli/package.json":  `{"name":"cli"}`,
	})

	got, err := newDiscoverer().Discover(root, []string{"tools/cli", "packages/*", "packages/a"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "packages", "a", "package.json"),
		filepath.Join(root, "packages", "b", "package.json"),
		filepath.Join(root, "tools", "cli", "package.json"),
	}, got)
}

func TestDiscoverer_Discover_ManifestPattern(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"lib/package.json": `{"name":"lib"}`})

	got, err := newDiscoverer().Discover(root, []string{"lib/package.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "lib", "package.json")}, got)
}

func TestDiscoverer_Discover_AbsolutePattern(t *testing.T) {
	root := t.TempDir()
	elsewhere := t.TempDir()
	writeFiles(t, elsewhere, map[string]string{"shared/package.json": `{"name":"shared"}`})

	got, err := newDiscoverer().Discover(root, []string{filepath.Join(elsewhere, "shared")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(elsewhere, "shared", "package.json")}, got)
}

func TestDiscoverer_Discover_Recursive(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"packages/a/package.json":                      `{"name":"a"}`,
		"packages/group/b/package.json":                `{"name":"b"}`,
		"packages/group/b/node_modules/x/package.json": `{"name":"x"}`,
		"packages/group/b/src/index.js":                "export {}",
	})

	got, err := newDiscoverer().Discover(root, []string{"packages/**"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "packages", "a", "package.json"),
		filepath.Join(root, "packages", "group", "b", "package.json"),
	}, got)
}

func TestDiscoverer_Discover_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"packages/empty/.keep": "", "notes.txt": ""})

	tests := []struct {
		name    string
		pattern string
		wantErr error
	}{
		{"no match", "missing/*", domain.ErrPackageDirNotFound},
		{"recursive missing directory", "missing/**", domain.ErrPackageDirNotFound},
		{"recursive file", "notes.txt/**", domain.ErrPackageDirNotFound},
		{"directory without manifest", "packages/empty", domain.ErrPackageDirNotFound},
		{"malformed pattern", "packages/[", domain.ErrInvalidPackagePattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newDiscoverer().Discover(root, []string{tt.pattern})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestDiscoverer_Discover_RecursiveUnreadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"packages/a/package.json":        `{"name":"a"}`,
		"packages/locked/b/package.json": `{"name":"b"}`,
	})
	locked := filepath.Join(root, "packages", "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	got, err := newDiscoverer().Discover(root, []string{"packages/**"})
	require.ErrorIs(t, err, domain.ErrPackageDirUnreadable)
	assert.Nil(t, got)
}

func TestDiscoverer_Discover_NoPatterns(t *testing.T) {
	got, err := newDiscoverer().Discover(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
