package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knit/internal/adapters/fs"
	"go.trai.ch/knit/internal/adapters/manifest"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScanner_Scan(t *testing.T) {
	path := writeManifest(t, `{
		"name": "pkg",
		"version": "1.0.0",
		"main": "index.js",
		"module": "index.mjs",
		"browser": null,
		"exports": {
			".": {"import": "./i.js", "require": "./i.cjs"},
			"./feature": {"default": "./f.js"}
		},
		"dependencies": {"left-pad": "^1.0.0"}
	}`)

	m, err := manifest.NewScanner(fs.NewOSFS()).Scan(path)
	require.NoError(t, err)

	name, ok := m.PackageName()
	require.True(t, ok)
	assert.Equal(t, "pkg", name)
	require.NotNil(t, m.Main)
	assert.Equal(t, "index.js", *m.Main)
	require.NotNil(t, m.Module)
	assert.Equal(t, "index.mjs", *m.Module)
	assert.Nil(t, m.Browser)

	require.Len(t, m.Exports, 2)
	target, ok := m.Exports["."].Select()
	require.True(t, ok)
	assert.Equal(t, "./i.js", target)
	target, ok = m.Exports["./feature"].Select()
	require.True(t, ok)
	assert.Equal(t, "./f.js", target)
}

func TestScanner_Scan_Minimal(t *testing.T) {
	m, err := manifest.NewScanner(fs.NewOSFS()).Scan(writeManifest(t, `{}`))
	require.NoError(t, err)

	_, ok := m.PackageName()
	assert.False(t, ok)
	assert.False(t, m.HasExports())
}

func TestScanner_Scan_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `{"name": "pkg"`},
		{"not an object", `["pkg"]`},
		{"name is a number", `{"name": 42}`},
		{"browser map", `{"name": "pkg", "browser": {"./a.js": false}}`},
		{"string exports", `{"name": "pkg", "exports": "./index.js"}`},
		{"nested conditions", `{"name": "pkg", "exports": {".": {"import": {"node": "./n.js"}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)

			m, err := manifest.NewScanner(fs.NewOSFS()).Scan(path)
			require.ErrorIs(t, err, domain.ErrManifestParse)
			assert.Nil(t, m)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, path, zErr.Metadata()["manifest"])
		})
	}
}

func TestScanner_Scan_InvalidUTF8(t *testing.T) {
	path := writeManifest(t, "{\"name\": \"p\xffkg\"}")

	_, err := manifest.NewScanner(fs.NewOSFS()).Scan(path)
	require.ErrorIs(t, err, domain.ErrManifestRead)
}

func TestScanner_Scan_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fsys := mocks.NewMockFileSystem(ctrl)
	readErr := errors.New("permission denied")
	fsys.EXPECT().ReadFile("/ws/a/package.json").Return(nil, readErr)

	_, err := manifest.NewScanner(fsys).Scan("/ws/a/package.json")
	require.ErrorIs(t, err, domain.ErrManifestRead)
	require.ErrorIs(t, err, readErr)
}
