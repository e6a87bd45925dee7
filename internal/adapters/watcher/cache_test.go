package watcher_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knit/internal/adapters/watcher"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func source(path, contents string) *domain.ModuleSource {
	return &domain.ModuleSource{Identity: domain.Concrete(path), Contents: []byte(contents)}
}

func TestContentCache_Hit(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockModuleLoader(ctrl)
	id := domain.Concrete("/app/src/a.js")
	loader.EXPECT().Load(id).Return(source("/app/src/a.js", "a"), nil).Times(1)

	cache := watcher.NewContentCache(loader)

	first, err := cache.Load(id)
	require.NoError(t, err)
	second, err := cache.Load(id)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestContentCache_InvalidateFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockModuleLoader(ctrl)
	a := domain.Concrete("/app/src/a.js")
	b := domain.Concrete("/app/src/b.js")
	gomock.InOrder(
		loader.EXPECT().Load(a).Return(source("/app/src/a.js", "v1"), nil),
		loader.EXPECT().Load(b).Return(source("/app/src/b.js", "b"), nil),
		loader.EXPECT().Load(a).Return(source("/app/src/a.js", "v2"), nil),
	)

	cache := watcher.NewContentCache(loader)
	_, err := cache.Load(a)
	require.NoError(t, err)
	_, err = cache.Load(b)
	require.NoError(t, err)

	cache.Invalidate([]string{"/app/src/a.js"})
	assert.Equal(t, 1, cache.Len())

	got, err := cache.Load(a)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got.Contents))

	// b is still cached; a second load must not reach the loader.
	_, err = cache.Load(b)
	require.NoError(t, err)
}

func TestContentCache_InvalidateDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockModuleLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(id domain.FileIdentity) (*domain.ModuleSource, error) {
		path, _ := id.Path()
		return source(path, ""), nil
	}).Times(3)

	cache := watcher.NewContentCache(loader)
	for _, path := range []string{"/app/lib/a.js", "/app/lib/deep/b.js", "/app/library.js"} {
		_, err := cache.Load(domain.Concrete(path))
		require.NoError(t, err)
	}

	cache.Invalidate([]string{"/app/lib"})

	// Only the sibling with a shared name prefix survives.
	assert.Equal(t, 1, cache.Len())
}

func TestContentCache_ErrorsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockModuleLoader(ctrl)
	id := domain.Concrete("/app/src/a.js")
	readErr := domain.NewError(domain.ErrModuleRead, errors.New("boom"))
	gomock.InOrder(
		loader.EXPECT().Load(id).Return(nil, readErr),
		loader.EXPECT().Load(id).Return(source("/app/src/a.js", "a"), nil),
	)

	cache := watcher.NewContentCache(loader)

	_, err := cache.Load(id)
	require.ErrorIs(t, err, domain.ErrModuleRead)
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Load(id)
	require.NoError(t, err)
}

func TestContentCache_VirtualPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockModuleLoader(ctrl)
	id := domain.Virtual("<stdin>")
	loader.EXPECT().Load(id).Return(nil, domain.NewError(domain.ErrUnsupportedIdentity, nil)).Times(2)

	cache := watcher.NewContentCache(loader)
	for range 2 {
		_, err := cache.Load(id)
		require.ErrorIs(t, err, domain.ErrUnsupportedIdentity)
	}
	assert.Equal(t, 0, cache.Len())
}
