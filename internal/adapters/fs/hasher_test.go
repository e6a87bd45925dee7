package fs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/knit/internal/adapters/fs"
)

func TestHasher_HashContent(t *testing.T) {
	h := fs.NewHasher()

	assert.Equal(t, uint64(0xef46db3751d8e999), h.HashContent(nil))
	assert.Equal(t, uint64(0x26c7827d889f6da3), h.HashContent([]byte("hello")))
}

func TestHasher_ComputeInputHash(t *testing.T) {
	h := fs.NewHasher()

	got := h.ComputeInputHash(map[string]uint64{"/src/b.js": 2, "/src/a.js": 1})
	assert.Equal(t, "a6e49683706af9af", got)

	t.Run("depends on content", func(t *testing.T) {
		other := h.ComputeInputHash(map[string]uint64{"/src/a.js": 1, "/src/b.js": 3})
		assert.NotEqual(t, got, other)
	})

	t.Run("depends on paths", func(t *testing.T) {
		other := h.ComputeInputHash(map[string]uint64{"/src/a.js": 1, "/src/c.js": 2})
		assert.NotEqual(t, got, other)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "ef46db3751d8e999", h.ComputeInputHash(nil))
	})
}
