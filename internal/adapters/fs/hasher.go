package fs

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of module sources and bundle inputs.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContent returns the XXHash of data.
func (h *Hasher) HashContent(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ComputeInputHash folds per-module digests into one fingerprint.
// Paths are sorted first, so the result does not depend on load order.
func (h *Hasher) ComputeInputHash(modules map[string]uint64) string {
	paths := make([]string, 0, len(modules))
	for path := range modules {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	hasher := xxhash.New()
	var buf [8]byte
	for _, path := range paths {
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0}) // Separator

		binary.LittleEndian.PutUint64(buf[:], modules[path])
		_, _ = hasher.Write(buf[:])
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
