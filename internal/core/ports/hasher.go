package ports

// Hasher defines the interface for computing content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashContent returns the digest of data.
	HashContent(data []byte) uint64
	// ComputeInputHash combines per-module digests, keyed by path, into one order independent fingerprint.
	ComputeInputHash(modules map[string]uint64) string
}
