// Package cas implements bundle info storage under the project's state directory.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/knit/internal/core/ports"
)

var _ ports.BundleInfoStore = (*Store)(nil)

// Store implements ports.BundleInfoStore using a file-per-output strategy.
type Store struct{}

// NewStore creates a new BundleInfoStore. Every call names the project root it works under.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the bundle info recorded for an output path.
func (s *Store) Get(root, output string) (*domain.BundleInfo, error) {
	filename := s.getFilename(root, output)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, domain.NewError(domain.ErrStoreReadFailed, err, "path", filename)
	}

	var info domain.BundleInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, domain.NewError(domain.ErrStoreUnmarshalFailed, err, "path", filename)
	}

	return &info, nil
}

// Put stores the bundle info, replacing any earlier record for the same output.
func (s *Store) Put(root string, info domain.BundleInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return domain.NewError(domain.ErrStoreMarshalFailed, err)
	}

	filename := s.getFilename(root, info.Output)
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.NewError(domain.ErrStoreCreateFailed, err, "path", dir)
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return domain.NewError(domain.ErrStoreWriteFailed, err, "path", filename)
	}

	return nil
}

func (s *Store) getFilename(root, output string) string {
	hash := sha256.Sum256([]byte(output))
	hexHash := hex.EncodeToString(hash[:])
	storeDir := filepath.Join(root, domain.DefaultStorePath())
	return filepath.Join(storeDir, hexHash+".json")
}
