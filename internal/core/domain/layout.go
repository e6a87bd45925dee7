package domain

import "path/filepath"

const (
	// KnitDirName is the name of the internal state directory.
	KnitDirName = ".knit"

	// StoreDirName is the name of the bundle info store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "knit.yaml"

	// ManifestFileName is the name of a package manifest.
	ManifestFileName = "package.json"

	// SourceMapExt is appended to an output path to name its source map.
	SourceMapExt = ".map"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultKnitPath returns the default root directory for knit metadata.
func DefaultKnitPath() string {
	return KnitDirName
}

// DefaultStorePath returns the default path for the bundle info store.
// It joins .knit and store.
func DefaultStorePath() string {
	return filepath.Join(KnitDirName, StoreDirName)
}
