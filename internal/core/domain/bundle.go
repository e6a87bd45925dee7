package domain

import "time"

// ModuleSource is the content of a module handed to the bundler.
type ModuleSource struct {
	Identity FileIdentity
	Contents []byte
	// Hash is the xxhash digest of Contents.
	Hash uint64
}

// BundleRequest describes one bundler invocation.
type BundleRequest struct {
	// WorkDir is the absolute directory output paths are relative to.
	WorkDir string
	// Entries are canonical identities of the entry files.
	Entries []FileIdentity
	// Output is the absolute path of the bundle.
	Output    string
	SourceMap bool
	Format    Format
	Minify    bool
}

// BundleResult is the single output the bundler produced.
type BundleResult struct {
	Code      []byte
	SourceMap []byte
	Warnings  []string
}

// BundleInfo records a successful bundle for change reporting.
type BundleInfo struct {
	Output     string            `json:"output"`
	Entries    []string          `json:"entries"`
	Packages   int               `json:"packages"`
	Modules    map[string]string `json:"modules"`
	InputHash  string            `json:"input_hash"`
	OutputHash string            `json:"output_hash"`
	Timestamp  time.Time         `json:"timestamp"`
}
