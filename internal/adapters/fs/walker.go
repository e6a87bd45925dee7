package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/knit/internal/core/domain"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":             true,
	".jj":              true,
	"node_modules":     true,
	domain.KnitDirName: true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping VCS metadata, node_modules, the knit state
// directory and anything matching ignores. Yielded paths start with root.
// The first error met while walking, including a missing root, is yielded with an empty path
// and ends the walk.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				yield("", err)
				return filepath.SkipAll
			}

			if skipAction := w.shouldSkip(path != root, d, ignores); skipAction != nil {
				return skipAction
			}

			if d.IsDir() || w.ignored(d.Name(), ignores) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for directories that must not be walked.
// The root itself is always walked.
func (w *Walker) shouldSkip(belowRoot bool, d fs.DirEntry, ignores []string) error {
	if !d.IsDir() || !belowRoot {
		return nil
	}
	if skippedDirs[d.Name()] || w.ignored(d.Name(), ignores) {
		return filepath.SkipDir
	}
	return nil
}

func (w *Walker) ignored(name string, ignores []string) bool {
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
