package fs_test

import (
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/knit/internal/adapters/fs"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func collectFiles(t *testing.T, seq iter.Seq2[string, error]) []string {
	t.Helper()
	var files []string
	for path, err := range seq {
		require.NoError(t, err)
		files = append(files, path)
	}
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"file1.txt":      "content1",
		"dir1/file2.txt": "content2",
		"dir2/file3.txt": "content3",
	})

	files := collectFiles(t, fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(tmpDir, "file1.txt"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir1", "file2.txt"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir2", "file3.txt"))
}

func TestWalker_WalkFiles_SkipsToolingDirs(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		".git/config":                   "gitconfig",
		".jj/store":                     "jjstore",
		".knit/store/abc.json":          "{}",
		"node_modules/dep/package.json": "{}",
		"src/index.js":                  "export {}",
	})

	files := collectFiles(t, fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.Equal(t, []string{filepath.Join(tmpDir, "src", "index.js")}, files)
}

func TestWalker_WalkFiles_WithIgnores(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"index.js":       "export {}",
		"index.test.js":  "test()",
		"dist/bundle.js": "bundle",
	})

	files := collectFiles(t, fs.NewWalker().WalkFiles(tmpDir, []string{"*.test.js", "dist"}))

	assert.Equal(t, []string{filepath.Join(tmpDir, "index.js")}, files)
}

func TestWalker_WalkFiles_RootNamedLikeSkippedDir(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "node_modules")
	writeFiles(t, tmpDir, map[string]string{"node_modules/a.js": "a"})

	files := collectFiles(t, fs.NewWalker().WalkFiles(root, nil))

	assert.Equal(t, []string{filepath.Join(root, "a.js")}, files)
}

func TestWalker_WalkFiles_Empty(t *testing.T) {
	assert.Empty(t, collectFiles(t, fs.NewWalker().WalkFiles(t.TempDir(), nil)))
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	var errs []error
	for path, err := range fs.NewWalker().WalkFiles(missing, nil) {
		assert.Empty(t, path)
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	require.ErrorIs(t, errs[0], iofs.ErrNotExist)
}

func TestWalker_WalkFiles_UnreadableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"locked/a.js": "a"})
	locked := filepath.Join(tmpDir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	var walkErr error
	for _, err := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		if err != nil {
			walkErr = err
		}
	}

	require.ErrorIs(t, walkErr, iofs.ErrPermission)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{"a.js": "a", "b.js": "b", "c.js": "c"})

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}
