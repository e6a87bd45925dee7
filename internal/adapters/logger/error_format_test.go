package logger_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/knit/internal/adapters/logger"
	"go.trai.ch/knit/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name: "zerr single error",
			err:  zerr.New("zerr error"),
			wantMessages: []string{
				"zerr error",
			},
			wantMetadata: []map[string]any{{}},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(
					errors.New("root cause"),
					"middle layer",
				),
				"outer layer",
			),
			wantMessages: []string{
				"outer layer",
				"middle layer",
				"root cause",
			},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "zerr with metadata",
			err: zerr.With(
				zerr.With(
					zerr.New("base error"),
					"key1", "value1",
				),
				"key2", 42,
			),
			wantMessages: []string{"base error"},
			wantMetadata: []map[string]any{
				{"key1": "value1", "key2": 42},
			},
		},
		{
			name: "mixed chain with partial metadata",
			err: func() error {
				inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
				outer := zerr.Wrap(inner, "outer")
				outer = zerr.With(outer, "outer_key", "outer_val")
				return outer
			}(),
			wantMessages: []string{"outer", "inner"},
			wantMetadata: []map[string]any{
				{"outer_key": "outer_val"},
				{"inner_key": "inner_val"},
			},
		},
		{
			name: "empty wrapper folds metadata into next entry",
			err:  zerr.With(errors.New("connection refused"), "host", "localhost"),
			wantMessages: []string{
				"connection refused",
			},
			wantMetadata: []map[string]any{{"host": "localhost"}},
		},
		{
			name: "domain error with cause",
			err: domain.NewError(domain.ErrManifestRead,
				errors.New("permission denied"),
				"manifest", "/ws/a/package.json",
			),
			wantMessages: []string{
				"failed to read package manifest",
				"permission denied",
			},
			wantMetadata: []map[string]any{
				{"manifest": "/ws/a/package.json"},
				nil,
			},
		},
		{
			name:         "domain error without cause",
			err:          domain.NewError(domain.ErrNoEntries, nil),
			wantMessages: []string{"no entry files specified"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name:         "joined errors print in full",
			err:          errors.Join(errors.New("first"), zerr.New("second")),
			wantMessages: []string{"first\nsecond"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "nil error handling",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			if tt.err == nil {
				assert.Empty(t, entries, "nil error should produce no entries")
				return
			}

			assert.Len(t, entries, len(tt.wantMessages), "entry count mismatch")
			assert.Len(t, tt.wantMetadata, len(tt.wantMessages), "metadata count mismatch")

			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "empty",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
		{
			name:    "main error only",
			entries: []logger.ErrorEntry{{Message: "bundle failed"}},
			want:    "Error: bundle failed",
		},
		{
			name: "causes are listed in order",
			entries: []logger.ErrorEntry{
				{Message: "failed to build package registry"},
				{Message: "failed to parse package manifest"},
				{Message: "unexpected end of JSON input"},
			},
			want: "Error: failed to build package registry\n\n" +
				"  Caused by:\n" +
				"    → failed to parse package manifest\n" +
				"    → unexpected end of JSON input",
		},
		{
			name: "metadata is sorted and aligned under each message",
			entries: []logger.ErrorEntry{
				{
					Message:  "export target could not be resolved",
					Metadata: map[string]any{"subpath": "./feature", "package": "ui", "target": "./dist/f.js"},
				},
				{
					Message:  "lstat /ws/ui/dist/f.js: no such file or directory",
					Metadata: map[string]any{"path": "/ws/ui/dist/f.js"},
				},
			},
			want: "Error: export target could not be resolved\n" +
				"       package: ui\n" +
				"       subpath: ./feature\n" +
				"       target: ./dist/f.js\n\n" +
				"  Caused by:\n" +
				"    → lstat /ws/ui/dist/f.js: no such file or directory\n" +
				"      path: /ws/ui/dist/f.js",
		},
		{
			name: "multiline messages keep their indentation",
			entries: []logger.ErrorEntry{
				{Message: "failed to parse config file\nknit.yaml"},
				{Message: "yaml: unmarshal errors:\n  line 4: field entry not found"},
			},
			want: "Error: failed to parse config file\n" +
				"       knit.yaml\n\n" +
				"  Caused by:\n" +
				"    → yaml: unmarshal errors:\n" +
				"        line 4: field entry not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}

func TestCollectAndFormat(t *testing.T) {
	err := domain.NewError(domain.ErrUnresolvedRelativePath,
		&fs.PathError{Op: "lstat", Path: "/app/src/b.js", Err: fs.ErrNotExist},
		"base", "/app/src/a.js",
		"specifier", "./b.js",
	)

	got := logger.FormatErrorEntriesExported(logger.CollectErrorEntriesExported(err))
	assert.Equal(t, "Error: relative import could not be resolved\n"+
		"       base: /app/src/a.js\n"+
		"       specifier: ./b.js\n\n"+
		"  Caused by:\n"+
		"    → lstat /app/src/b.js: file does not exist", got)
}
