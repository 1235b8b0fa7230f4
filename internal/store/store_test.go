package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaryo1010/wordmerge/internal/errors"
	"github.com/takaryo1010/wordmerge/internal/record"
)

// Helper function to create a file with the given content in a temp dir
func createTempJSONFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRecords(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		missing     bool
		wantLen     int
		wantErr     error
		errContains string
	}{
		{
			name:    "valid array",
			content: `[{"ID":1,"word":"λόγος"},{"ID":2}]`,
			wantLen: 2,
		},
		{
			name:    "empty array",
			content: `[]`,
			wantLen: 0,
		},
		{
			name:        "invalid json",
			content:     `[{"ID":1`,
			wantErr:     errors.ErrDecode,
			errContains: "words.json",
		},
		{
			name:    "not an array",
			content: `{"ID":1}`,
			wantErr: record.ErrShape,
		},
		{
			name:    "utf-8 byte order mark",
			content: "\ufeff[]",
			wantErr: errors.ErrDecode,
		},
		{
			name:        "non-existent file",
			missing:     true,
			wantErr:     errors.ErrIO,
			errContains: "read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "non_existent_file.json")
			if !tt.missing {
				path = createTempJSONFile(t, tt.content)
			}

			got, err := LoadRecords(path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestLoadRecordsMissingFileIsNotExist(t *testing.T) {
	_, err := LoadRecords(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "out.json", entries[0].Name())
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	err := WriteFile(path, []byte("x"))
	require.ErrorIs(t, err, errors.ErrIO)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileOntoDirectoryKeepsNoTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	err := WriteFile(target, []byte("data"))
	require.ErrorIs(t, err, errors.ErrIO)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "taken", entries[0].Name())
}
