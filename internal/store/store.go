// Package store reads and writes dictionary files.
package store

import (
	"os"
	"path/filepath"

	"github.com/takaryo1010/wordmerge/internal/errors"
	"github.com/takaryo1010/wordmerge/internal/record"
)

// FilePerm is the mode given to files written by WriteFile.
const FilePerm os.FileMode = 0o644

// LoadRecords reads the whole file at path and decodes it as a JSON array of
// records.
func LoadRecords(path string) ([]*record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	records, err := record.DecodeArray(data)
	if err != nil {
		return nil, errors.WrapDecode(path, err)
	}
	return records, nil
}

// WriteFile replaces path with data atomically: the bytes go to a temp file
// in the same directory which is then renamed over the destination. On
// failure the destination is untouched and the temp file is removed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO(op, path, err)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Chmod(FilePerm); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
