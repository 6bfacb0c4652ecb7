package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/platform"
)

// Suffixes of the files kept next to the manifest while it is replaced.
// Each file gets a unique name, "manifest.json.<random><suffix>".
const (
	TempSuffix   = ".tmp"
	BackupSuffix = ".backup"
)

// Exists reports whether a regular manifest file is present at path.
func Exists(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &Error{Path: path, Op: "read", Err: err}
	}
	if info.IsDir() {
		return false, &Error{Path: path, Op: "read", Err: fmt.Errorf("%s is a directory", path)}
	}
	return true, nil
}

// Load reads and validates the manifest at path.
func Load(fsys afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &Error{Path: path, Op: "read", Err: err}
	}
	return parse(data, path)
}

// LoadOrNew loads the manifest at path, or returns New() when no file
// exists there.
func LoadOrNew(fsys afero.Fs, path string) (*Manifest, error) {
	ok, err := Exists(fsys, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New(), nil
	}
	return Load(fsys, path)
}

// WriteAtomic replaces the manifest at path with m. The new content is
// staged in a new sibling temp file, read back and re-parsed, then renamed
// over the target, so the file at path is either the old or the new
// manifest. On any failure the staged file is removed.
func WriteAtomic(fsys afero.Fs, path string, m *Manifest) error {
	data, err := m.Marshal()
	if err != nil {
		return &Error{Path: path, Op: "write", Err: err}
	}

	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := platform.CreateSibling(fsys, path, TempSuffix)
	if err != nil {
		return &Error{Path: path, Op: "write", Err: err}
	}
	if err := stage(fsys, tmp, data, mode); err != nil {
		_ = fsys.Remove(tmp)
		return &Error{Path: path, Op: "write", Err: err}
	}

	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return &Error{Path: path, Op: "write", Err: fmt.Errorf("replacing manifest: %w", err)}
	}
	return nil
}

// stage writes data to tmp and verifies it reads back as a valid manifest.
func stage(fsys afero.Fs, tmp string, data []byte, mode os.FileMode) error {
	if err := afero.WriteFile(fsys, tmp, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	// The temp file is created 0600.
	if err := platform.Chmod(fsys, tmp, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}

	written, err := afero.ReadFile(fsys, tmp)
	if err != nil {
		return fmt.Errorf("reading back %s: %w", tmp, err)
	}
	if !bytes.Equal(written, data) {
		return fmt.Errorf("verifying %s: content differs from what was written", tmp)
	}
	if _, err := Parse(written); err != nil {
		return fmt.Errorf("verifying %s: %w", tmp, err)
	}
	return nil
}
