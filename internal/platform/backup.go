package platform

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// CreateSibling creates a new empty file in the directory of path, named
// "<base>.<random><suffix>", and returns its path. The file is created
// exclusively, so an existing file is never reused.
func CreateSibling(fsys afero.Fs, path, suffix string) (string, error) {
	f, err := afero.TempFile(fsys, filepath.Dir(path), filepath.Base(path)+".*"+suffix)
	if err != nil {
		return "", fmt.Errorf("creating file next to %s: %w", path, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = fsys.Remove(name)
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}

// BackupFile copies path into a new sibling file from CreateSibling and
// returns the copy's path. Nothing is left behind when the copy fails.
func BackupFile(fsys afero.Fs, path, suffix string) (string, error) {
	backup, err := CreateSibling(fsys, path, suffix)
	if err != nil {
		return "", err
	}
	if err := CopyFile(fsys, path, backup); err != nil {
		_ = fsys.Remove(backup)
		return "", err
	}
	return backup, nil
}
