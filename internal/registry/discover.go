package registry

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Scan lists the package directories directly under root and returns them
// as a Catalog. A missing root yields an empty catalog. Hidden directories
// (such as .git) are not packages.
func Scan(fsys afero.Fs, root string) (*Catalog, error) {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCatalog(root, nil), nil
		}
		return nil, err
	}

	var pkgs []*Package
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		pkgs = append(pkgs, &Package{
			Name: entry.Name(),
			Path: filepath.Join(root, entry.Name()),
		})
	}

	return NewCatalog(root, pkgs), nil
}
