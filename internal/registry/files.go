package registry

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/descriptor"
)

// excludedNames are file basenames never copied into a project.
var excludedNames = map[string]bool{
	descriptor.FileName: true,
	".DS_Store":         true,
	"Thumbs.db":         true,
	"desktop.ini":       true,
}

// shouldExclude returns true if a file with this basename must not be copied.
func shouldExclude(name string) bool {
	return excludedNames[name]
}

// PackageFiles returns the paths, relative to the package directory, of all
// regular files under the package directory, in lexical walk order,
// excluding metadata and OS junk files.
func PackageFiles(fsys afero.Fs, pkg *Package) ([]string, error) {
	var files []string
	err := afero.Walk(fsys, pkg.Path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		if shouldExclude(info.Name()) {
			return nil
		}
		rel, err := filepath.Rel(pkg.Path, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
