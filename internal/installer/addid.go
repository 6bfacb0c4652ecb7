package installer

import (
	"github.com/usl-labs/usl/internal/descriptor"
	"github.com/usl-labs/usl/internal/manifest"
)

// AddPackageID records a single external identifier in an existing
// manifest. It returns false when the identifier was already present.
// An invalid identifier is rejected before the filesystem is touched.
func (in *Installer) AddPackageID(id string) (bool, error) {
	if err := descriptor.CheckPackageID(id); err != nil {
		return false, err
	}

	m, err := manifest.Load(in.opts.FS, in.opts.ManifestPath)
	if err != nil {
		return false, err
	}

	if !m.Add(id) {
		in.opts.Log.Info().Str("id", id).Msg("package already present in manifest")
		return false, nil
	}

	if err := manifest.WriteAtomic(in.opts.FS, in.opts.ManifestPath, m); err != nil {
		return false, err
	}
	in.opts.Log.Info().Str("id", id).Msg("added package to manifest")
	return true, nil
}
