package installer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usl-labs/usl/internal/descriptor"
	"github.com/usl-labs/usl/internal/manifest"
)

const testManifest = "/Game/Packages/manifest.json"

// noIOFs fails every operation.
type noIOFs struct {
	afero.Fs
}

func (noIOFs) Open(string) (afero.File, error) { return nil, errors.New("unexpected I/O") }

func (noIOFs) Stat(string) (fs.FileInfo, error) { return nil, errors.New("unexpected I/O") }

func newAddInstaller(fsys afero.Fs) *Installer {
	return New(Options{FS: fsys, Log: zerolog.Nop(), ManifestPath: testManifest})
}

func TestAddPackageID(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, testManifest, []byte(`{"dependencies":{}}`), 0o644))
	in := newAddInstaller(fsys)

	added, err := in.AddPackageID("com.unity.inputsystem")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = in.AddPackageID("com.unity.inputsystem")
	require.NoError(t, err)
	assert.False(t, added)

	m, err := manifest.Load(fsys, testManifest)
	require.NoError(t, err)
	assert.Equal(t, []manifest.Dependency{{ID: "com.unity.inputsystem", Version: "*"}}, m.Dependencies())
}

func TestAddPackageIDInvalidBeforeIO(t *testing.T) {
	in := newAddInstaller(noIOFs{Fs: afero.NewMemMapFs()})

	for _, id := range []string{"Com.Unity.Input", "com.unity", "com..unity.x", ""} {
		_, err := in.AddPackageID(id)
		var invalid *descriptor.InvalidIdentifierError
		assert.True(t, errors.As(err, &invalid), "%q: got %v", id, err)
	}
}

func TestAddPackageIDRequiresManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := newAddInstaller(fsys).AddPackageID("com.unity.inputsystem")

	var merr *manifest.Error
	require.True(t, errors.As(err, &merr), "got %v", err)

	exists, _ := afero.Exists(fsys, testManifest)
	assert.False(t, exists)
}
