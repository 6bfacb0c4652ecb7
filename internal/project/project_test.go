package project

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnityProject(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want bool
	}{
		{"both", []string{"/p/Assets", "/p/ProjectSettings"}, true},
		{"assets only", []string{"/p/Assets"}, false},
		{"settings only", []string{"/p/ProjectSettings"}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for _, d := range tt.dirs {
				require.NoError(t, fsys.MkdirAll(d, 0o755))
			}
			assert.Equal(t, tt.want, IsUnityProject(fsys, "/p"))
		})
	}
}

func TestIsUnityProjectAssetsIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/p/ProjectSettings", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "/p/Assets", []byte("not a dir"), 0o644))

	assert.False(t, IsUnityProject(fsys, "/p"))
}

func TestIsGitRepo(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.False(t, IsGitRepo(fsys, "/p"))

	require.NoError(t, fsys.MkdirAll("/p/.git", 0o755))
	assert.True(t, IsGitRepo(fsys, "/p"))
}

func TestNewLayout(t *testing.T) {
	root := filepath.FromSlash("/work/Game")
	l := NewLayout(root, "Assets", filepath.Join("Packages", "manifest.json"))

	assert.Equal(t, filepath.Join(root, "Assets"), l.Assets)
	assert.Equal(t, filepath.Join(root, "Packages", "manifest.json"), l.Manifest)

	abs := filepath.Join(t.TempDir(), "Elsewhere")
	assert.Equal(t, abs, NewLayout(root, abs, "m.json").Assets)
}

func TestInitGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	_, err := InitGit(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, IsGitRepo(afero.NewOsFs(), dir))
}

func TestInitGitNotFound(t *testing.T) {
	t.Setenv("PATH", "")

	_, err := InitGit(context.Background(), t.TempDir())
	assert.True(t, errors.Is(err, ErrGitNotFound), "got %v", err)
}
