// Package project locates the parts of a Unity project usl works with and
// wraps the optional git initialization of a project directory.
package project

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Conventional Unity project directory names.
const (
	AssetsDir          = "Assets"
	ProjectSettingsDir = "ProjectSettings"
	PackagesDir        = "Packages"
)

// Layout holds the absolute paths an install touches.
type Layout struct {
	Root     string
	Assets   string // copy target for script packages
	Manifest string // Packages/manifest.json
}

// NewLayout resolves assetsDir and manifestFile against root unless they
// are already absolute.
func NewLayout(root, assetsDir, manifestFile string) Layout {
	return Layout{
		Root:     root,
		Assets:   resolve(root, assetsDir),
		Manifest: resolve(root, manifestFile),
	}
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// IsUnityProject reports whether dir has both an Assets and a
// ProjectSettings directory.
func IsUnityProject(fsys afero.Fs, dir string) bool {
	return isDir(fsys, filepath.Join(dir, AssetsDir)) && isDir(fsys, filepath.Join(dir, ProjectSettingsDir))
}

// IsGitRepo reports whether dir contains a .git directory.
func IsGitRepo(fsys afero.Fs, dir string) bool {
	return isDir(fsys, filepath.Join(dir, ".git"))
}

func isDir(fsys afero.Fs, path string) bool {
	ok, err := afero.DirExists(fsys, path)
	return err == nil && ok
}

// ErrGitNotFound is returned by InitGit when no git executable is on PATH.
var ErrGitNotFound = errors.New("git is required but not found in PATH")

// InitGit runs `git init` in dir and returns git's trimmed output.
func InitGit(ctx context.Context, dir string) (string, error) {
	gitBin, err := exec.LookPath("git")
	if err != nil {
		return "", ErrGitNotFound
	}

	cmd := exec.CommandContext(ctx, gitBin, "init")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		return out, fmt.Errorf("git init: %w\n%s", err, out)
	}
	return out, nil
}
