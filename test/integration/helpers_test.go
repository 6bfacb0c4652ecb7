//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/installer"
	"github.com/usl-labs/usl/internal/manifest"
	"github.com/usl-labs/usl/internal/project"
	"github.com/usl-labs/usl/internal/registry"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	LibraryDir string // script library with one directory per package
	ProjectDir string // a mock Unity project
	Layout     project.Layout
}

// setupTestEnv creates a temp script library and Unity project. HOME is
// redirected so no user config is read.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	env := &testEnv{
		LibraryDir: filepath.Join(t.TempDir(), "scripts"),
		ProjectDir: t.TempDir(),
	}

	for _, dir := range []string{
		env.LibraryDir,
		filepath.Join(env.ProjectDir, project.AssetsDir),
		filepath.Join(env.ProjectDir, project.ProjectSettingsDir),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}
	env.Layout = project.NewLayout(env.ProjectDir, project.AssetsDir, filepath.Join(project.PackagesDir, manifest.FileName))
	return env
}

// setupLibrary creates a synthetic script library:
//
//	Player  -> Input, CameraRig; com.unity.inputsystem
//	Input   -> Player (cycle)
//	CameraRig -> com.unity.cinemachine
//	Health  (no descriptor, nested Editor/ file)
func setupLibrary(t *testing.T, env *testEnv) {
	t.Helper()

	writePackage(t, env.LibraryDir, "Player", `# Player controller
Scripts:
  - Input
  - CameraRig

Packages:
  - com.unity.inputsystem
`)
	writeFile(t, filepath.Join(env.LibraryDir, "Player", "Player.cs"), "public class Player {}\n")

	writePackage(t, env.LibraryDir, "Input", "scripts:\n  - Player\n")
	writeFile(t, filepath.Join(env.LibraryDir, "Input", "Input.cs"), "public class Input {}\n")

	writePackage(t, env.LibraryDir, "CameraRig", "packages:\n  - com.unity.cinemachine\n")
	writeFile(t, filepath.Join(env.LibraryDir, "CameraRig", "CameraRig.cs"), "public class CameraRig {}\n")

	writeFile(t, filepath.Join(env.LibraryDir, "Health", "Health.cs"), "public class Health {}\n")
	writeFile(t, filepath.Join(env.LibraryDir, "Health", "Editor", "HealthEditor.cs"), "public class HealthEditor {}\n")
}

// writePackage creates dependencies.txt for the named package.
func writePackage(t *testing.T, libraryDir, name, descriptor string) {
	t.Helper()
	writeFile(t, filepath.Join(libraryDir, name, "dependencies.txt"), descriptor)
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// scan returns the catalog of the environment's script library.
func scan(t *testing.T, env *testEnv) *registry.Catalog {
	t.Helper()
	cat, err := registry.Scan(afero.NewOsFs(), env.LibraryDir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return cat
}

// newInstaller returns an installer for the environment's project that
// answers every prompt with yes.
func newInstaller(env *testEnv) *installer.Installer {
	return installer.New(installer.Options{
		FS:           afero.NewOsFs(),
		Log:          zerolog.Nop(),
		TargetDir:    env.Layout.Assets,
		ManifestPath: env.Layout.Manifest,
		AssumeYes:    true,
	})
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContent fails if the file doesn't hold exactly want.
func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s:\ngot:\n%s\nwant:\n%s", path, data, want)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertNoLeftovers fails if any backup or temp file remains under dir.
func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	err := filepath.Walk(dir, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		for _, suffix := range []string{installer.BackupSuffix, manifest.BackupSuffix, manifest.TempSuffix} {
			if strings.HasSuffix(path, suffix) {
				t.Errorf("leftover file: %s", path)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", dir, err)
	}
}
