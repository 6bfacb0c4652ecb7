package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "usl" {
		t.Errorf("CLIName() = %q, want %q", got, "usl")
	}
	if got := HomeDir(); got != ".usl" {
		t.Errorf("HomeDir() = %q, want %q", got, ".usl")
	}
	if got := LibraryDir(); got != "scripts" {
		t.Errorf("LibraryDir() = %q, want %q", got, "scripts")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("library"); got != "USL_LIBRARY" {
		t.Errorf("EnvVar(library) = %q, want USL_LIBRARY", got)
	}
}
