package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/usl-labs/usl/internal/descriptor"
)

// library is a script library laid out under a temp directory.
type library struct {
	t    *testing.T
	root string
}

func newLibrary(t *testing.T) *library {
	t.Helper()
	return &library{t: t, root: t.TempDir()}
}

// add creates a package directory with an optional dependencies.txt and a
// single script file.
func (l *library) add(name, deps string) string {
	l.t.Helper()
	dir := filepath.Join(l.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.t.Fatal(err)
	}
	if deps != "" {
		if err := os.WriteFile(filepath.Join(dir, descriptor.FileName), []byte(deps), 0o644); err != nil {
			l.t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, name+".cs"), []byte("// "+name+"\n"), 0o644); err != nil {
		l.t.Fatal(err)
	}
	return dir
}

func (l *library) catalog() *Catalog {
	l.t.Helper()
	cat, err := Scan(afero.NewOsFs(), l.root)
	if err != nil {
		l.t.Fatalf("Scan: %v", err)
	}
	return cat
}

// countingParser wraps a real parser and records how often each directory
// is parsed.
type countingParser struct {
	inner DescriptorParser
	calls map[string]int
}

func newCountingParser() *countingParser {
	return &countingParser{
		inner: descriptor.NewParser(afero.NewOsFs(), zerolog.Nop()),
		calls: make(map[string]int),
	}
}

func (c *countingParser) Parse(dir string) (*descriptor.Descriptor, error) {
	c.calls[filepath.Base(dir)]++
	return c.inner.Parse(dir)
}

func packageNames(pkgs []*Package) []string {
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	return names
}
