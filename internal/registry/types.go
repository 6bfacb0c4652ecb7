package registry

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Package is one installable script package: a directory directly under
// the library root. Its name is the directory name.
type Package struct {
	Name string // e.g., "PlayerController"
	Path string // absolute path to the package directory
}

// Catalog indexes the packages of one library directory by name.
// Lookups are case-sensitive; Names is sorted case-insensitively for display.
type Catalog struct {
	Root   string
	byName map[string]*Package
	names  []string
}

// NewCatalog builds a catalog from pkgs. Later duplicates of a name are
// ignored.
func NewCatalog(root string, pkgs []*Package) *Catalog {
	c := &Catalog{Root: root, byName: make(map[string]*Package, len(pkgs))}
	for _, p := range pkgs {
		if _, ok := c.byName[p.Name]; ok {
			continue
		}
		c.byName[p.Name] = p
		c.names = append(c.names, p.Name)
	}
	fold := cases.Fold()
	slices.SortFunc(c.names, func(a, b string) int {
		if n := strings.Compare(fold.String(a), fold.String(b)); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	return c
}

// Lookup returns the package with the exact given name.
func (c *Catalog) Lookup(name string) (*Package, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Names returns all package names in display order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.names)
}

// Packages returns all packages in display order.
func (c *Catalog) Packages() []*Package {
	out := make([]*Package, len(c.names))
	for i, n := range c.names {
		out[i] = c.byName[n]
	}
	return out
}

// Len returns the number of packages in the catalog.
func (c *Catalog) Len() int { return len(c.names) }

// Resolution is the outcome of resolving a set of root packages: every
// package to copy and every external identifier to add to the manifest.
type Resolution struct {
	Roots       []string
	Packages    []*Package          // sorted by name, unique by path
	Identifiers []string            // sorted, unique
	Edges       map[string][]string // package name -> declared script dependencies
}

// IsEmpty reports whether the resolution has nothing to install.
func (r *Resolution) IsEmpty() bool {
	return r == nil || (len(r.Packages) == 0 && len(r.Identifiers) == 0)
}

// DependencyNode is a node in the dependency tree shown in the install plan.
type DependencyNode struct {
	Name     string
	Children []*DependencyNode
	Deduped  bool // already shown earlier in the tree
}

// InstallPlan summarizes what an install will do.
type InstallPlan struct {
	Trees       []*DependencyNode // one per root
	Packages    []*Package
	Identifiers []string
}
