package registry

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/usl-labs/usl/internal/descriptor"
)

// DescriptorParser reads the dependency descriptor of a package directory.
type DescriptorParser interface {
	Parse(pkgDir string) (*descriptor.Descriptor, error)
}

// Resolver computes the transitive dependencies of requested packages.
type Resolver struct {
	parser DescriptorParser
	log    zerolog.Logger
}

// NewResolver returns a Resolver that reads descriptors through parser.
func NewResolver(parser DescriptorParser, log zerolog.Logger) *Resolver {
	return &Resolver{parser: parser, log: log}
}

// Resolve walks the dependency graph from roots and returns every package
// reachable from them plus the union of their external identifiers.
//
// Each package is visited once (keyed by its path), so cycles and diamonds
// terminate and every descriptor is parsed exactly once. The walk stops at
// the first name missing from the catalog with a *MissingDependencyError.
// Descriptor errors are returned unchanged.
func (r *Resolver) Resolve(roots []string, catalog *Catalog) (*Resolution, error) {
	res := &Resolution{
		Roots: slices.Clone(roots),
		Edges: make(map[string][]string),
	}

	visited := make(map[string]bool)
	identifiers := make(map[string]bool)

	for _, root := range roots {
		pkg, ok := catalog.Lookup(root)
		if !ok {
			return nil, &MissingDependencyError{
				Name:        root,
				Suggestions: suggestionsFor(root, catalog),
			}
		}

		stack := []*Package{pkg}
		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[current.Path] {
				continue
			}
			visited[current.Path] = true
			res.Packages = append(res.Packages, current)

			desc, err := r.parser.Parse(current.Path)
			if err != nil {
				return nil, err
			}
			r.log.Debug().
				Str("pkg", current.Name).
				Strs("scripts", desc.Scripts).
				Strs("packages", desc.Packages).
				Msg("parsed dependencies")

			for _, id := range desc.Packages {
				identifiers[id] = true
			}
			res.Edges[current.Name] = slices.Clone(desc.Scripts)

			// Push in reverse so dependencies are visited in declaration order.
			for i := len(desc.Scripts) - 1; i >= 0; i-- {
				name := desc.Scripts[i]
				dep, ok := catalog.Lookup(name)
				if !ok {
					return nil, &MissingDependencyError{
						Name:        name,
						RequiredBy:  current.Name,
						Suggestions: suggestionsFor(name, catalog),
					}
				}
				if !visited[dep.Path] {
					stack = append(stack, dep)
				}
			}
		}
	}

	slices.SortFunc(res.Packages, func(a, b *Package) int {
		return strings.Compare(a.Name, b.Name)
	})
	for id := range identifiers {
		res.Identifiers = append(res.Identifiers, id)
	}
	slices.Sort(res.Identifiers)

	return res, nil
}
