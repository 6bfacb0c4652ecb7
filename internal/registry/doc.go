// Package registry handles script package discovery and dependency
// resolution. It scans the library directory into a name-indexed Catalog,
// walks dependencies.txt declarations to compute the full set of packages
// and external identifiers an install needs, and renders the resulting
// install plan.
package registry
