// Package manifest reads, validates and atomically rewrites a Unity
// project's Packages/manifest.json. Only the "dependencies" object is
// interpreted; every other top-level key is carried through verbatim and in
// its original position.
package manifest
