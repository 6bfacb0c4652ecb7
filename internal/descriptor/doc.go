// Package descriptor parses the per-package dependencies.txt file that
// declares which sibling script packages and which external Unity package
// identifiers a script package needs. It also owns the name grammars used
// to validate both kinds of entries.
package descriptor
