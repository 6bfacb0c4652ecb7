// Package installer copies resolved script packages into a Unity project and
// records their external package identifiers in the project manifest. Every
// mutation runs inside a transaction, so a failed install leaves the
// project as it was.
package installer
