// Package platform provides cross-platform file operations used when
// copying script files into a project: permission management and
// metadata-preserving copies. On Windows, permission bits are not applied.
package platform
