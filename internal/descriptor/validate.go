package descriptor

import "regexp"

var (
	scriptNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	packageIDPattern  = regexp.MustCompile(`^[a-z][a-z0-9-]*(\.[a-z][a-z0-9-]*){2,}$`)
)

// ValidScriptName reports whether name is a legal script package name:
// a letter followed by letters, digits, '_' or '-'.
func ValidScriptName(name string) bool {
	return scriptNamePattern.MatchString(name)
}

// ValidPackageID reports whether id is a legal external package identifier:
// lowercase reverse-domain form with at least three segments.
func ValidPackageID(id string) bool {
	return packageIDPattern.MatchString(id)
}

// CheckPackageID returns an *InvalidIdentifierError when id is malformed.
// Callers use it on identifiers typed by the user, before any I/O.
func CheckPackageID(id string) error {
	if !ValidPackageID(id) {
		return &InvalidIdentifierError{ID: id}
	}
	return nil
}
