package registry

import (
	"fmt"
	"strings"
)

// MissingDependencyError reports a script package name that is not in the
// catalog. RequiredBy is empty when the name was requested directly.
type MissingDependencyError struct {
	Name        string
	RequiredBy  string
	Suggestions []string
}

func (e *MissingDependencyError) Error() string {
	var msg string
	if e.RequiredBy == "" {
		msg = fmt.Sprintf("script package %q not found", e.Name)
	} else {
		msg = fmt.Sprintf("script package %q (required by %q) not found", e.Name, e.RequiredBy)
	}
	if len(e.Suggestions) > 0 {
		msg += "; did you mean: " + strings.Join(e.Suggestions, ", ")
	}
	return msg
}
