package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Error reports a manifest that could not be read, parsed, validated or
// written.
type Error struct {
	Path   string
	Op     string // "read", "parse", "validate" or "write"
	Issues []ValidationIssue
	Err    error
}

func (e *Error) Error() string {
	where := e.Path
	if where == "" {
		where = FileName
	}

	switch {
	case e.Op == "read" && errors.Is(e.Err, fs.ErrNotExist):
		return fmt.Sprintf("manifest not found: %s", where)
	case len(e.Issues) > 0:
		msgs := make([]string, len(e.Issues))
		for i, issue := range e.Issues {
			msgs[i] = issue.String()
		}
		return fmt.Sprintf("manifest %s is invalid: %s", where, strings.Join(msgs, "; "))
	case e.Err != nil:
		return fmt.Sprintf("manifest %s: %s: %v", where, e.Op, e.Err)
	default:
		return fmt.Sprintf("manifest %s: %s failed", where, e.Op)
	}
}

func (e *Error) Unwrap() error { return e.Err }
