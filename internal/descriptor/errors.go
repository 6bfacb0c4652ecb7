package descriptor

import "fmt"

// MalformedError reports a descriptor that cannot be trusted as a complete
// dependency list: a repeated section header or a failed read.
type MalformedError struct {
	Path string
	Line int // 0 when the failure is not tied to a line
	Msg  string
	Err  error
}

func (e *MalformedError) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("malformed %s: %s at line %d", e.Path, e.Msg, e.Line)
	} else {
		msg = fmt.Sprintf("malformed %s: %s", e.Path, e.Msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Unwrap() error { return e.Err }

// InvalidIdentifierError reports an external package identifier that does
// not match the reverse-domain grammar.
type InvalidIdentifierError struct {
	ID string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid package ID %q: expected format com.company.package (lowercase, at least 2 dots)", e.ID)
}
