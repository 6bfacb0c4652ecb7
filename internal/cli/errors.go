package cli

import (
	"context"
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"github.com/usl-labs/usl/internal/descriptor"
	"github.com/usl-labs/usl/internal/manifest"
	"github.com/usl-labs/usl/internal/prompt"
	"github.com/usl-labs/usl/internal/registry"
)

// Process exit codes.
const (
	exitOK          = 0
	exitFailure     = 1 // a reported problem: bad input, missing package, broken manifest
	exitUnexpected  = 2
	exitInterrupted = 130
)

func exitCodeForError(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument,
		errbuilder.CodeFailedPrecondition,
		errbuilder.CodeNotFound,
		errbuilder.CodeAlreadyExists:
		return exitFailure
	}

	if isDomainError(err) {
		return exitFailure
	}
	return exitUnexpected
}

// isDomainError reports whether err is one of the failures usl reports to
// the user as a normal outcome of bad input or project state.
func isDomainError(err error) bool {
	var (
		missing   *registry.MissingDependencyError
		malformed *descriptor.MalformedError
		invalidID *descriptor.InvalidIdentifierError
		badFile   *manifest.Error
		selection *prompt.SelectionError
	)
	return errors.As(err, &missing) ||
		errors.As(err, &malformed) ||
		errors.As(err, &invalidID) ||
		errors.As(err, &badFile) ||
		errors.As(err, &selection)
}

func usageError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(err.Error())
}

func preconditionError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)
}

// usageArgs wraps a positional argument validator so its failures map to
// the usage exit code.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
