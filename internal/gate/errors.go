package gate

import (
	"errors"
	"fmt"
)

type Kind int

const (
	MissingToolchain Kind = iota + 1
	BuildExecutionFailure
	PostBuildVerificationFailure
)

func (kind Kind) String() string {
	switch kind {
	case MissingToolchain:
		return "missing toolchain"
	case BuildExecutionFailure:
		return "build execution failure"
	case PostBuildVerificationFailure:
		return "post build verification failure"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// Error is a terminal gate failure. Remedy holds the lines an operator can act on.
type Error struct {
	Kind   Kind
	Msg    string
	Err    error
	Remedy []string
}

func (err *Error) Error() string {
	if err.Err == nil {
		return err.Msg
	}
	return err.Msg + ": " + err.Err.Error()
}

func (err *Error) Unwrap() error { return err.Err }

func KindOf(err error) (Kind, bool) {
	var gateErr *Error
	if !errors.As(err, &gateErr) {
		return 0, false
	}
	return gateErr.Kind, true
}

func RemedyOf(err error) []string {
	var gateErr *Error
	if !errors.As(err, &gateErr) {
		return nil
	}
	return gateErr.Remedy
}
