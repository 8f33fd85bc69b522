package internal

import (
	"errors"
	"fmt"
)

// Warning is an error worth reporting that must not fail the process.
type Warning string

func Warnf(format string, args ...any) Warning {
	return Warning(fmt.Sprintf(format, args...))
}

func (warning Warning) Error() string { return string(warning) }

func (Warning) Is(err error) bool {
	_, ok := err.(Warning)
	return ok
}

func IsWarning(err error) bool {
	return errors.Is(err, Warning(""))
}
