package utils

import "errors"

var (
	// ErrUserInitiatedExit is returned when the run should stop without it being a failure,
	// such as after printing help or version.
	ErrUserInitiatedExit = errors.New("user exit")
	ErrMutuallyExclusive = errors.New("values are mutually exclusive")
)
