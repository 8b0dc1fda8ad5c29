package link

import "errors"

var (
	// ErrWouldBlock indicates the operation cannot complete yet. It is a
	// normal poll outcome, not a failure.
	ErrWouldBlock = errors.New("would block")
)
