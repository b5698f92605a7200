package domain

import "errors"

var (
	ErrDaemonUnreachable = errors.New("model daemon unreachable")
	ErrMalformedResponse = errors.New("malformed daemon response")
	ErrCorruptHistory    = errors.New("corrupt history file")
)
