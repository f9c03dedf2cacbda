package ir

import "errors"

var (
	ErrType     = errors.New("bad type")
	ErrPath     = errors.New("bad path")
	ErrNotFound = errors.New("not found")
	ErrKind     = errors.New("kind mismatch")
	ErrIndex    = errors.New("index out of range")
)
