// Package nbterr defines the errors reported by the codec.
//
// Every failure of a decode or encode call is an *Error carrying a Kind.
// Callers match kinds with errors.Is against the sentinels:
//
//	if errors.Is(err, nbterr.ErrMalformed) { ... }
package nbterr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Malformed input: truncation, bad tag, bad UTF-8, bad length.
	Malformed Kind = iota + 1
	// Compression stream was invalid or truncated.
	Compression
	// IO failure of the underlying source or sink.
	IO
	// Custom errors from textual adapters.
	Custom
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case Compression:
		return "compression"
	case IO:
		return "io"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("<kind %d>", int(k))
	}
}

var (
	ErrMalformed   = errors.New("malformed input")
	ErrCompression = errors.New("compression error")
	ErrIO          = errors.New("io error")
	ErrCustom      = errors.New("custom error")
)

func (k Kind) sentinel() error {
	switch k {
	case Malformed:
		return ErrMalformed
	case Compression:
		return ErrCompression
	case IO:
		return ErrIO
	case Custom:
		return ErrCustom
	}
	return nil
}

// Error is a codec failure. Rule names the grammar rule or operation that
// failed, Offset the position in the (decompressed) stream where it was
// detected, or -1 when no position applies.
type Error struct {
	Kind   Kind
	Rule   string
	Offset int64
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	s := e.Kind.sentinel().Error()
	if e.Rule != "" {
		s += ": " + e.Rule
	}
	if e.Offset >= 0 {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func NewMalformed(rule string, offset int64, format string, args ...any) *Error {
	return &Error{Kind: Malformed, Rule: rule, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func NewCompression(err error) *Error {
	return &Error{Kind: Compression, Offset: -1, Err: err}
}

func NewIO(rule string, offset int64, err error) *Error {
	return &Error{Kind: IO, Rule: rule, Offset: offset, Err: err}
}

func NewCustom(rule string, format string, args ...any) *Error {
	return &Error{Kind: Custom, Rule: rule, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
