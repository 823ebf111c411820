package tonetrack

import "errors"

var (
	// ErrInvalidAddress is returned when a sample index, time or cursor would
	// point before the start of a track.
	ErrInvalidAddress = errors.New("invalid sample address")

	// ErrTypeMismatch is returned by Resolve for values that cannot be used to
	// address a sample.
	ErrTypeMismatch = errors.New("unsupported position type")

	// ErrResourceExhausted wraps failures of the underlying storage, e.g. when
	// the output file cannot be written.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrNotImplemented is returned by the bulk range operations of Track.
	ErrNotImplemented = errors.New("not implemented")
)
