package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated     = errors.New("protocol: truncated data")
	ErrInvalidTag    = errors.New("protocol: invalid tag")
	ErrInvalidUTF8   = errors.New("protocol: invalid utf-8 string")
	ErrTrailingBytes = errors.New("protocol: trailing bytes")
	ErrTooLarge      = errors.New("protocol: value too large to encode")
)

// TagError reports a discriminant that is not part of a union's known set.
type TagError struct {
	Union string
	Tag   string
}

func (e TagError) Error() string {
	return fmt.Sprintf("protocol: invalid %s tag %s", e.Union, e.Tag)
}

func (e TagError) Unwrap() error {
	return ErrInvalidTag
}

// DecodeError records where in the input a decode step failed.
type DecodeError struct {
	Op     string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
