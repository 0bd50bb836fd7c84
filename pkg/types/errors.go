// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a conversion failure.
type ErrorKind string

const (
	// KindParse indicates the HTML tokenizer or tree builder failed.
	KindParse ErrorKind = "parse"
	// KindInvalidNode indicates a NodeID lookup missed the arena.
	KindInvalidNode ErrorKind = "invalid_node"
	// KindUnsupported indicates a renderer was handed a tag it does not handle.
	KindUnsupported ErrorKind = "unsupported"
	// KindInvalidURL indicates URL resolution hit a non-https or unparseable base.
	KindInvalidURL ErrorKind = "invalid_url"
	// KindUnknown is the catch-all.
	KindUnknown ErrorKind = "unknown"
)

// ConvertError is the error type returned by the conversion core.
type ConvertError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Sentinels for errors.Is checks. Matching is by Kind only.
var (
	ErrParse       = &ConvertError{Kind: KindParse}
	ErrInvalidNode = &ConvertError{Kind: KindInvalidNode}
	ErrUnsupported = &ConvertError{Kind: KindUnsupported}
	ErrInvalidURL  = &ConvertError{Kind: KindInvalidURL}
	ErrUnknown     = &ConvertError{Kind: KindUnknown}
)

// NewError builds a ConvertError of the given kind with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *ConvertError {
	return &ConvertError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError builds a ConvertError of the given kind around err.
func WrapError(kind ErrorKind, err error, format string, args ...any) *ConvertError {
	return &ConvertError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *ConvertError) Error() string {
	msg := string(e.Kind)
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConvertError) Unwrap() error { return e.Err }

// Is reports whether target is a ConvertError of the same kind.
func (e *ConvertError) Is(target error) bool {
	var t *ConvertError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first ConvertError in err's chain, or
// KindUnknown when there is none.
func KindOf(err error) ErrorKind {
	var ce *ConvertError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}
