package qoi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a codec failure into one of a small set of abstract
// error kinds. The core never retries and never partially succeeds:
// every Error is terminal for the call that produced it.
type Kind int

const (
	// InvalidArgument covers a null/zero-sized descriptor, bad channel
	// count, or unsupported colorspace.
	InvalidArgument Kind = iota
	// InvalidInput covers magic mismatch, truncated stream, pixel budget
	// exceeded, or a malformed block table.
	InvalidInput
	// AllocationFailed covers output/scratch buffer allocation failure.
	AllocationFailed
	// SegmentFailed wraps an underlying kind with the segment index that
	// produced it; parallel paths only.
	SegmentFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidInput:
		return "InvalidInput"
	case AllocationFailed:
		return "AllocationFailed"
	case SegmentFailed:
		return "SegmentFailed"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by the exported operations in
// this package (ImageEncode passes errors from its io.Writer through
// unchanged). It carries a Kind so callers can branch with errors.As, and
// wraps an underlying cause built with github.com/pkg/errors, which records
// a stack trace. Error itself does not implement fmt.Formatter, so %+v on
// it prints the same text as Error(); the cause's stack trace is printed
// by formatting errors.Unwrap(err) with %+v.
type Error struct {
	Kind    Kind
	Segment int // -1 unless Kind == SegmentFailed
	cause   error
}

func (e *Error) Error() string {
	if e.Kind == SegmentFailed {
		return fmt.Sprintf("qoi: segment %d failed: %v", e.Segment, e.cause)
	}
	return fmt.Sprintf("qoi: %s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Segment: -1, cause: errors.Errorf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Segment: -1, cause: errors.Wrapf(cause, format, args...)}
}

func segmentError(index int, cause error) *Error {
	return &Error{Kind: SegmentFailed, Segment: index, cause: errors.WithStack(cause)}
}
