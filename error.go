package komb

import (
	"fmt"
)

// Kind classifies the failures produced by the parsers in this package.
type Kind int

const (
	// Unmatched means the input didn't start with what a primitive
	// expected.
	Unmatched Kind = iota
	// EndOfInput means the input ended before a primitive could match.
	EndOfInput
	// Unexpected is produced by Not when its inner parser matched.
	Unexpected
	// TrailingInput is produced by Complete and RunComplete when a
	// successful parse left unconsumed input behind.
	TrailingInput
	// BadNumber means a numeric literal matched but couldn't be
	// converted, e.g. because it overflows the target type.
	BadNumber
	// Custom is used by Errorf for free-form messages.
	Custom
)

func (k Kind) String() string {
	switch k {
	case Unmatched:
		return "unmatched"
	case EndOfInput:
		return "end of input"
	case Unexpected:
		return "unexpected"
	case TrailingInput:
		return "trailing input"
	case BadNumber:
		return "bad number"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type produced by every primitive in this package.
//
// Span is the unconsumed suffix of the input at the point of failure, so it
// locates the failure without copying any of the input: the offset of the
// failure within an input is len(input) - len(Span).
//
// Parsers are not required to use Error. The error type parameter E is
// unconstrained, and MapErr converts failures between error types at the
// boundary between sub-parsers from different sources.
type Error[I Input] struct {
	// Kind of the failure.
	Kind Kind
	// What was expected, in human-readable form. For BadNumber it holds
	// the offending literal instead.
	What string
	// Span is the input left unconsumed at the point of failure.
	Span I
	// Cause is the underlying error for BadNumber failures.
	Cause error
}

// NewError creates an Error of the given kind at span.
func NewError[I Input](kind Kind, span I, what string) *Error[I] {
	return &Error[I]{Kind: kind, Span: span, What: what}
}

// Errorf creates a free-form Error at span. It is the escape hatch for
// hand-written parsers which have no suitable primitive failure.
func Errorf[I Input](span I, format string, args ...any) *Error[I] {
	return &Error[I]{Kind: Custom, Span: span, What: fmt.Sprintf(format, args...)}
}

func (e *Error[I]) Error() string {
	switch e.Kind {
	case EndOfInput:
		if e.What != "" {
			return fmt.Sprintf("unexpected end of input, expected %s", e.What)
		}
		return "unexpected end of input"
	case Unexpected:
		return fmt.Sprintf("unexpected %s at %q", e.What, snippet(e.Span))
	case TrailingInput:
		return fmt.Sprintf("unexpected trailing input %q", snippet(e.Span))
	case BadNumber:
		return fmt.Sprintf("bad number %q: %v", e.What, e.Cause)
	case Custom:
		if len(e.Span) > 0 {
			return fmt.Sprintf("%s at %q", e.What, snippet(e.Span))
		}
		return e.What
	}
	return fmt.Sprintf("expected %s at %q", e.What, snippet(e.Span))
}

func (e *Error[I]) Unwrap() error { return e.Cause }

// Remaining implements Spanned.
func (e *Error[I]) Remaining() int { return len(e.Span) }

// Offset returns the byte offset of the failure within input, which must be
// the buffer the failing parser was ultimately applied to.
func (e *Error[I]) Offset(input I) int {
	if len(e.Span) > len(input) {
		return 0
	}
	return len(input) - len(e.Span)
}

// Spanned is the capability an error type may implement to take part in
// Alt's furthest-progress policy. Error implements it; custom error types
// which don't are treated by Alt as having made no progress.
type Spanned interface {
	// Remaining returns the length of the input left unconsumed at the
	// point of failure.
	Remaining() int
}

// A Position within an input buffer.
type Position struct {
	Offset int // byte offset, 0-based
	Line   int // 1-based
	Column int // 1-based, in bytes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf computes the line and column of a byte offset within input.
// It scans the input up to the offset, so it is meant for rendering
// diagnostics, not for hot paths.
func PositionOf[I Input](input I, offset int) Position {
	if offset > len(input) {
		offset = len(input)
	}
	pos := Position{Offset: offset, Line: 1, Column: 1}
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// FormatError renders err with the line and column at which it occurred.
func FormatError[I Input](input I, err *Error[I]) string {
	pos := PositionOf(input, err.Offset(input))
	return fmt.Sprintf("%s: %s", pos, err.Error())
}

func snippet[I Input](span I) string {
	const max = 24
	if len(span) > max {
		return string(span[:max]) + "..."
	}
	return string(span)
}

func failErr[O any, I Input](err *Error[I]) Result[I, O, *Error[I]] {
	return Result[I, O, *Error[I]]{Err: err, failed: true}
}
