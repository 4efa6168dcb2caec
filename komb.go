package komb

// Input is the contract a value must satisfy to be parsed: an immutable,
// contiguous sequence of bytes with a known length. Both kinds of Go slice
// expressions on strings and byte slices produce sub-ranges of the original
// buffer without copying, which is what makes every parser in this package
// zero-copy.
//
// Parsers never mutate their input. Callers of parsers over []byte input
// must uphold the same discipline for as long as any remainder or borrowed
// output is alive.
type Input interface {
	~string | ~[]byte
}

// A Parser consumes a prefix of its input and either succeeds, producing an
// output value and the unconsumed remainder, or fails with an error of type
// E.
//
// Parsers are plain functions closed over their configuration. They hold no
// mutable state: the same parser value may be applied repeatedly, to
// different inputs, or concurrently from multiple goroutines without
// synchronisation. Constructing a parser never touches input.
//
// Primitives in this package fail without consuming anything, so a failed
// parse leaves the input exactly as it was. Combinators rely on that
// all-or-nothing rule to backtrack by simply re-using the input they were
// given.
type Parser[I Input, O, E any] func(in I) Result[I, O, E]

// Result is the outcome of applying a parser: either a success carrying a
// value and the remainder of the input, or a failure carrying an error.
//
// On success Rest is always a suffix of the input the parser was applied
// to. On failure only Err is meaningful.
type Result[I Input, O, E any] struct {
	// Value is the parsed output. Valid only if the parse succeeded.
	Value O
	// Rest is the unconsumed suffix of the input. Valid only if the
	// parse succeeded.
	Rest I
	// Err is the failure value. Valid only if the parse failed.
	Err E

	failed    bool
	committed bool
}

// Ok returns a successful Result with the given value and remainder.
//
// The error type can't be inferred from the arguments, so callers defining
// their own parsers will usually need to instantiate it explicitly.
func Ok[I Input, O, E any](value O, rest I) Result[I, O, E] {
	return Result[I, O, E]{Value: value, Rest: rest}
}

// Fail returns a failed Result with the given error.
func Fail[I Input, O, E any](err E) Result[I, O, E] {
	return Result[I, O, E]{Err: err, failed: true}
}

// FailFrom re-types a failed Result. It is used by parsers which wrap
// another parser with a different output type and need to propagate its
// failure. The commit flag set by Cut survives the conversion.
func FailFrom[OX any, I Input, O, E any](r Result[I, O, E]) Result[I, OX, E] {
	return Result[I, OX, E]{Err: r.Err, failed: r.failed, committed: r.committed}
}

// Failed reports whether the parse failed.
func (r Result[I, O, E]) Failed() bool { return r.failed }

// Committed reports whether the failure crossed a Cut point. Alt, Optional,
// and the repetition combinators propagate committed failures instead of
// backtracking past them. The flag is monotonic within a single parse: once
// set it is never cleared, and it is discarded with the Result.
func (r Result[I, O, E]) Committed() bool { return r.committed }
