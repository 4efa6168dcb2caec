package komb

import (
	"fmt"
)

// Run applies p once to the whole input. On success it returns the parsed
// value and the unconsumed remainder; leftover input is not an error,
// since chained top-level parses consume it on purpose. Use RunComplete to
// reject it.
//
// The failure value is wrapped into an error: directly if E implements
// error, through fmt otherwise.
func Run[I Input, O, E any](p Parser[I, O, E], in I) (O, I, error) {
	r := p(in)
	if r.failed {
		var zero O
		return zero, in, toError(r.Err)
	}
	return r.Value, r.Rest, nil
}

// RunComplete is Run but additionally requires p to consume the whole
// input, failing with a TrailingInput error otherwise.
func RunComplete[I Input, O, E any](p Parser[I, O, E], in I) (O, error) {
	out, rest, err := Run(p, in)
	if err != nil {
		return out, err
	}
	if len(rest) > 0 {
		var zero O
		return zero, NewError(TrailingInput, rest, "")
	}
	return out, nil
}

// Complete wraps p so that a successful parse with leftover input becomes
// a TrailingInput failure. It is the composable equivalent of RunComplete
// for parsers using the library error type.
func Complete[I Input, O any](p Parser[I, O, *Error[I]]) Parser[I, O, *Error[I]] {
	return func(in I) Result[I, O, *Error[I]] {
		r := p(in)
		if r.failed || len(r.Rest) == 0 {
			return r
		}
		res := failErr[O, I](NewError(TrailingInput, r.Rest, ""))
		res.committed = r.committed
		return res
	}
}

func toError(err any) error {
	if e, ok := err.(error); ok {
		return e
	}
	return fmt.Errorf("parse failed: %v", err)
}
