package komb

import (
	"math"
)

// Map transforms the output of a parser with a pure function. The
// remainder and any failure pass through untouched.
func Map[I Input, O, OX, E any](p Parser[I, O, E], f func(O) OX) Parser[I, OX, E] {
	return func(in I) Result[I, OX, E] {
		r := p(in)
		if r.failed {
			return FailFrom[OX](r)
		}
		return Result[I, OX, E]{Value: f(r.Value), Rest: r.Rest}
	}
}

// MapErr transforms the failure of a parser with a pure function. It is
// the designated adapter between parsers with mismatched error types:
// convert each sub-parser's error type at the boundary, then compose.
func MapErr[I Input, O, E, EX any](p Parser[I, O, E], f func(E) EX) Parser[I, O, EX] {
	return func(in I) Result[I, O, EX] {
		r := p(in)
		if !r.failed {
			return Result[I, O, EX]{Value: r.Value, Rest: r.Rest}
		}
		return Result[I, O, EX]{Err: f(r.Err), failed: true, committed: r.committed}
	}
}

// Value replaces the output of a parser with a fixed value. Handy for
// keyword parsers where the match itself carries the meaning.
func Value[I Input, O, V, E any](p Parser[I, O, E], v V) Parser[I, V, E] {
	return Map(p, func(O) V { return v })
}

// Pair is the output of Then: the two sub-parser outputs in order.
type Pair[A, B any] struct {
	A A
	B B
}

// Then applies a, then b on a's remainder, and succeeds with both outputs
// only if both succeed. On either failure the failure propagates as-is and
// the caller's input counts as unconsumed.
func Then[I Input, A, B, E any](a Parser[I, A, E], b Parser[I, B, E]) Parser[I, Pair[A, B], E] {
	return func(in I) Result[I, Pair[A, B], E] {
		ra := a(in)
		if ra.failed {
			return FailFrom[Pair[A, B]](ra)
		}
		rb := b(ra.Rest)
		if rb.failed {
			return FailFrom[Pair[A, B]](rb)
		}
		return Result[I, Pair[A, B], E]{
			Value: Pair[A, B]{A: ra.Value, B: rb.Value},
			Rest:  rb.Rest,
		}
	}
}

// Seq applies the parsers in order, each on the previous remainder, and
// collects their outputs. It fails on the first sub-parser failure.
func Seq[I Input, O, E any](parsers ...Parser[I, O, E]) Parser[I, []O, E] {
	return func(in I) Result[I, []O, E] {
		out := make([]O, 0, len(parsers))
		rest := in
		for _, p := range parsers {
			r := p(rest)
			if r.failed {
				return FailFrom[[]O](r)
			}
			out = append(out, r.Value)
			rest = r.Rest
		}
		return Result[I, []O, E]{Value: out, Rest: rest}
	}
}

// Alt tries the parsers in order against the same input and returns the
// first success. A committed failure (see Cut) is returned immediately
// without trying further alternatives.
//
// If every alternative fails, the failure that made the most progress into
// the input wins, with ties going to the later alternative. Progress is
// read through the Spanned capability; error types which don't implement
// it count as having made no progress, which for them degrades the policy
// to last-tried. Use AltWith to substitute a different policy.
//
// Alt panics if called with no parsers.
func Alt[I Input, O, E any](parsers ...Parser[I, O, E]) Parser[I, O, E] {
	return AltWith(furthest[I, O, E], parsers...)
}

// AltWith is Alt with a caller-supplied error policy: when every
// alternative fails, choose is folded over the failed results to pick the
// one reported to the caller.
func AltWith[I Input, O, E any](choose func(best, candidate Result[I, O, E]) Result[I, O, E], parsers ...Parser[I, O, E]) Parser[I, O, E] {
	if len(parsers) == 0 {
		panic("komb: Alt requires at least one alternative")
	}
	return func(in I) Result[I, O, E] {
		var best Result[I, O, E]
		for i, p := range parsers {
			r := p(in)
			if !r.failed || r.committed {
				return r
			}
			if i == 0 {
				best = r
			} else {
				best = choose(best, r)
			}
		}
		return best
	}
}

func furthest[I Input, O, E any](best, candidate Result[I, O, E]) Result[I, O, E] {
	if remainingOf(candidate.Err) <= remainingOf(best.Err) {
		return candidate
	}
	return best
}

func remainingOf(err any) int {
	if s, ok := err.(Spanned); ok {
		return s.Remaining()
	}
	return math.MaxInt
}

// Maybe is the output of Optional: a value and whether it was present.
type Maybe[T any] struct {
	Value T
	OK    bool
}

// Or returns the wrapped value if present, def otherwise.
func (m Maybe[T]) Or(def T) T {
	if m.OK {
		return m.Value
	}
	return def
}

// Optional applies p and succeeds either way: with the wrapped value and
// p's remainder, or with an absent Maybe and the untouched input. A
// committed failure is not absorbed and propagates.
func Optional[I Input, O, E any](p Parser[I, O, E]) Parser[I, Maybe[O], E] {
	return func(in I) Result[I, Maybe[O], E] {
		r := p(in)
		if r.failed {
			if r.committed {
				return FailFrom[Maybe[O]](r)
			}
			return Result[I, Maybe[O], E]{Rest: in}
		}
		return Result[I, Maybe[O], E]{Value: Maybe[O]{Value: r.Value, OK: true}, Rest: r.Rest}
	}
}

// Repeat applies p to successive remainders, collecting outputs, until p
// fails, stops consuming input, or max applications succeed. A negative
// max means unbounded. Fewer than min successes is a failure, reported
// with the error that stopped the loop.
//
// An application that succeeds without consuming input halts the loop
// immediately and its output is discarded; looping on it would never
// terminate. If that leaves the minimum unsatisfiable there is no failure
// to report and Repeat panics, since a zero-width repetition element is a
// defect in the grammar.
func Repeat[I Input, O, E any](p Parser[I, O, E], min, max int) Parser[I, []O, E] {
	return func(in I) Result[I, []O, E] {
		var out []O
		rest := in
		for max < 0 || len(out) < max {
			r := p(rest)
			if r.failed {
				if r.committed || len(out) < min {
					return FailFrom[[]O](r)
				}
				break
			}
			if len(r.Rest) == len(rest) {
				if len(out) < min {
					panic("komb: parser in Repeat matched without consuming input")
				}
				break
			}
			out = append(out, r.Value)
			rest = r.Rest
		}
		return Result[I, []O, E]{Value: out, Rest: rest}
	}
}

// Many0 applies p zero or more times. See Repeat.
func Many0[I Input, O, E any](p Parser[I, O, E]) Parser[I, []O, E] {
	return Repeat(p, 0, -1)
}

// Many1 applies p one or more times. See Repeat.
func Many1[I Input, O, E any](p Parser[I, O, E]) Parser[I, []O, E] {
	return Repeat(p, 1, -1)
}

// Fold repeatedly applies p, feeding each output through step to build up
// an accumulator, and stops at the first failure or at the first
// application that consumes nothing. It always succeeds unless the loop is
// stopped by a committed failure.
//
// init is captured when Fold is called and passed to step verbatim on
// every parse, so step must return a new accumulator rather than mutate a
// reference type in place.
func Fold[I Input, O, A, E any](p Parser[I, O, E], init A, step func(acc A, value O) A) Parser[I, A, E] {
	return func(in I) Result[I, A, E] {
		acc := init
		rest := in
		for {
			r := p(rest)
			if r.failed {
				if r.committed {
					return FailFrom[A](r)
				}
				break
			}
			if len(r.Rest) == len(rest) {
				break
			}
			acc = step(acc, r.Value)
			rest = r.Rest
		}
		return Result[I, A, E]{Value: acc, Rest: rest}
	}
}

// Separated0 parses zero or more p separated by sep, returning the p
// outputs. A trailing sep is not consumed: after a sep, p must match, or
// the list ends before that sep.
func Separated0[I Input, O, S, E any](p Parser[I, O, E], sep Parser[I, S, E]) Parser[I, []O, E] {
	more := separatedTail(p, sep)
	return func(in I) Result[I, []O, E] {
		first := p(in)
		if first.failed {
			if first.committed {
				return FailFrom[[]O](first)
			}
			return Result[I, []O, E]{Rest: in}
		}
		return more(first.Rest, []O{first.Value})
	}
}

// Separated1 is Separated0 but requires at least one p.
func Separated1[I Input, O, S, E any](p Parser[I, O, E], sep Parser[I, S, E]) Parser[I, []O, E] {
	more := separatedTail(p, sep)
	return func(in I) Result[I, []O, E] {
		first := p(in)
		if first.failed {
			return FailFrom[[]O](first)
		}
		return more(first.Rest, []O{first.Value})
	}
}

func separatedTail[I Input, O, S, E any](p Parser[I, O, E], sep Parser[I, S, E]) func(in I, out []O) Result[I, []O, E] {
	return func(in I, out []O) Result[I, []O, E] {
		rest := in
		for {
			rs := sep(rest)
			if rs.failed {
				if rs.committed {
					return FailFrom[[]O](rs)
				}
				break
			}
			r := p(rs.Rest)
			if r.failed {
				if r.committed {
					return FailFrom[[]O](r)
				}
				// Backtrack to before the separator.
				break
			}
			if len(r.Rest) == len(rest) {
				break
			}
			out = append(out, r.Value)
			rest = r.Rest
		}
		return Result[I, []O, E]{Value: out, Rest: rest}
	}
}

// Delimited matches left, content, and right in order and keeps only the
// content output. The consumed length is the sum of the three matches.
func Delimited[I Input, L, O, R, E any](left Parser[I, L, E], content Parser[I, O, E], right Parser[I, R, E]) Parser[I, O, E] {
	return func(in I) Result[I, O, E] {
		rl := left(in)
		if rl.failed {
			return FailFrom[O](rl)
		}
		rc := content(rl.Rest)
		if rc.failed {
			return rc
		}
		rr := right(rc.Rest)
		if rr.failed {
			return FailFrom[O](rr)
		}
		return Result[I, O, E]{Value: rc.Value, Rest: rr.Rest}
	}
}

// Preceded matches prefix then content and keeps only the content output.
func Preceded[I Input, P, O, E any](prefix Parser[I, P, E], content Parser[I, O, E]) Parser[I, O, E] {
	return func(in I) Result[I, O, E] {
		rp := prefix(in)
		if rp.failed {
			return FailFrom[O](rp)
		}
		return content(rp.Rest)
	}
}

// Terminated matches content then suffix and keeps only the content
// output.
func Terminated[I Input, O, S, E any](content Parser[I, O, E], suffix Parser[I, S, E]) Parser[I, O, E] {
	return func(in I) Result[I, O, E] {
		rc := content(in)
		if rc.failed {
			return rc
		}
		rs := suffix(rc.Rest)
		if rs.failed {
			return FailFrom[O](rs)
		}
		return Result[I, O, E]{Value: rc.Value, Rest: rs.Rest}
	}
}

// Cut commits the parse to p: any failure of p is marked committed, and
// enclosing Alt, Optional, and repetition combinators propagate it instead
// of backtracking to try something else. Place it after the token that
// uniquely identifies a grammar rule so that failures inside the rule
// surface directly rather than as a misleading failure of some unrelated
// alternative.
func Cut[I Input, O, E any](p Parser[I, O, E]) Parser[I, O, E] {
	return func(in I) Result[I, O, E] {
		r := p(in)
		if r.failed {
			r.committed = true
		}
		return r
	}
}

// Peek applies p without consuming input: on success the output is
// returned with the original input as the remainder. Failures propagate.
func Peek[I Input, O, E any](p Parser[I, O, E]) Parser[I, O, E] {
	return func(in I) Result[I, O, E] {
		r := p(in)
		if r.failed {
			return r
		}
		return Result[I, O, E]{Value: r.Value, Rest: in}
	}
}

// Not succeeds, consuming nothing, exactly when p fails.
func Not[I Input, O any](p Parser[I, O, *Error[I]]) Parser[I, struct{}, *Error[I]] {
	return func(in I) Result[I, struct{}, *Error[I]] {
		r := p(in)
		if r.failed {
			return Result[I, struct{}, *Error[I]]{Rest: in}
		}
		return failErr[struct{}](NewError(Unexpected, in, "match"))
	}
}

// Consume runs p and returns the input prefix it consumed, discarding its
// output. The prefix is a sub-slice of the input, not a copy.
func Consume[I Input, O, E any](p Parser[I, O, E]) Parser[I, I, E] {
	return func(in I) Result[I, I, E] {
		r := p(in)
		if r.failed {
			return FailFrom[I](r)
		}
		n := len(in) - len(r.Rest)
		return Result[I, I, E]{Value: in[:n], Rest: in[n:]}
	}
}
