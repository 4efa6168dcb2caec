package komb

import (
	"fmt"
	"strings"
)

// Primitive parsers over raw bytes. All of them work on both string and
// []byte input and observe the all-or-nothing rule: a failing primitive
// consumes nothing.

// Tag matches lit at the start of the input and consumes exactly its
// length. The output is the matched prefix of the input, not lit itself.
//
// If the input is shorter than lit the failure has kind EndOfInput,
// otherwise Unmatched.
func Tag[I Input](lit I) Parser[I, I, *Error[I]] {
	what := fmt.Sprintf("%q", string(lit))
	return func(in I) Result[I, I, *Error[I]] {
		if len(in) < len(lit) {
			return failErr[I](NewError(EndOfInput, in[len(in):], what))
		}
		for i := 0; i < len(lit); i++ {
			if in[i] != lit[i] {
				return failErr[I](NewError(Unmatched, in, what))
			}
		}
		return Result[I, I, *Error[I]]{Value: in[:len(lit)], Rest: in[len(lit):]}
	}
}

// AnyCase matches lit ignoring ASCII case. Bytes outside the ASCII range
// are compared verbatim.
func AnyCase[I Input](lit string) Parser[I, I, *Error[I]] {
	what := fmt.Sprintf("%q", lit)
	return func(in I) Result[I, I, *Error[I]] {
		if len(in) < len(lit) {
			return failErr[I](NewError(EndOfInput, in[len(in):], what))
		}
		for i := 0; i < len(lit); i++ {
			if lowerASCII(in[i]) != lowerASCII(lit[i]) {
				return failErr[I](NewError(Unmatched, in, what))
			}
		}
		return Result[I, I, *Error[I]]{Value: in[:len(lit)], Rest: in[len(lit):]}
	}
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

// Byte matches the single byte b.
func Byte[I Input](b byte) Parser[I, byte, *Error[I]] {
	return ByteWhere[I](fmt.Sprintf("%q", rune(b)), func(c byte) bool { return c == b })
}

// ByteWhere matches a single byte satisfying pred. The what argument
// describes the expectation for error messages.
func ByteWhere[I Input](what string, pred func(byte) bool) Parser[I, byte, *Error[I]] {
	return func(in I) Result[I, byte, *Error[I]] {
		if len(in) == 0 {
			return failErr[byte](NewError(EndOfInput, in, what))
		}
		if !pred(in[0]) {
			return failErr[byte](NewError(Unmatched, in, what))
		}
		return Result[I, byte, *Error[I]]{Value: in[0], Rest: in[1:]}
	}
}

// AnyByte matches any single byte.
func AnyByte[I Input]() Parser[I, byte, *Error[I]] {
	return ByteWhere[I]("any byte", func(byte) bool { return true })
}

// OneOf matches a single byte contained in set.
func OneOf[I Input](set string) Parser[I, byte, *Error[I]] {
	what := fmt.Sprintf("one of %q", set)
	return ByteWhere[I](what, func(b byte) bool { return strings.IndexByte(set, b) >= 0 })
}

// NoneOf matches a single byte not contained in set.
func NoneOf[I Input](set string) Parser[I, byte, *Error[I]] {
	what := fmt.Sprintf("none of %q", set)
	return ByteWhere[I](what, func(b byte) bool { return strings.IndexByte(set, b) < 0 })
}

// Take consumes exactly n bytes. It fails with an EndOfInput error if
// fewer remain, consuming nothing.
func Take[I Input](n int) Parser[I, I, *Error[I]] {
	what := fmt.Sprintf("%d bytes", n)
	return func(in I) Result[I, I, *Error[I]] {
		if len(in) < n {
			return failErr[I](NewError(EndOfInput, in[len(in):], what))
		}
		return Result[I, I, *Error[I]]{Value: in[:n], Rest: in[n:]}
	}
}

// TakeWhile0 consumes the maximal prefix whose bytes satisfy pred. It
// always succeeds, possibly with an empty match.
func TakeWhile0[I Input](pred func(byte) bool) Parser[I, I, *Error[I]] {
	return func(in I) Result[I, I, *Error[I]] {
		i := 0
		for i < len(in) && pred(in[i]) {
			i++
		}
		return Result[I, I, *Error[I]]{Value: in[:i], Rest: in[i:]}
	}
}

// TakeWhile1 is TakeWhile0 but fails on an empty match. The what argument
// describes the expectation for error messages.
func TakeWhile1[I Input](what string, pred func(byte) bool) Parser[I, I, *Error[I]] {
	p := TakeWhile0[I](pred)
	return func(in I) Result[I, I, *Error[I]] {
		r := p(in)
		if len(r.Value) == 0 {
			if len(in) == 0 {
				return failErr[I](NewError(EndOfInput, in, what))
			}
			return failErr[I](NewError(Unmatched, in, what))
		}
		return r
	}
}

// TakeUntil0 consumes the prefix up to the first byte satisfying pred.
func TakeUntil0[I Input](pred func(byte) bool) Parser[I, I, *Error[I]] {
	return TakeWhile0[I](func(b byte) bool { return !pred(b) })
}

// TakeUntil1 is TakeUntil0 but fails on an empty match.
func TakeUntil1[I Input](what string, pred func(byte) bool) Parser[I, I, *Error[I]] {
	return TakeWhile1[I](what, func(b byte) bool { return !pred(b) })
}

// EOF succeeds only at the end of the input. It never consumes anything.
func EOF[I Input]() Parser[I, struct{}, *Error[I]] {
	return func(in I) Result[I, struct{}, *Error[I]] {
		if len(in) > 0 {
			return failErr[struct{}](NewError(TrailingInput, in, ""))
		}
		return Result[I, struct{}, *Error[I]]{Rest: in}
	}
}
