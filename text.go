package komb

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/constraints"
)

// Rune-level primitives, character classes, and numeric parsers. Like the
// byte primitives these work on both string and []byte input; runes are
// decoded as UTF-8 at the current position without converting the input.

// Rune matches the single rune r.
func Rune[I Input](r rune) Parser[I, rune, *Error[I]] {
	return RuneWhere[I](fmt.Sprintf("%q", r), func(c rune) bool { return c == r })
}

// RuneWhere matches a single rune satisfying pred. The what argument
// describes the expectation for error messages.
func RuneWhere[I Input](what string, pred func(rune) bool) Parser[I, rune, *Error[I]] {
	return func(in I) Result[I, rune, *Error[I]] {
		if len(in) == 0 {
			return failErr[rune](NewError(EndOfInput, in, what))
		}
		r, size := decodeRune(in)
		if !pred(r) {
			return failErr[rune](NewError(Unmatched, in, what))
		}
		return Result[I, rune, *Error[I]]{Value: r, Rest: in[size:]}
	}
}

// AnyRune matches any single rune. Invalid UTF-8 yields utf8.RuneError
// over a single byte, as when ranging over a string.
func AnyRune[I Input]() Parser[I, rune, *Error[I]] {
	return RuneWhere[I]("any rune", func(rune) bool { return true })
}

// RunesWhile0 consumes the maximal prefix whose runes satisfy pred. It
// always succeeds, possibly with an empty match.
func RunesWhile0[I Input](pred func(rune) bool) Parser[I, I, *Error[I]] {
	return func(in I) Result[I, I, *Error[I]] {
		i := 0
		for i < len(in) {
			r, size := decodeRune(in[i:])
			if !pred(r) {
				break
			}
			i += size
		}
		return Result[I, I, *Error[I]]{Value: in[:i], Rest: in[i:]}
	}
}

// RunesWhile1 is RunesWhile0 but fails on an empty match.
func RunesWhile1[I Input](what string, pred func(rune) bool) Parser[I, I, *Error[I]] {
	p := RunesWhile0[I](pred)
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

// Whitespace0 consumes Unicode whitespace, possibly none.
func Whitespace0[I Input]() Parser[I, I, *Error[I]] {
	return RunesWhile0[I](unicode.IsSpace)
}

// Alpha1 consumes one or more Unicode letters.
func Alpha1[I Input]() Parser[I, I, *Error[I]] {
	return RunesWhile1[I]("letters", unicode.IsLetter)
}

// AlphaNum1 consumes one or more Unicode letters or digits.
func AlphaNum1[I Input]() Parser[I, I, *Error[I]] {
	return RunesWhile1[I]("letters or digits", func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
}

// Digits0 consumes ASCII digits in the given base, possibly none. Bases up
// to 36 use letters case-insensitively, as in strconv.
func Digits0[I Input](base int) Parser[I, I, *Error[I]] {
	return RunesWhile0[I](func(r rune) bool { return isDigit(r, base) })
}

// Digits1 is Digits0 but requires at least one digit.
func Digits1[I Input](base int) Parser[I, I, *Error[I]] {
	what := fmt.Sprintf("base %d digits", base)
	return RunesWhile1[I](what, func(r rune) bool { return isDigit(r, base) })
}

func isDigit(r rune, base int) bool {
	var v int
	switch {
	case '0' <= r && r <= '9':
		v = int(r - '0')
	case 'a' <= r && r <= 'z':
		v = int(r-'a') + 10
	case 'A' <= r && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return false
	}
	return v < base
}

// LineEnd matches a "\r\n" or "\n" line ending.
func LineEnd[I Input]() Parser[I, I, *Error[I]] {
	return Alt(Tag(I("\r\n")), Tag(I("\n")))
}

// Line matches a single "\n"-terminated line and returns it without the
// newline. A line ended by "\r\n" keeps the carriage return in the output.
// Input without a newline is a failure.
func Line[I Input]() Parser[I, I, *Error[I]] {
	return func(in I) Result[I, I, *Error[I]] {
		for i := 0; i < len(in); i++ {
			if in[i] == '\n' {
				return Result[I, I, *Error[I]]{Value: in[:i], Rest: in[i+1:]}
			}
		}
		return failErr[I](NewError(EndOfInput, in[len(in):], "line ending"))
	}
}

// Uint parses a decimal unsigned integer into N. Sign characters are not
// accepted. Values that don't fit in N fail with a BadNumber error.
func Uint[N constraints.Unsigned, I Input]() Parser[I, N, *Error[I]] {
	digits := TakeWhile1[I]("digits", isASCIIDigit)
	return func(in I) Result[I, N, *Error[I]] {
		r := digits(in)
		if r.failed {
			return FailFrom[N](r)
		}
		s := string(r.Value)
		v, err := strconv.ParseUint(s, 10, 64)
		if err == nil && uint64(N(v)) != v {
			err = strconv.ErrRange
		}
		if err != nil {
			return failErr[N](&Error[I]{Kind: BadNumber, Span: in, What: s, Cause: err})
		}
		return Result[I, N, *Error[I]]{Value: N(v), Rest: r.Rest}
	}
}

// Int parses a decimal signed integer into N, with an optional leading
// "+" or "-".
func Int[N constraints.Signed, I Input]() Parser[I, N, *Error[I]] {
	digits := TakeWhile1[I]("digits", isASCIIDigit)
	return func(in I) Result[I, N, *Error[I]] {
		body := in
		if len(in) > 0 && (in[0] == '+' || in[0] == '-') {
			body = in[1:]
		}
		r := digits(body)
		if r.failed {
			return FailFrom[N](r)
		}
		s := string(in[:len(in)-len(r.Rest)])
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil && int64(N(v)) != v {
			err = strconv.ErrRange
		}
		if err != nil {
			return failErr[N](&Error[I]{Kind: BadNumber, Span: in, What: s, Cause: err})
		}
		return Result[I, N, *Error[I]]{Value: N(v), Rest: r.Rest}
	}
}

// Float parses a decimal floating point number into N: an optional sign,
// then digits with an optional fraction and exponent, or one of "inf",
// "infinity", and "nan" in any case.
func Float[N constraints.Float, I Input]() Parser[I, N, *Error[I]] {
	digits1 := TakeWhile1[I]("digits", isASCIIDigit)
	digits0 := TakeWhile0[I](isASCIIDigit)
	sign := skip(Optional(OneOf[I]("+-")))
	exponent := skip(Then(AnyCase[I]("e"), Then(sign, digits1)))
	mantissa := Alt(
		skip(Then(digits1, Then(Tag(I(".")), digits0))),
		skip(Then(digits0, Then(Tag(I(".")), digits1))),
		skip(digits1),
	)
	number := skip(Then(mantissa, Optional(exponent)))
	special := Alt(
		skip(AnyCase[I]("infinity")),
		skip(AnyCase[I]("inf")),
		skip(AnyCase[I]("nan")),
	)
	p := Consume(Then(sign, Alt(special, number)))

	bits := 64
	var zero N
	if _, ok := any(zero).(float32); ok {
		bits = 32
	}

	return func(in I) Result[I, N, *Error[I]] {
		r := p(in)
		if r.failed {
			return FailFrom[N](r)
		}
		s := string(r.Value)
		v, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return failErr[N](&Error[I]{Kind: BadNumber, Span: in, What: s, Cause: err})
		}
		return Result[I, N, *Error[I]]{Value: N(v), Rest: r.Rest}
	}
}

func isASCIIDigit(b byte) bool { return '0' <= b && b <= '9' }

func skip[I Input, O any](p Parser[I, O, *Error[I]]) Parser[I, struct{}, *Error[I]] {
	return Value(p, struct{}{})
}

func decodeRune[I Input](in I) (rune, int) {
	n := len(in)
	if n > utf8.UTFMax {
		n = utf8.UTFMax
	}
	var buf [utf8.UTFMax]byte
	for i := 0; i < n; i++ {
		buf[i] = in[i]
	}
	return utf8.DecodeRune(buf[:n])
}
