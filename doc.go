// Package komb is a parser combinator library over in-memory strings and
// byte slices.
//
// A Parser is a function which consumes a prefix of its input and returns
// an output value together with the unconsumed remainder, or an error.
// Grammars are assembled by composing parsers with combinators, so the
// result of any combinator can feed any other without special cases:
//
//	digits := komb.Digits1[string](10)
//	list := komb.Delimited(
//		komb.Tag("("),
//		komb.Separated0(digits, komb.Tag(",")),
//		komb.Tag(")"),
//	)
//	out, err := komb.RunComplete(list, "(12,7,1985)")
//
// Everything is zero-copy: remainders and borrowed outputs are sub-slices
// of the original input buffer, so they stay valid for exactly as long as
// the buffer does. The input must be fully in memory before parsing
// starts; there is no streaming.
//
// Parsers are generic in their output and error types. The primitives in
// this package all produce *Error, which records what was expected and
// where without copying input. Grammars with their own error type convert
// at the boundary with MapErr, and implement Spanned if they want Alt's
// furthest-progress error selection to see through it. Explicit type
// annotations are sometimes needed at composition sites; that's the cost
// of the genericity.
//
// Failed parsers consume nothing, which is what lets Alt backtrack by
// re-trying alternatives on its original input. When a prefix uniquely
// identifies a rule, wrap the rest of the rule in Cut: failures behind a
// Cut are committed, and Alt and Optional report them instead of silently
// trying an unrelated alternative.
package komb
