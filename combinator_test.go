package komb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThen(t *testing.T) {
	p := Then(Tag("foo"), Tag("bar"))

	r := p("foobarbaz")
	require.False(t, r.Failed())
	assert.Equal(t, Pair[string, string]{A: "foo", B: "bar"}, r.Value)
	assert.Equal(t, "baz", r.Rest)

	// The sequence consumes exactly the sum of its parts.
	in := "foobarbaz"
	ra := Tag("foo")(in)
	rb := Tag("bar")(ra.Rest)
	assert.Equal(t, rb.Rest, r.Rest)
	consumed := len(in) - len(r.Rest)
	assert.Equal(t, consumed, (len(in)-len(ra.Rest))+(len(ra.Rest)-len(rb.Rest)))
}

func TestThenFailure(t *testing.T) {
	p := Then(Tag("foo"), Tag("bar"))

	r := p("fooqux")
	require.True(t, r.Failed())
	assert.Equal(t, `"bar"`, r.Err.What)
	assert.Equal(t, 3, r.Err.Offset("fooqux"))

	r = p("qux")
	require.True(t, r.Failed())
	assert.Equal(t, `"foo"`, r.Err.What)
}

func TestSeq(t *testing.T) {
	p := Seq(Tag("a"), Tag("b"), Tag("c"))

	r := p("abc rest")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"a", "b", "c"}, r.Value)
	assert.Equal(t, " rest", r.Rest)

	assert.True(t, p("abx").Failed())
}

func TestAltOrder(t *testing.T) {
	r := Alt(Tag("x"), Tag("ab"))("ab")
	require.False(t, r.Failed())
	assert.Equal(t, "ab", r.Value)

	// When several alternatives match, the first one wins.
	r = Alt(Tag("a"), Tag("ab"))("ab")
	require.False(t, r.Failed())
	assert.Equal(t, "a", r.Value)
	assert.Equal(t, "b", r.Rest)
}

func TestAltFurthestProgress(t *testing.T) {
	p := Alt(
		Consume(Then(Tag("foo"), Tag("bar"))),
		Tag("z"),
	)

	// The first alternative got three bytes in before failing, so its
	// error is more useful than the immediate failure of the second.
	r := p("foox")
	require.True(t, r.Failed())
	assert.Equal(t, `"bar"`, r.Err.What)
	assert.Equal(t, 3, r.Err.Offset("foox"))
}

func TestAltOpaqueErrors(t *testing.T) {
	first := func(in string) Result[string, int, string] {
		return Fail[string, int]("first")
	}
	second := func(in string) Result[string, int, string] {
		return Fail[string, int]("second")
	}

	// Errors which don't implement Spanned degrade to last-tried.
	r := Alt[string, int, string](first, second)("x")
	require.True(t, r.Failed())
	assert.Equal(t, "second", r.Err)
}

func TestAltWith(t *testing.T) {
	first := func(in string) Result[string, int, string] {
		return Fail[string, int]("first")
	}
	second := func(in string) Result[string, int, string] {
		return Fail[string, int]("second")
	}

	keepFirst := func(best, candidate Result[string, int, string]) Result[string, int, string] {
		return best
	}
	r := AltWith(keepFirst, first, second)("x")
	require.True(t, r.Failed())
	assert.Equal(t, "first", r.Err)
}

func TestAltEmptyPanics(t *testing.T) {
	assert.Panics(t, func() {
		Alt[string, string, *Error[string]]()
	})
}

func TestManyTerminates(t *testing.T) {
	empty := TakeWhile0[string](func(byte) bool { return false })

	r := Many0(empty)("abc")
	require.False(t, r.Failed())
	assert.Empty(t, r.Value)
	assert.Equal(t, "abc", r.Rest)
}

func TestMany(t *testing.T) {
	r := Many0(Tag("ab"))("ababx")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"ab", "ab"}, r.Value)
	assert.Equal(t, "x", r.Rest)

	r = Many0(Tag("ab"))("x")
	require.False(t, r.Failed())
	assert.Empty(t, r.Value)

	r = Many1(Tag("ab"))("x")
	require.True(t, r.Failed())
	assert.Equal(t, `"ab"`, r.Err.What)
}

func TestRepeat(t *testing.T) {
	p := Repeat(Tag("a"), 2, 3)

	r := p("aaaa")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"a", "a", "a"}, r.Value)
	assert.Equal(t, "a", r.Rest)

	r = p("aa")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"a", "a"}, r.Value)

	r = p("a")
	require.True(t, r.Failed())
	assert.Equal(t, EndOfInput, r.Err.Kind)
}

func TestRepeatZeroProgressPanics(t *testing.T) {
	empty := TakeWhile0[string](func(byte) bool { return false })

	assert.Panics(t, func() {
		Many1(empty)("abc")
	})
}

func TestOptional(t *testing.T) {
	p := Optional(Tag("lit"))

	r := p("lit rest")
	require.False(t, r.Failed())
	assert.Equal(t, Maybe[string]{Value: "lit", OK: true}, r.Value)
	assert.Equal(t, " rest", r.Rest)

	r = p("lat rest")
	require.False(t, r.Failed())
	assert.False(t, r.Value.OK)
	assert.Equal(t, "lat rest", r.Rest)
	assert.Equal(t, "fallback", r.Value.Or("fallback"))
}

func TestOptionalRespectsCut(t *testing.T) {
	r := Optional(Cut(Tag("a")))("b")
	require.True(t, r.Failed())
	assert.True(t, r.Committed())
}

func TestCutInAlt(t *testing.T) {
	// Once "(" matched, the first rule is committed: its failure must
	// surface instead of falling through to the second alternative,
	// even though that one would match.
	p := Alt(
		Preceded(Tag("("), Cut(Tag("a"))),
		Preceded(Tag("("), Tag("b")),
	)

	r := p("(b")
	require.True(t, r.Failed())
	assert.True(t, r.Committed())
	assert.Equal(t, `"a"`, r.Err.What)

	r = p("(a")
	require.False(t, r.Failed())
	assert.Equal(t, "a", r.Value)
}

func TestCutInRepetition(t *testing.T) {
	item := Preceded(Tag(","), Cut(Tag("a")))

	r := Many0(item)(",a,b")
	require.True(t, r.Failed())
	assert.True(t, r.Committed())
}

func TestMap(t *testing.T) {
	p := Map(Tag("ab"), strings.ToUpper)

	r := p("abc")
	require.False(t, r.Failed())
	assert.Equal(t, "AB", r.Value)
	assert.Equal(t, "c", r.Rest)

	assert.True(t, p("xy").Failed())
}

func TestMapErr(t *testing.T) {
	p := MapErr(Tag("x"), func(e *Error[string]) string {
		return "converted: " + e.Error()
	})

	r := p("y")
	require.True(t, r.Failed())
	assert.Equal(t, `converted: expected "x" at "y"`, r.Err)

	ok := p("xy")
	require.False(t, ok.Failed())
	assert.Equal(t, "x", ok.Value)
}

func TestValue(t *testing.T) {
	p := Value(Tag("true"), true)

	r := p("true!")
	require.False(t, r.Failed())
	assert.Equal(t, true, r.Value)
	assert.Equal(t, "!", r.Rest)
}

func TestDelimited(t *testing.T) {
	p := Delimited(Tag("("), Alpha1[string](), Tag(")"))

	r := p("(word) rest")
	require.False(t, r.Failed())
	assert.Equal(t, "word", r.Value)
	assert.Equal(t, " rest", r.Rest)

	assert.True(t, p("(notclosed").Failed())
	assert.True(t, p("()").Failed())
}

func TestPrecededTerminated(t *testing.T) {
	r := Preceded(Tag("#"), Alpha1[string]())("#tag rest")
	require.False(t, r.Failed())
	assert.Equal(t, "tag", r.Value)

	r = Terminated(Alpha1[string](), Tag(";"))("word; rest")
	require.False(t, r.Failed())
	assert.Equal(t, "word", r.Value)
	assert.Equal(t, " rest", r.Rest)
}

func TestPeek(t *testing.T) {
	r := Peek(Tag("ab"))("abc")
	require.False(t, r.Failed())
	assert.Equal(t, "ab", r.Value)
	assert.Equal(t, "abc", r.Rest)

	assert.True(t, Peek(Tag("ab"))("xy").Failed())
}

func TestNot(t *testing.T) {
	p := Not(Tag("str"))

	r := p("other")
	require.False(t, r.Failed())
	assert.Equal(t, "other", r.Rest)

	bad := p("str")
	require.True(t, bad.Failed())
	assert.Equal(t, Unexpected, bad.Err.Kind)
}

func TestConsume(t *testing.T) {
	in := "abc"
	r := Consume(Then(Tag("a"), Tag("b")))(in)
	require.False(t, r.Failed())
	assert.Equal(t, "ab", r.Value)
	assert.Equal(t, "c", r.Rest)
	assert.Equal(t, 2, len(in)-len(r.Rest))
}

func TestFold(t *testing.T) {
	element := Terminated(AnyByte[string](), Tag(","))
	p := Fold(element, "", func(acc string, b byte) string {
		return acc + string(b)
	})

	r := p("a,b,c,d,")
	require.False(t, r.Failed())
	assert.Equal(t, "abcd", r.Value)
	assert.Equal(t, "", r.Rest)

	// Each parse starts from the initial accumulator.
	r = p("x,y,")
	require.False(t, r.Failed())
	assert.Equal(t, "xy", r.Value)
}

func TestSeparated(t *testing.T) {
	p := Separated0(Digits1[string](10), Tag(","))

	r := p("1,2,3]")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"1", "2", "3"}, r.Value)
	assert.Equal(t, "]", r.Rest)

	// A trailing separator is left unconsumed.
	r = p("1,2,")
	require.False(t, r.Failed())
	assert.Equal(t, []string{"1", "2"}, r.Value)
	assert.Equal(t, ",", r.Rest)

	r = p("]")
	require.False(t, r.Failed())
	assert.Empty(t, r.Value)
	assert.Equal(t, "]", r.Rest)

	assert.True(t, Separated1(Digits1[string](10), Tag(","))("]").Failed())
}
