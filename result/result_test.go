package result

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultKinds(t *testing.T) {
	ok := Of(1)
	assert.True(t, ok.IsSuccess())
	assert.True(t, ok.NonFailure())
	assert.Equal(t, 1, ok.Value())
	assert.NoError(t, ok.Err())

	ig := Ignore[int]("cosmetic")
	assert.True(t, ig.IsIgnored())
	assert.True(t, ig.NonFailure())
	assert.Equal(t, "cosmetic", ig.Reason())
	assert.NoError(t, ig.Err())

	fail := Fail[int]("boom")
	assert.True(t, fail.IsFailure())
	assert.False(t, fail.NonFailure())
	assert.EqualError(t, fail.Err(), "boom")

	var zero Result[int]
	assert.Equal(t, Failure, zero.Kind())
}

func TestMapPreservesVariant(t *testing.T) {
	toString := func(i int) string { return strconv.Itoa(i) }

	assert.Equal(t, "7", Map(Of(7), toString).Value())

	mapped := Map(Fail[int]("original"), toString)
	assert.True(t, mapped.IsFailure())
	assert.Equal(t, "original", mapped.Reason())

	mapped = Map(Ignore[int]("skip"), toString)
	assert.True(t, mapped.IsIgnored())
	assert.Equal(t, "skip", mapped.Reason())
}

func TestFlatMap(t *testing.T) {
	half := func(i int) Result[int] {
		if i%2 != 0 {
			return Failf[int]("%d is odd", i)
		}
		return Of(i / 2)
	}

	assert.Equal(t, 2, FlatMap(Of(4), half).Value())
	assert.Equal(t, "3 is odd", FlatMap(Of(3), half).Reason())
	assert.Equal(t, "x", FlatMap(Fail[int]("x"), half).Reason())
}

func TestCast(t *testing.T) {
	r := Cast[string](Ignore[int]("why"))
	assert.True(t, r.IsIgnored())
	assert.Equal(t, "why", r.Reason())

	assert.Panics(t, func() { Cast[string](Of(1)) })
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "Ignored", Ignored.String())
	assert.Equal(t, "Failure", Failure.String())
}
