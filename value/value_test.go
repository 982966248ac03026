package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Nil.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.True(t, Number(0).Truthy())
	assert.True(t, String("").Truthy())
}

func TestEqual(t *testing.T) {
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Number(2)))
	assert.False(t, Number(1).Equal(String("1")))
	assert.True(t, String("a").Equal(String("a")))
	assert.True(t, Nil.Equal(Nil))
	assert.False(t, Bool(false).Equal(Nil))

	nan := Number(math.NaN())
	assert.False(t, nan.Equal(nan))
}

func TestStringFormatting(t *testing.T) {
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "hi", String("hi").String())
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, "ababab", Repeat("ab", 3))
	assert.Equal(t, "", Repeat("ab", 0))
	assert.Equal(t, "", Repeat("ab", -2))
	assert.Equal(t, "a", Repeat("a", 1.9))
}
