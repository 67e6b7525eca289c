package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFixedConversions(t *testing.T) {
	assert.Equal(t, FixedOne*3, FromInt(3))
	assert.Equal(t, int32(-2), FromFloat(-2.5).Int())
	assert.Equal(t, FixedHalf, FromFloat(0.5))
	assert.Equal(t, -FixedHalf, FromFloat(-0.5))
	assert.Equal(t, "1.5000", FromFloat(1.5).String())
	assert.Equal(t, FromInt(6), FromInt(2).Mul(FromInt(3)))
}

func TestFixedSignSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Fixed(rapid.Int64Range(-1<<40, 1<<40).Draw(t, "a"))
		b := Fixed(rapid.Int64Range(-1<<30, 1<<30).Draw(t, "b"))
		if (-a).Mul(b) != -a.Mul(b) {
			t.Fatalf("Mul(-%v, %v) is not -Mul(%v, %v)", a, b, a, b)
		}
		if (-a).Halve() != -a.Halve() {
			t.Fatalf("Halve(-%v) is not -Halve(%v)", a, a)
		}
	})
}
