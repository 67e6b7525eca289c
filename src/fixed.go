package main

import (
	"fmt"
	"math/bits"
)

// Fixed is a Q47.16 fixed point number. All positions and velocities in the
// simulation use it so both peers compute identical results on any platform.
type Fixed int64

const (
	FixedShift       = 16
	FixedOne   Fixed = 1 << FixedShift
	FixedHalf  Fixed = FixedOne >> 1
)

func FromInt(i int32) Fixed { return Fixed(int64(i) << FixedShift) }

// FromFloat is for load time only. Never call it from the tick path.
func FromFloat(f float64) Fixed {
	if f < 0 {
		return -Fixed(-f*float64(FixedOne) + 0.5)
	}
	return Fixed(f*float64(FixedOne) + 0.5)
}

func (f Fixed) Int() int32 {
	if f < 0 {
		return -int32((-f) >> FixedShift)
	}
	return int32(f >> FixedShift)
}

func (f Fixed) Float() float64 { return float64(f) / float64(FixedOne) }

func (f Fixed) String() string { return fmt.Sprintf("%.4f", f.Float()) }

// Mul rounds toward zero so that Mul(-a, b) == -Mul(a, b).
func (f Fixed) Mul(g Fixed) Fixed {
	if f == 0 || g == 0 {
		return 0
	}
	negative := (f < 0) != (g < 0)
	hi, lo := bits.Mul64(uint64(Abs(f)), uint64(Abs(g)))
	r := Fixed(hi<<(64-FixedShift) | lo>>FixedShift)
	if negative {
		return -r
	}
	return r
}

// Halve rounds toward zero, same reason as Mul.
func (f Fixed) Halve() Fixed {
	if f < 0 {
		return -((-f) >> 1)
	}
	return f >> 1
}

type Vec2 struct {
	X, Y Fixed
}

func V2(x, y int32) Vec2 { return Vec2{FromInt(x), FromInt(y)} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) MirrorX() Vec2 { return Vec2{-v.X, v.Y} }

func (v Vec2) String() string { return fmt.Sprintf("(%v, %v)", v.X, v.Y) }
