// Package vec2d provides a non-negative integer 2-D vector used throughout
// the dezoomer core for tile and image dimensions, positions, and grid
// indices.
package vec2d

import "fmt"

// Vec2d is a pair of non-negative integer coordinates. Every operation
// keeps both components non-negative: Sub saturates at zero instead of
// wrapping or going negative.
type Vec2d struct {
	X uint32
	Y uint32
}

// Square returns a vector with both components set to n.
func Square(n uint32) Vec2d {
	return Vec2d{X: n, Y: n}
}

// Add returns the component-wise sum.
func (v Vec2d) Add(o Vec2d) Vec2d {
	return Vec2d{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference, saturating at zero.
func (v Vec2d) Sub(o Vec2d) Vec2d {
	return Vec2d{X: satSub(v.X, o.X), Y: satSub(v.Y, o.Y)}
}

func satSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// Mul returns the component-wise product.
func (v Vec2d) Mul(o Vec2d) Vec2d {
	return Vec2d{X: v.X * o.X, Y: v.Y * o.Y}
}

// MulScalar returns v scaled by n.
func (v Vec2d) MulScalar(n uint32) Vec2d {
	return Vec2d{X: v.X * n, Y: v.Y * n}
}

// Div returns the component-wise truncating division. Both components of o
// must be non-zero.
func (v Vec2d) Div(o Vec2d) Vec2d {
	return Vec2d{X: v.X / o.X, Y: v.Y / o.Y}
}

// DivScalar returns v divided by n, truncating toward zero. n must be non-zero.
func (v Vec2d) DivScalar(n uint32) Vec2d {
	return Vec2d{X: v.X / n, Y: v.Y / n}
}

// CeilDiv returns the component-wise ceiling division of v by o. Both
// components of o must be non-zero.
func (v Vec2d) CeilDiv(o Vec2d) Vec2d {
	return Vec2d{X: ceilDiv(v.X, o.X), Y: ceilDiv(v.Y, o.Y)}
}

func ceilDiv(a, b uint32) uint32 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// Min returns the component-wise minimum.
func (v Vec2d) Min(o Vec2d) Vec2d {
	return Vec2d{X: minU32(v.X, o.X), Y: minU32(v.Y, o.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2d) Max(o Vec2d) Vec2d {
	return Vec2d{X: maxU32(v.X, o.X), Y: maxU32(v.Y, o.Y)}
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// String renders the vector as "x=<x> y=<y>".
func (v Vec2d) String() string {
	return fmt.Sprintf("x=%d y=%d", v.X, v.Y)
}
