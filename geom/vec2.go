// Package geom holds the 2D value types shared by the simulation: vectors,
// axis-aligned boxes and 1-D ranges.
package geom

import (
	"math"

	"github.com/milk9111/desktopcharacters/common"
)

// Vec2 is a 2D vector with value semantics.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div divides componentwise. Division by a zero component follows IEEE rules.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

func (v Vec2) AddScalar(s float64) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) SubScalar(s float64) Vec2 { return Vec2{v.X - s, v.Y - s} }
func (v Vec2) Scale(s float64) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) DivScalar(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }
func (v Vec2) Neg() Vec2                { return Vec2{-v.X, -v.Y} }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64   { return math.Hypot(v.X, v.Y) }

// Normalized returns the unit vector in the direction of v. The zero vector
// stays zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.DivScalar(l)
}

func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

func Dist(a, b Vec2) float64   { return b.Sub(a).Len() }
func DistSq(a, b Vec2) float64 { return b.Sub(a).LenSq() }

func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{common.Lerp(a.X, b.X, t), common.Lerp(a.Y, b.Y, t)}
}
