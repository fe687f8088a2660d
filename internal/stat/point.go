// Package stat holds the fixed-width stat vectors shared by items, filters and the skill point solver.
package stat

import "fmt"

// Skill point axes. Item requirements map str->Earth, dex->Thunder, int->Water, def->Fire, agi->Air.
const (
	Earth = iota
	Thunder
	Water
	Fire
	Air

	PointAxes
)

var axisNames = [PointAxes]string{"earth", "thunder", "water", "fire", "air"}

// Point is a 5-axis integer vector used for skill points, requirements, bonuses and defences.
type Point [PointAxes]int

// NewPoint builds a Point in E,T,W,F,A order.
func NewPoint(e, t, w, f, a int) Point {
	return Point{e, t, w, f, a}
}

// Splat returns a Point with every axis set to v.
func Splat(v int) Point {
	return Point{v, v, v, v, v}
}

func (p Point) E() int { return p[Earth] }
func (p Point) T() int { return p[Thunder] }
func (p Point) W() int { return p[Water] }
func (p Point) F() int { return p[Fire] }
func (p Point) A() int { return p[Air] }

func (p Point) Add(o Point) Point {
	for i := range p {
		p[i] += o[i]
	}
	return p
}

func (p Point) Sub(o Point) Point {
	for i := range p {
		p[i] -= o[i]
	}
	return p
}

// Max returns the componentwise maximum.
func (p Point) Max(o Point) Point {
	for i := range p {
		if o[i] > p[i] {
			p[i] = o[i]
		}
	}
	return p
}

// Min returns the componentwise minimum.
func (p Point) Min(o Point) Point {
	for i := range p {
		if o[i] < p[i] {
			p[i] = o[i]
		}
	}
	return p
}

// AnyLess reports whether any axis of p is below the same axis of o.
func (p Point) AnyLess(o Point) bool {
	for i := range p {
		if p[i] < o[i] {
			return true
		}
	}
	return false
}

func (p Point) Sum() int {
	s := 0
	for _, v := range p {
		s += v
	}
	return s
}

// OnlyNegative zeroes every non-negative axis.
func (p Point) OnlyNegative() Point {
	for i := range p {
		if p[i] > 0 {
			p[i] = 0
		}
	}
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("%s:%d\t%s:%d\t%s:%d\t%s:%d\t%s:%d",
		axisNames[0], p[0], axisNames[1], p[1], axisNames[2], p[2], axisNames[3], p[3], axisNames[4], p[4])
}
