package stat

import "fmt"

// Damage axes, neutral first.
const (
	DamNeutral = iota
	DamEarth
	DamThunder
	DamWater
	DamFire
	DamAir

	DamAxes
)

// Dam is a 6-axis damage percentage vector.
type Dam [DamAxes]int

func NewDam(n, e, t, w, f, a int) Dam {
	return Dam{n, e, t, w, f, a}
}

func (d Dam) Add(o Dam) Dam {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d Dam) Max(o Dam) Dam {
	for i := range d {
		if o[i] > d[i] {
			d[i] = o[i]
		}
	}
	return d
}

func (d Dam) Min(o Dam) Dam {
	for i := range d {
		if o[i] < d[i] {
			d[i] = o[i]
		}
	}
	return d
}

func (d Dam) AnyLess(o Dam) bool {
	for i := range d {
		if d[i] < o[i] {
			return true
		}
	}
	return false
}

func (d Dam) String() string {
	return fmt.Sprintf("neutral:%d\tearth:%d\tthunder:%d\twater:%d\tfire:%d\tair:%d",
		d[0], d[1], d[2], d[3], d[4], d[5])
}
