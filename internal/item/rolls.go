package item

import (
	"math"

	"build-optimizer/internal/stat"
)

// Identification roll bounds: positive ids roll 30%..130%, negative ids 70%..130%
// with the best case being the smallest magnitude.
const (
	maxPositive = 1.3
	maxNegative = 0.7
	minPositive = 0.3
	minNegative = 1.3
)

func roll(v int, pos, neg float64) int {
	if v > 0 {
		return int(math.Round(float64(v) * pos))
	}
	return int(math.Round(float64(v) * neg))
}

// MaxRoll is the best possible roll of an identification. Fixed ids do not roll.
func MaxRoll(v int, fixed bool) int {
	if fixed {
		return v
	}
	return roll(v, maxPositive, maxNegative)
}

// MinRoll is the worst possible roll of an identification.
func MinRoll(v int, fixed bool) int {
	if fixed {
		return v
	}
	return roll(v, minPositive, minNegative)
}

func rollAll(dst []int, fixed, best bool) {
	for i, v := range dst {
		if best {
			dst[i] = MaxRoll(v, fixed)
		} else {
			dst[i] = MinRoll(v, fixed)
		}
	}
}

func maxPoint(p stat.Point, fixed bool) stat.Point { rollAll(p[:], fixed, true); return p }
func minPoint(p stat.Point, fixed bool) stat.Point { rollAll(p[:], fixed, false); return p }

func maxDam(d stat.Dam, fixed bool) stat.Dam { rollAll(d[:], fixed, true); return d }
func minDam(d stat.Dam, fixed bool) stat.Dam { rollAll(d[:], fixed, false); return d }

func maxCommon(c stat.CommonStat, fixed bool) stat.CommonStat { rollAll(c[:], fixed, true); return c }
func minCommon(c stat.CommonStat, fixed bool) stat.CommonStat { rollAll(c[:], fixed, false); return c }
