package skillpoint

import "build-optimizer/internal/stat"

// FastGap is total bonus minus the componentwise peak requirement. A negative
// axis is a shortfall that no wearing order can avoid.
func FastGap[E Equipment](items []E) stat.Point {
	var bonus, req stat.Point
	for _, it := range items {
		bonus = bonus.Add(it.Bonus())
		req = req.Max(it.Requirement())
	}
	return bonus.Sub(req)
}

// FastReject reports whether the unavoidable shortfall alone exceeds budget.
// The bound only counts axes some item requires and only credits positive
// bonuses there, so it never rejects a set the solvers would accept.
func FastReject[E Equipment](items []E, budget int) bool {
	var req, bonus stat.Point
	for _, it := range items {
		req = req.Max(it.Requirement())
		for i, b := range it.Bonus() {
			if b > 0 {
				bonus[i] += b
			}
		}
	}
	short := 0
	for i, r := range req {
		if r > 0 && r > bonus[i] {
			short += r - bonus[i]
		}
	}
	return short > budget
}
