// Package skillpoint computes the minimum manual skill point investment
// needed to wear a set of equipment.
//
// Wearing order matters: an item's requirement must be met by the points the
// player assigned plus the bonuses of the items already worn. The solvers
// search over wearing orders and keep the cheapest.
package skillpoint

import (
	"fmt"

	"build-optimizer/internal/stat"
)

// MaxAssign is the per-axis cap on manually assigned points.
const MaxAssign = 100

// Equipment is anything with a skill point requirement and bonus.
type Equipment interface {
	Requirement() stat.Point
	Bonus() stat.Point
}

// SkillPoints is the solver state. Assigned holds the points the player has
// to invest; Original is Assigned plus every bonus applied so far.
type SkillPoints struct {
	Assigned stat.Point `json:"assigned"`
	Original stat.Point `json:"original"`
}

// Check reports whether the allocation fits the point budget and no axis
// exceeds MaxAssign.
func (sp SkillPoints) Check(budget int) bool {
	for _, v := range sp.Assigned {
		if v > MaxAssign {
			return false
		}
	}
	return sp.Assigned.Sum() <= budget
}

// Assign raises every axis with a non-zero target up to at least that target.
func (sp *SkillPoints) Assign(req stat.Point) *SkillPoints {
	sp.fillGap(req)
	return sp
}

// AddWeapon folds the weapon in after the armour set.
func (sp *SkillPoints) AddWeapon(w Equipment) *SkillPoints {
	sp.fillGap(w.Requirement())
	sp.Original = sp.Original.Add(w.Bonus())
	return sp
}

// fillGap invests whatever is missing on axes with a non-zero target.
func (sp *SkillPoints) fillGap(target stat.Point) {
	for i, t := range target {
		if t != 0 && sp.Original[i] < t {
			gap := t - sp.Original[i]
			sp.Assigned[i] += gap
			sp.Original[i] += gap
		}
	}
}

func (sp SkillPoints) String() string {
	return fmt.Sprintf("assigned:\t%s\noriginal:\t%s", sp.Assigned, sp.Original)
}

// fold is the running context while items are worn one after another.
type fold struct {
	sp SkillPoints
	// peak is the highest requirement+bonus over worn items that have a
	// requirement on that axis. Removing bonuses later must not drop Original
	// below it.
	peak stat.Point
}

func (f *fold) put(e Equipment) {
	req, bonus := e.Requirement(), e.Bonus()
	f.sp.fillGap(req)
	f.sp.Original = f.sp.Original.Add(bonus)
	for i := range req {
		if req[i] != 0 && req[i]+bonus[i] > f.peak[i] {
			f.peak[i] = req[i] + bonus[i]
		}
	}
	f.settle()
}

// settle covers a shortfall left by negative bonuses.
func (f *fold) settle() {
	f.sp.fillGap(f.peak)
}
