// Package build evaluates candidate equipment sets and drives the search over
// every configured combination.
package build

import (
	"fmt"
	"math"

	"build-optimizer/internal/config"
	"build-optimizer/internal/item"
	"build-optimizer/internal/skillpoint"
	"build-optimizer/internal/stat"
)

// Combination slot layout. Rings come first so the ring pair can be swapped
// in place while the other six slots stay fixed.
const (
	SlotRing0 = iota
	SlotRing1
	SlotHelmet
	SlotChestplate
	SlotLeggings
	SlotBoots
	SlotBracelet
	SlotNecklace
	Slots
)

// Combination is one apparel per slot in the layout above.
type Combination [Slots]*item.Apparel

// Names returns the item names in slot order.
func (c *Combination) Names() [Slots]string {
	var out [Slots]string
	for i, a := range c {
		out[i] = a.Name
	}
	return out
}

// noLimit marks an unset minimum. Nothing real compares below it.
const noLimit = math.MinInt32

// Thresholds are the staged minima a build must meet.
type Thresholds struct {
	MinHP     int
	MinStat   stat.CommonStat
	MinHPR    int
	MinDef    stat.Point
	MinDamPct stat.Dam
	// MinPoint is invested into the build rather than checked. Zero axes are
	// left alone.
	MinPoint stat.Point
	MinEHP   int
}

// NoThresholds accepts every build.
func NoThresholds() Thresholds {
	return Thresholds{
		MinHP:     noLimit,
		MinStat:   stat.CommonStat{noLimit, noLimit, noLimit, noLimit, noLimit, noLimit, noLimit, noLimit},
		MinHPR:    noLimit,
		MinDef:    stat.Splat(noLimit),
		MinDamPct: stat.Dam{noLimit, noLimit, noLimit, noLimit, noLimit, noLimit},
		MinEHP:    noLimit,
	}
}

func orNoLimit(v *int) int {
	if v == nil {
		return noLimit
	}
	return *v
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// ThresholdsFrom flattens the optional config sections.
func ThresholdsFrom(c config.Config) Thresholds {
	t := NoThresholds()
	if f := c.ThresholdFirst; f != nil {
		t.MinHP = orNoLimit(f.MinHP)
	}
	if s := c.ThresholdSecond; s != nil {
		t.MinStat = stat.NewCommonStat(
			orNoLimit(s.MinHPRRaw), orNoLimit(s.MinHPRPct), orNoLimit(s.MinMR), orNoLimit(s.MinLS),
			orNoLimit(s.MinMS), orNoLimit(s.MinSpd), orNoLimit(s.MinSDRaw), orNoLimit(s.MinSDPct))
		t.MinHPR = orNoLimit(s.MinHPR)
	}
	if d := c.ThresholdThird; d != nil {
		t.MinDef = stat.NewPoint(orNoLimit(d.MinEarthDefense), orNoLimit(d.MinThunderDefense),
			orNoLimit(d.MinWaterDefense), orNoLimit(d.MinFireDefense), orNoLimit(d.MinAirDefense))
	}
	if d := c.ThresholdFourth; d != nil {
		t.MinDamPct = stat.NewDam(orNoLimit(d.MinNeutralDamPct), orNoLimit(d.MinEarthDamPct),
			orNoLimit(d.MinThunderDamPct), orNoLimit(d.MinWaterDamPct), orNoLimit(d.MinFireDamPct),
			orNoLimit(d.MinAirDamPct))
	}
	if f := c.ThresholdFifth; f != nil {
		t.MinPoint = stat.NewPoint(orZero(f.MinEarthPoint), orZero(f.MinThunderPoint),
			orZero(f.MinWaterPoint), orZero(f.MinFirePoint), orZero(f.MinAirPoint))
		t.MinEHP = orNoLimit(f.MinEHP)
	}
	return t
}

// Status is what a feasible build achieves at best rolls.
type Status struct {
	MaxStat    stat.CommonStat        `json:"max_stat"`
	MaxHPR     int                    `json:"max_hpr"`
	MaxHP      int                    `json:"max_hp"`
	MaxEHP     int                    `json:"max_ehp"`
	MaxDef     stat.Point             `json:"max_def"`
	SkillPoint skillpoint.SkillPoints `json:"skill_point"`
	MaxDamPct  stat.Dam               `json:"max_dam_pct"`
}

func (s Status) String() string {
	return fmt.Sprintf("max_stat:%s\nmax_hpr:%d\nmax_hp:%d\nmax_ehp:%d\nskill_point:\n%s\nmax_def:\t%s\nmax_dam_pct:\t%s",
		s.MaxStat, s.MaxHPR, s.MaxHP, s.MaxEHP, s.SkillPoint, s.MaxDef, s.MaxDamPct)
}

// Evaluator scores combinations against one weapon. It is read-only after
// NewEvaluator and safe for concurrent use.
type Evaluator struct {
	Weapon     *item.Weapon
	BaseHP     int
	Budget     int
	Solver     skillpoint.Solver
	Thresholds Thresholds

	illegal []map[string]struct{}
}

// NewEvaluator builds an evaluator from the player, search and threshold
// sections of c.
func NewEvaluator(c config.Config, w *item.Weapon) *Evaluator {
	e := &Evaluator{
		Weapon:     w,
		BaseHP:     c.Player.BaseHP,
		Budget:     c.Player.AvailablePoint,
		Solver:     c.SolverKind(),
		Thresholds: ThresholdsFrom(c),
	}
	e.SetIllegalCombinations(c.Items.IllegalCombinations)
	return e
}

// SetIllegalCombinations replaces the groups of names of which a build may
// wear at most one.
func (e *Evaluator) SetIllegalCombinations(groups [][]string) {
	e.illegal = e.illegal[:0]
	for _, g := range groups {
		set := make(map[string]struct{}, len(g))
		for _, n := range g {
			set[n] = struct{}{}
		}
		e.illegal = append(e.illegal, set)
	}
}

func (e *Evaluator) isIllegal(c *Combination) bool {
	for _, set := range e.illegal {
		count := 0
		for _, a := range c {
			if _, ok := set[a.Name]; ok {
				count++
				if count > 1 {
					return true
				}
			}
		}
	}
	return false
}

// Evaluate runs the filter stages cheapest first and reports whether the
// combination survives all of them.
func (e *Evaluator) Evaluate(c *Combination) (Status, bool) {
	items := c[:]
	th := &e.Thresholds

	maxHP := SumHPMax(e.Weapon, items) + e.BaseHP
	if maxHP < th.MinHP {
		return Status{}, false
	}

	maxStat := SumMaxStats(e.Weapon, items)
	maxHPR := maxStat.HPR()
	if maxStat.AnyLess(th.MinStat) || maxHPR < th.MinHPR {
		return Status{}, false
	}

	maxDef := SumDefMax(e.Weapon, items)
	if maxDef.AnyLess(th.MinDef) {
		return Status{}, false
	}

	maxDamPct := SumDamPctMax(e.Weapon, items)
	if maxDamPct.AnyLess(th.MinDamPct) {
		return Status{}, false
	}

	if e.isIllegal(c) {
		return Status{}, false
	}

	if skillpoint.FastReject(items, e.Budget) {
		return Status{}, false
	}
	sp, _ := skillpoint.Solve(items, e.Solver)
	sp.AddWeapon(e.Weapon).Assign(th.MinPoint)
	if !sp.Check(e.Budget) {
		return Status{}, false
	}

	maxEHP := EHP(maxHP, sp.Original, e.Weapon.Class)
	if maxEHP < th.MinEHP {
		return Status{}, false
	}

	return Status{
		MaxStat:    maxStat,
		MaxHPR:     maxHPR,
		MaxHP:      maxHP,
		MaxEHP:     maxEHP,
		MaxDef:     maxDef,
		SkillPoint: sp,
		MaxDamPct:  maxDamPct,
	}, true
}
