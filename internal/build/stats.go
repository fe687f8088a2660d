package build

import (
	"math"

	"build-optimizer/internal/item"
	"build-optimizer/internal/stat"
)

// SumHPMax is the best-roll health of the set: base hp plus rolled hp bonus
// of every apparel, plus the weapon's hp bonus.
func SumHPMax(w *item.Weapon, items []*item.Apparel) int {
	hp := w.HPBonusMax
	for _, it := range items {
		hp += it.HP + it.HPBonusMax
	}
	return hp
}

// SumDefMax is the per-element defence after percentage bonuses. Integer
// division truncates toward zero like the game does.
func SumDefMax(w *item.Weapon, items []*item.Apparel) stat.Point {
	var def stat.Point
	pct := w.DefPctMax
	for _, it := range items {
		def = def.Add(it.Def)
		pct = pct.Add(it.DefPctMax)
	}
	for i := range def {
		def[i] = def[i] * (100 + pct[i]) / 100
	}
	return def
}

func SumDamPctMax(w *item.Weapon, items []*item.Apparel) stat.Dam {
	d := w.DamPctMax
	for _, it := range items {
		d = d.Add(it.DamPctMax)
	}
	return d
}

func SumMaxStats(w *item.Weapon, items []*item.Apparel) stat.CommonStat {
	s := w.StatMax
	for _, it := range items {
		s = s.Add(it.StatMax)
	}
	return s
}

const (
	skillCap   = 150
	skillRatio = 0.9908
)

// SkillPointsToPercentage maps an effective skill point total to its bonus
// fraction (0.3985... at 50). Values above 150 count as 150.
func SkillPointsToPercentage(skp int) float64 {
	if skp <= 0 {
		return 0
	}
	if skp > skillCap {
		skp = skillCap
	}
	return (skillRatio / (1 - skillRatio) * (1 - math.Pow(skillRatio, float64(skp)))) / 100
}

// EHP is effective health against an average hit given the final skill
// points: defence reduces damage taken, agility dodges 90% of it.
func EHP(hp int, original stat.Point, class item.Class) int {
	def := SkillPointsToPercentage(original.F()) * 0.867
	agi := SkillPointsToPercentage(original.A()) * 0.951
	taken := 0.1*agi + (1-agi)*(1-def)
	return int(float64(hp) / taken / (2 - class.DefMult()))
}
