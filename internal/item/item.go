package item

import (
	"fmt"
	"strconv"
	"strings"

	"build-optimizer/internal/stat"
)

// Apparel is an armour piece or accessory with its identification ranges
// already rolled to their bounds.
type Apparel struct {
	ID    int
	Name  string
	Tier  string
	Type  Type
	Level int

	HP         int
	HPBonusMax int
	HPBonusMin int

	Req stat.Point // skill point requirement
	Add stat.Point // skill point bonus
	Def stat.Point // elemental defence

	DefPctMax stat.Point
	DefPctMin stat.Point
	DamPctMax stat.Dam
	DamPctMin stat.Dam
	StatMax   stat.CommonStat
	StatMin   stat.CommonStat

	FixID bool
}

func (a *Apparel) Requirement() stat.Point { return a.Req }
func (a *Apparel) Bonus() stat.Point       { return a.Add }

// Range is a min-max damage roll.
type Range struct {
	Min, Max float64
}

func (r Range) Avg() float64 { return (r.Min + r.Max) / 2 }

// parseRange reads the "min-max" form. Empty input is the zero range.
func parseRange(s string) (Range, error) {
	if s == "" {
		return Range{}, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Range{}, fmt.Errorf("damage range %q: missing '-'", s)
	}
	mn, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return Range{}, fmt.Errorf("damage range %q: %w", s, err)
	}
	mx, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return Range{}, fmt.Errorf("damage range %q: %w", s, err)
	}
	return Range{Min: mn, Max: mx}, nil
}

// Weapon is a weapon. It is folded in after the apparel set.
type Weapon struct {
	ID    int
	Name  string
	Tier  string
	Type  Type
	Class Class
	Level int

	AttackSpeed AttackSpeed
	Damage      [stat.DamAxes]Range // neutral first

	HPBonusMax int
	HPBonusMin int

	Req stat.Point
	Add stat.Point

	DefPctMax stat.Point
	DefPctMin stat.Point
	DamPctMax stat.Dam
	DamPctMin stat.Dam
	StatMax   stat.CommonStat
	StatMin   stat.CommonStat

	FixID bool
}

func (w *Weapon) Requirement() stat.Point { return w.Req }
func (w *Weapon) Bonus() stat.Point       { return w.Add }
