package item

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"build-optimizer/internal/stat"
)

// SortKey is an apparel property the query can order by.
type SortKey int

const (
	SortLevel SortKey = iota
	SortHP
	SortHPBonus // max roll
	SortHPRRaw  // max roll
	SortHPRPct  // max roll
	SortSPAdd   // total skill point bonus
	SortSPReq   // total skill point requirement
	SortSDRaw   // max roll
	SortSDPct   // max roll
	SortMR      // max roll
	SortSpd     // max roll
	SortLS      // max roll
	SortNeutralDam
	SortEarthDam
	SortThunderDam
	SortWaterDam
	SortFireDam
	SortAirDam
)

var sortKeyNames = [...]string{
	SortLevel:      "lvl",
	SortHP:         "hp",
	SortHPBonus:    "hpb",
	SortHPRRaw:     "hpr-raw",
	SortHPRPct:     "hpr-pct",
	SortSPAdd:      "sp-add",
	SortSPReq:      "sp-req",
	SortSDRaw:      "sd-raw",
	SortSDPct:      "sd-pct",
	SortMR:         "mr",
	SortSpd:        "spd",
	SortLS:         "ls",
	SortNeutralDam: "ndmg",
	SortEarthDam:   "edmg",
	SortThunderDam: "tdmg",
	SortWaterDam:   "wdmg",
	SortFireDam:    "fdmg",
	SortAirDam:     "admg",
}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "unknown"
	}
	return sortKeyNames[k]
}

// SortKeyNames lists the accepted sort key names in declaration order.
func SortKeyNames() []string { return slices.Clone(sortKeyNames[:]) }

// ParseSortKeys reads a comma separated key list such as "hp,lvl".
func ParseSortKeys(s string) ([]SortKey, error) {
	var keys []SortKey
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		i := slices.Index(sortKeyNames[:], f)
		if i < 0 {
			return nil, fmt.Errorf("unknown sort key %q (supported: %s)", f, strings.Join(sortKeyNames[:], ", "))
		}
		keys = append(keys, SortKey(i))
	}
	return keys, nil
}

// ParseApparelType maps an apparel type name to its Type.
func ParseApparelType(s string) (Type, error) {
	t := parseType(strings.TrimSpace(s))
	if !t.IsApparel() {
		return TypeUnknown, fmt.Errorf("unknown apparel type %q", s)
	}
	return t, nil
}

func (k SortKey) value(a *Apparel) int {
	switch k {
	case SortLevel:
		return a.Level
	case SortHP:
		return a.HP
	case SortHPBonus:
		return a.HPBonusMax
	case SortHPRRaw:
		return a.StatMax[stat.HPRRaw]
	case SortHPRPct:
		return a.StatMax[stat.HPRPct]
	case SortSPAdd:
		return a.Add.Sum()
	case SortSPReq:
		return a.Req.Sum()
	case SortSDRaw:
		return a.StatMax[stat.SDRaw]
	case SortSDPct:
		return a.StatMax[stat.SDPct]
	case SortMR:
		return a.StatMax[stat.MR]
	case SortSpd:
		return a.StatMax[stat.Spd]
	case SortLS:
		return a.StatMax[stat.LS]
	case SortNeutralDam, SortEarthDam, SortThunderDam, SortWaterDam, SortFireDam, SortAirDam:
		return a.DamPctMax[stat.DamNeutral+int(k-SortNeutralDam)]
	}
	return 0
}

// Query selects apparels by level, orders them and keeps the top of each type.
type Query struct {
	// Types restricts the result to these apparel types. Empty means all.
	Types []Type
	// MinLevel and MaxLevel bound the item level inclusively. A zero
	// MaxLevel leaves the upper end open.
	MinLevel, MaxLevel int
	// SortBy is applied key by key; later keys break ties of earlier ones.
	SortBy []SortKey
	// Desc reverses the combined ordering.
	Desc bool
	// Limit is the number of items kept per type.
	Limit int
}

// Validate checks the query bounds.
func (q Query) Validate() error {
	if q.Limit < 1 {
		return fmt.Errorf("query: limit must be >= 1, got %d", q.Limit)
	}
	if q.MaxLevel != 0 && q.MaxLevel < q.MinLevel {
		return fmt.Errorf("query: max level %d below min level %d", q.MaxLevel, q.MinLevel)
	}
	for _, t := range q.Types {
		if !t.IsApparel() {
			return fmt.Errorf("query: %s is not an apparel type", t)
		}
	}
	return nil
}

// Matches is the query result for one apparel type.
type Matches struct {
	Type  Type
	Items []*Apparel
}

// Search runs q against the database. Results come in slot order, one entry
// per selected type, and items that compare equal keep database order.
func (db *Database) Search(q Query) ([]Matches, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	types := q.Types
	if len(types) == 0 {
		for t := TypeHelmet; t <= TypeNecklace; t++ {
			types = append(types, t)
		}
	}
	var out []Matches
	for t := TypeHelmet; t <= TypeNecklace; t++ {
		if !slices.Contains(types, t) {
			continue
		}
		var items []*Apparel
		for _, a := range db.apparels[t.slot()] {
			if a.Level < q.MinLevel || (q.MaxLevel != 0 && a.Level > q.MaxLevel) {
				continue
			}
			items = append(items, a)
		}
		slices.SortStableFunc(items, func(a, b *Apparel) int {
			c := 0
			for _, k := range q.SortBy {
				if c = cmp.Compare(k.value(a), k.value(b)); c != 0 {
					break
				}
			}
			if q.Desc {
				return -c
			}
			return c
		})
		if len(items) > q.Limit {
			items = items[:q.Limit]
		}
		out = append(out, Matches{Type: t, Items: items})
	}
	return out, nil
}

// Names returns the item names in result order.
func (m Matches) Names() []string {
	names := make([]string, len(m.Items))
	for i, a := range m.Items {
		names[i] = a.Name
	}
	return names
}
