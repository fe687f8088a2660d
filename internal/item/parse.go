package item

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"build-optimizer/internal/stat"
)

// ErrInvalidDatabase is returned for input that is not a JSON items database.
var ErrInvalidDatabase = errors.New("invalid items database")

// LoadFile reads and parses an items database from disk.
func LoadFile(path string) (*Database, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	db, err := Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return db, nil
}

// Parse reads {"items":[...]} in the hppeng camelCase layout. Entries with an
// unknown type (tomes, ingredients, ...) are skipped.
func Parse(dataJSON string) (*Database, error) {
	if !gjson.Valid(dataJSON) {
		return nil, ErrInvalidDatabase
	}
	items := gjson.Get(dataJSON, "items")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: missing items array", ErrInvalidDatabase)
	}

	db := newDatabase()
	var parseErr error
	items.ForEach(func(_, v gjson.Result) bool {
		t := parseType(v.Get("type").String())
		switch {
		case t.IsApparel():
			db.addApparel(toApparel(v, t))
		case t.IsWeapon():
			w, err := toWeapon(v, t)
			if err != nil {
				parseErr = fmt.Errorf("weapon %q: %w", v.Get("name").String(), err)
				return false
			}
			db.addWeapon(w)
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return db, nil
}

func intOf(v gjson.Result, key string) int { return int(v.Get(key).Int()) }

func readReq(v gjson.Result) stat.Point {
	return stat.NewPoint(intOf(v, "strReq"), intOf(v, "dexReq"), intOf(v, "intReq"), intOf(v, "defReq"), intOf(v, "agiReq"))
}

func readAdd(v gjson.Result) stat.Point {
	return stat.NewPoint(intOf(v, "str"), intOf(v, "dex"), intOf(v, "int"), intOf(v, "def"), intOf(v, "agi"))
}

func readDef(v gjson.Result) stat.Point {
	return stat.NewPoint(intOf(v, "eDef"), intOf(v, "tDef"), intOf(v, "wDef"), intOf(v, "fDef"), intOf(v, "aDef"))
}

func readDefPct(v gjson.Result) stat.Point {
	return stat.NewPoint(intOf(v, "eDefPct"), intOf(v, "tDefPct"), intOf(v, "wDefPct"), intOf(v, "fDefPct"), intOf(v, "aDefPct"))
}

func readDamPct(v gjson.Result) stat.Dam {
	return stat.NewDam(intOf(v, "nDamPct"), intOf(v, "eDamPct"), intOf(v, "tDamPct"), intOf(v, "wDamPct"), intOf(v, "fDamPct"), intOf(v, "aDamPct"))
}

func readCommon(v gjson.Result) stat.CommonStat {
	return stat.NewCommonStat(intOf(v, "hprRaw"), intOf(v, "hprPct"), intOf(v, "mr"), intOf(v, "ls"),
		intOf(v, "ms"), intOf(v, "spd"), intOf(v, "sdRaw"), intOf(v, "sdPct"))
}

func toApparel(v gjson.Result, t Type) *Apparel {
	fixed := v.Get("fixID").Bool()
	hpBonus := intOf(v, "hpBonus")
	defPct, damPct, common := readDefPct(v), readDamPct(v), readCommon(v)
	return &Apparel{
		ID:         intOf(v, "id"),
		Name:       v.Get("name").String(),
		Tier:       v.Get("tier").String(),
		Type:       t,
		Level:      intOf(v, "lvl"),
		HP:         intOf(v, "hp"),
		HPBonusMax: MaxRoll(hpBonus, fixed),
		HPBonusMin: MinRoll(hpBonus, fixed),
		Req:        readReq(v),
		Add:        readAdd(v),
		Def:        readDef(v),
		DefPctMax:  maxPoint(defPct, fixed),
		DefPctMin:  minPoint(defPct, fixed),
		DamPctMax:  maxDam(damPct, fixed),
		DamPctMin:  minDam(damPct, fixed),
		StatMax:    maxCommon(common, fixed),
		StatMin:    minCommon(common, fixed),
		FixID:      fixed,
	}
}

var damageKeys = [stat.DamAxes]string{"nDam", "eDam", "tDam", "wDam", "fDam", "aDam"}

func toWeapon(v gjson.Result, t Type) (*Weapon, error) {
	fixed := v.Get("fixID").Bool()
	hpBonus := intOf(v, "hpBonus")
	defPct, damPct, common := readDefPct(v), readDamPct(v), readCommon(v)
	w := &Weapon{
		ID:          intOf(v, "id"),
		Name:        v.Get("name").String(),
		Tier:        v.Get("tier").String(),
		Type:        t,
		Class:       classOf(t),
		Level:       intOf(v, "lvl"),
		AttackSpeed: parseAttackSpeed(v.Get("atkSpd").String()),
		HPBonusMax:  MaxRoll(hpBonus, fixed),
		HPBonusMin:  MinRoll(hpBonus, fixed),
		Req:         readReq(v),
		Add:         readAdd(v),
		DefPctMax:   maxPoint(defPct, fixed),
		DefPctMin:   minPoint(defPct, fixed),
		DamPctMax:   maxDam(damPct, fixed),
		DamPctMin:   minDam(damPct, fixed),
		// common ids on weapons always roll, even on fixed items
		StatMax: maxCommon(common, false),
		StatMin: minCommon(common, false),
		FixID:   fixed,
	}
	for i, key := range damageKeys {
		r, err := parseRange(v.Get(key).String())
		if err != nil {
			return nil, err
		}
		w.Damage[i] = r
	}
	return w, nil
}
