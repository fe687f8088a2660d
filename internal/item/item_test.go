package item

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"build-optimizer/internal/stat"
)

const fixture = "../../testdata/items.json"

func loadFixture(t *testing.T) *Database {
	t.Helper()
	db, err := LoadFile(fixture)
	require.NoError(t, err)
	return db
}

func TestRolls(t *testing.T) {
	in := []int{-10, 0, 10, 2}
	want := []int{-7, 0, 13, 3}
	for i, v := range in {
		assert.Equal(t, want[i], MaxRoll(v, false), "max %d", v)
	}
	assert.Equal(t, []int{-13, 0, 3, 1}, []int{MinRoll(-10, false), MinRoll(0, false), MinRoll(10, false), MinRoll(2, false)})
	assert.Equal(t, 10, MaxRoll(10, true))
	assert.Equal(t, -10, MinRoll(-10, true))
}

func TestParseTypes(t *testing.T) {
	assert.Equal(t, TypeChestplate, parseType("Chestplate"))
	assert.Equal(t, TypeUnknown, parseType("tome"))
	assert.True(t, TypeNecklace.IsApparel())
	assert.False(t, TypeNecklace.IsWeapon())
	assert.True(t, TypeRelik.IsWeapon())
	assert.Equal(t, ClassWand, classOf(TypeWand))
	assert.InDelta(t, 0.8, ClassWand.DefMult(), 1e-9)
	assert.InDelta(t, 0.6, ClassRelik.DefMult(), 1e-9)
	assert.Equal(t, Normal, parseAttackSpeed("NORMAL"))
	assert.InDelta(t, 2.05, Normal.SpeedMult(), 1e-9)
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("30-40")
	require.NoError(t, err)
	assert.Equal(t, Range{30, 40}, r)
	assert.InDelta(t, 35.0, r.Avg(), 1e-9)

	r, err = parseRange("")
	require.NoError(t, err)
	assert.Equal(t, Range{}, r)

	_, err = parseRange("30")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	db := loadFixture(t)
	assert.Equal(t, 2, db.Count(TypeHelmet))
	assert.Equal(t, 2, db.Count(TypeRing))
	assert.Equal(t, 2, db.Count(TypeWand))
	assert.Equal(t, 0, db.Count(TypeUnknown))

	helmets, err := db.Apparels(TypeHelmet, []string{"Aquamarine Cap"})
	require.NoError(t, err)
	aqua := helmets[0]
	assert.Equal(t, 256, aqua.ID)
	assert.Equal(t, 500, aqua.HP)
	assert.Equal(t, stat.NewPoint(0, 0, 20, 0, 0), aqua.Requirement())
	assert.Equal(t, stat.NewPoint(0, 0, 5, 0, 0), aqua.Bonus())
	assert.Equal(t, stat.NewPoint(0, 0, 60, -30, 0), aqua.Def)
	assert.Equal(t, 13, aqua.StatMax[stat.HPRRaw])
	assert.Equal(t, 3, aqua.StatMin[stat.HPRRaw])
	assert.Equal(t, 13, aqua.DefPctMax[stat.Water])
	assert.Equal(t, 13, aqua.DamPctMax[stat.DamWater])

	rings, err := db.Apparels(TypeRing, []string{"Diamond Ring"})
	require.NoError(t, err)
	assert.Equal(t, 130, rings[0].HPBonusMax)
	assert.Equal(t, 30, rings[0].HPBonusMin)

	necks, err := db.Apparels(TypeNecklace, []string{"Pearl Necklace"})
	require.NoError(t, err)
	assert.True(t, necks[0].FixID)
	assert.Equal(t, 30, necks[0].StatMax[stat.HPRRaw])
	assert.Equal(t, 30, necks[0].StatMin[stat.HPRRaw])
}

func TestWeapon(t *testing.T) {
	db := loadFixture(t)
	w, err := db.Weapon("Frost Wand")
	require.NoError(t, err)
	assert.Equal(t, 206, w.ID)
	assert.Equal(t, ClassWand, w.Class)
	assert.Equal(t, Normal, w.AttackSpeed)
	assert.Equal(t, Range{10, 20}, w.Damage[stat.DamNeutral])
	assert.Equal(t, Range{30, 40}, w.Damage[stat.DamWater])
	assert.Equal(t, stat.NewPoint(0, 0, 25, 0, 0), w.Requirement())
	assert.Equal(t, 5, w.StatMax[stat.MR])
	assert.Equal(t, 1, w.StatMin[stat.MR])

	_, err = db.Weapon("Excalibur")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestMissingItems(t *testing.T) {
	db := loadFixture(t)
	_, err := db.Apparels(TypeBoots, []string{"Ember Boots", "Nope", "Also Nope"})
	require.Error(t, err)

	var missing *MissingItemsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Nope", "Also Nope"}, missing.Names)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Contains(t, err.Error(), "boots")

	_, err = db.Apparels(TypeWand, []string{"Frost Wand"})
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse("{not json")
	assert.ErrorIs(t, err, ErrInvalidDatabase)

	_, err = Parse(`{"weapons": []}`)
	assert.ErrorIs(t, err, ErrInvalidDatabase)

	_, err = Parse(`{"items": [{"name": "Bent", "type": "bow", "nDam": "oops"}]}`)
	assert.Error(t, err)

	_, err = LoadFile("does/not/exist.json")
	assert.Error(t, err)
}
