package build

import (
	"strings"

	"build-optimizer/internal/stat"
)

// buildVersion is the leading tag of the share code format.
const buildVersion = "8"

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+-"

// fromIntN renders the low 6*n bits of v as n base-64 digits, most
// significant first.
func fromIntN(v, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := n - 1; i >= 0; i-- {
		b.WriteByte(digits[(v>>(6*i))&0x3f])
	}
	return b.String()
}

// EncodeBuild renders the builder share code. ids are apparel ids in share
// order: helmet, chestplate, leggings, boots, ring, ring, bracelet, necklace.
func EncodeBuild(ids [Slots]int, level, weaponID int, points stat.Point) string {
	var b strings.Builder
	b.WriteString(buildVersion)
	b.WriteByte('_')
	for _, id := range ids {
		b.WriteString(fromIntN(id, 3))
	}
	b.WriteString(fromIntN(weaponID, 3))
	for _, p := range points {
		b.WriteString(fromIntN(p, 2))
	}
	b.WriteString(fromIntN(level, 2))
	return b.String()
}

// ShareIDs reorders the combination into share order.
func (c *Combination) ShareIDs() [Slots]int {
	return [Slots]int{
		c[SlotHelmet].ID, c[SlotChestplate].ID, c[SlotLeggings].ID, c[SlotBoots].ID,
		c[SlotRing0].ID, c[SlotRing1].ID, c[SlotBracelet].ID, c[SlotNecklace].ID,
	}
}
