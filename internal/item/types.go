// Package item models wearable equipment and loads it from an hppeng-style
// items database.
package item

import "strings"

// Type is the equipment type as written in the database.
type Type int

const (
	TypeUnknown Type = iota
	// Apparel, in slot order
	TypeHelmet
	TypeChestplate
	TypeLeggings
	TypeBoots
	TypeRing
	TypeBracelet
	TypeNecklace
	// Weapons
	TypeWand
	TypeSpear
	TypeBow
	TypeDagger
	TypeRelik
)

// ApparelSlots is the number of distinct apparel types.
const ApparelSlots = 7

func parseType(s string) Type {
	switch strings.ToLower(s) {
	case "helmet":
		return TypeHelmet
	case "chestplate":
		return TypeChestplate
	case "leggings":
		return TypeLeggings
	case "boots":
		return TypeBoots
	case "ring":
		return TypeRing
	case "bracelet":
		return TypeBracelet
	case "necklace":
		return TypeNecklace
	case "wand":
		return TypeWand
	case "spear":
		return TypeSpear
	case "bow":
		return TypeBow
	case "dagger":
		return TypeDagger
	case "relik":
		return TypeRelik
	}
	return TypeUnknown
}

func (t Type) String() string {
	switch t {
	case TypeHelmet:
		return "helmet"
	case TypeChestplate:
		return "chestplate"
	case TypeLeggings:
		return "leggings"
	case TypeBoots:
		return "boots"
	case TypeRing:
		return "ring"
	case TypeBracelet:
		return "bracelet"
	case TypeNecklace:
		return "necklace"
	case TypeWand:
		return "wand"
	case TypeSpear:
		return "spear"
	case TypeBow:
		return "bow"
	case TypeDagger:
		return "dagger"
	case TypeRelik:
		return "relik"
	}
	return "unknown"
}

// IsApparel reports whether t is worn in an armour or accessory slot.
func (t Type) IsApparel() bool { return t >= TypeHelmet && t <= TypeNecklace }

// IsWeapon reports whether t is a weapon type.
func (t Type) IsWeapon() bool { return t >= TypeWand && t <= TypeRelik }

// slot maps an apparel type to its index in Database.apparels.
func (t Type) slot() int { return int(t - TypeHelmet) }

// Class is the character class that wields a weapon type.
type Class int

const (
	ClassRelik  Class = iota // shaman
	ClassBow                 // archer
	ClassWand                // mage
	ClassDagger              // assassin
	ClassSpear               // warrior
)

func classOf(t Type) Class {
	switch t {
	case TypeBow:
		return ClassBow
	case TypeWand:
		return ClassWand
	case TypeDagger:
		return ClassDagger
	case TypeSpear:
		return ClassSpear
	}
	return ClassRelik
}

// DefMult is the class defence multiplier used by the effective HP formula.
func (c Class) DefMult() float64 {
	switch c {
	case ClassBow:
		return 0.70
	case ClassWand:
		return 0.80
	case ClassDagger, ClassSpear:
		return 1.0
	}
	return 0.60
}

func (c Class) String() string {
	return [...]string{"relik", "bow", "wand", "dagger", "spear"}[c]
}

// AttackSpeed is a weapon's attack speed tier.
type AttackSpeed int

const (
	SuperSlow AttackSpeed = iota
	VerySlow
	Slow
	Normal
	Fast
	VeryFast
	SuperFast
)

func parseAttackSpeed(s string) AttackSpeed {
	switch strings.ToUpper(s) {
	case "VERY_SLOW":
		return VerySlow
	case "SLOW":
		return Slow
	case "NORMAL":
		return Normal
	case "FAST":
		return Fast
	case "VERY_FAST":
		return VeryFast
	case "SUPER_FAST":
		return SuperFast
	}
	return SuperSlow
}

// SpeedMult is the hits-per-second multiplier of the tier.
func (a AttackSpeed) SpeedMult() float64 {
	return [...]float64{0.51, 0.83, 1.5, 2.05, 2.5, 3.1, 4.3}[a]
}
