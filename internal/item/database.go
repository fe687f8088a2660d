package item

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownItem is matched by every lookup failure.
var ErrUnknownItem = errors.New("unknown item")

// MissingItemsError lists every configured name that was not found for a type.
type MissingItemsError struct {
	Type  Type
	Names []string
}

func (e *MissingItemsError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Type, strings.Join(e.Names, ", "))
}

func (e *MissingItemsError) Unwrap() error { return ErrUnknownItem }

// Database holds parsed items grouped by type. It is read-only after Parse.
type Database struct {
	apparels [ApparelSlots][]*Apparel
	weapons  []*Weapon

	apparelByName [ApparelSlots]map[string]*Apparel
	weaponByName  map[string]*Weapon
}

func newDatabase() *Database {
	db := &Database{weaponByName: make(map[string]*Weapon)}
	for i := range db.apparelByName {
		db.apparelByName[i] = make(map[string]*Apparel)
	}
	return db
}

func (db *Database) addApparel(a *Apparel) {
	s := a.Type.slot()
	db.apparels[s] = append(db.apparels[s], a)
	if _, dup := db.apparelByName[s][a.Name]; !dup {
		db.apparelByName[s][a.Name] = a
	}
}

func (db *Database) addWeapon(w *Weapon) {
	db.weapons = append(db.weapons, w)
	if _, dup := db.weaponByName[w.Name]; !dup {
		db.weaponByName[w.Name] = w
	}
}

// Count returns the number of apparels of type t, or of weapons for any
// weapon type.
func (db *Database) Count(t Type) int {
	switch {
	case t.IsApparel():
		return len(db.apparels[t.slot()])
	case t.IsWeapon():
		return len(db.weapons)
	}
	return 0
}

// Apparels resolves names of type t in the given order. All missing names are
// reported together.
func (db *Database) Apparels(t Type, names []string) ([]*Apparel, error) {
	if !t.IsApparel() {
		return nil, fmt.Errorf("%s is not an apparel type", t)
	}
	out := make([]*Apparel, 0, len(names))
	var missing []string
	for _, n := range names {
		a, ok := db.apparelByName[t.slot()][n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		out = append(out, a)
	}
	if len(missing) > 0 {
		return nil, &MissingItemsError{Type: t, Names: missing}
	}
	return out, nil
}

// Weapon looks a weapon up by name.
func (db *Database) Weapon(name string) (*Weapon, error) {
	w, ok := db.weaponByName[name]
	if !ok {
		return nil, fmt.Errorf("weapon %q: %w", name, ErrUnknownItem)
	}
	return w, nil
}
