// Command item-search lists the top apparels per type from an items
// database. The output lines can be pasted into the items section of a
// search config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"build-optimizer/internal/item"
)

const usage = `Usage: item-search [flags] <items.json>

Prints, per apparel type, the names of the best items as config-ready lines.

Flags:
`

// configKeys are the config.yaml item keys.
var configKeys = map[item.Type]string{
	item.TypeHelmet:     "helmets",
	item.TypeChestplate: "chest_plates",
	item.TypeLeggings:   "leggings",
	item.TypeBoots:      "boots",
	item.TypeRing:       "rings",
	item.TypeBracelet:   "bracelets",
	item.TypeNecklace:   "necklaces",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("item-search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	typ := fs.String("type", "", "Apparel type (helmet, chestplate, leggings, boots, ring, bracelet, necklace); empty lists all")
	limit := fs.Int("limit", 10, "Items kept per type")
	order := fs.String("order", "desc", "Sort order: asc or desc")
	sortBy := fs.String("sort", "", "Comma separated sort keys, earlier keys first: "+strings.Join(item.SortKeyNames(), ", "))
	minLvl := fs.Int("min-lvl", 1, "Minimum item level")
	maxLvl := fs.Int("max-lvl", 0, "Maximum item level, 0 for no limit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return 2
	}

	q, err := buildQuery(*typ, *order, *sortBy, *limit, *minLvl, *maxLvl)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	db, err := item.LoadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	found, err := db.Search(q)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	writeMatches(stdout, found)
	return 0
}

func buildQuery(typ, order, sortBy string, limit, minLvl, maxLvl int) (item.Query, error) {
	q := item.Query{Limit: limit, MinLevel: minLvl, MaxLevel: maxLvl}
	switch strings.ToLower(order) {
	case "asc":
	case "desc":
		q.Desc = true
	default:
		return item.Query{}, fmt.Errorf("order %q (supported: asc, desc)", order)
	}
	keys, err := item.ParseSortKeys(sortBy)
	if err != nil {
		return item.Query{}, err
	}
	if len(keys) == 0 {
		return item.Query{}, errors.New("-sort is required")
	}
	q.SortBy = keys
	if typ != "" {
		t, err := item.ParseApparelType(typ)
		if err != nil {
			return item.Query{}, err
		}
		q.Types = []item.Type{t}
	}
	return q, q.Validate()
}

func writeMatches(w io.Writer, found []item.Matches) {
	for _, m := range found {
		quoted := make([]string, len(m.Items))
		for i, n := range m.Names() {
			quoted[i] = strconv.Quote(n)
		}
		fmt.Fprintf(w, "%s: [%s]\n", configKeys[m.Type], strings.Join(quoted, ", "))
	}
}
