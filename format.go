package main

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"build-optimizer/internal/build"
)

var slotLabels = [build.Slots]string{"ring", "ring", "helmet", "chestplate", "leggings", "boots", "bracelet", "necklace"}

// shareOrder lists slots the way the builder shows them.
var shareOrder = [build.Slots]int{
	build.SlotHelmet, build.SlotChestplate, build.SlotLeggings, build.SlotBoots,
	build.SlotRing0, build.SlotRing1, build.SlotBracelet, build.SlotNecklace,
}

// FormatResult renders one build as readable text.
func FormatResult(r build.Result) string {
	var b strings.Builder
	st := r.Status

	fmt.Fprintf(&b, "%s\n", r.URL)
	fmt.Fprintf(&b, "weapon:     %s\n", r.Weapon)
	for _, slot := range shareOrder {
		fmt.Fprintf(&b, "%-11s %s\n", slotLabels[slot]+":", r.Items[slot])
	}
	b.WriteString("===================\n")
	fmt.Fprintf(&b, "assigned:   %s (%d)\n", st.SkillPoint.Assigned, st.SkillPoint.Assigned.Sum())
	fmt.Fprintf(&b, "original:   %s\n", st.SkillPoint.Original)
	fmt.Fprintf(&b, "hp / ehp:   %d / %d\n", st.MaxHP, st.MaxEHP)
	fmt.Fprintf(&b, "hpr:        %d\n", st.MaxHPR)
	fmt.Fprintf(&b, "defence:    %s\n", st.MaxDef)
	fmt.Fprintf(&b, "damage %%:   %s\n", st.MaxDamPct)
	fmt.Fprintf(&b, "stats:      %s\n", st.MaxStat)
	return b.String()
}

func printTable(w io.Writer, sum build.Summary) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "%-4s %8s %8s %8s  %s\n", "#", "Assigned", "EHP", "HP", "Helmet / Chestplate / Leggings / Boots")
	fmt.Fprintf(w, "%-4s %8s %8s %8s  %s\n", "----", "--------", "--------", "--------", "--------------------------------------")
	for i, r := range sum.Best {
		fmt.Fprintf(w, "%-4d %8d %8d %8d  %s\n", i+1,
			r.Status.SkillPoint.Assigned.Sum(), r.Status.MaxEHP, r.Status.MaxHP,
			strings.Join([]string{
				r.Items[build.SlotHelmet], r.Items[build.SlotChestplate],
				r.Items[build.SlotLeggings], r.Items[build.SlotBoots],
			}, " / "))
	}
	fmt.Fprintf(w, "%-4s %8s %8s %8s\n", "----", "--------", "--------", "--------")
	p.Fprintf(w, "evaluated %d of %d, feasible %d in %.1fs\n",
		sum.Evaluated, sum.Total, sum.Feasible, sum.Elapsed.Seconds())
}
