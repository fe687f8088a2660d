package skillpoint

import (
	"slices"
	"strings"

	"build-optimizer/internal/combo"
)

// Solver selects the ordering search.
type Solver int

const (
	// SolverSCC permutes only inside dependency components.
	SolverSCC Solver = iota
	// SolverFull tries every ordering of the whole set.
	SolverFull
)

func (s Solver) String() string {
	switch s {
	case SolverFull:
		return "full"
	default:
		return "scc"
	}
}

// ParseSolver maps a config value to a Solver. ok is false for unknown names.
func ParseSolver(s string) (Solver, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scc":
		return SolverSCC, true
	case "full":
		return SolverFull, true
	}
	return SolverSCC, false
}

// Solve dispatches to the selected solver.
func Solve[E Equipment](items []E, s Solver) (SkillPoints, []E) {
	if s == SolverFull {
		return FullPutCalculate(items)
	}
	return SCCPutCalculate(items)
}

// FullPutCalculate tries all n! wearing orders and returns the cheapest state
// with its order. The first order found wins ties.
func FullPutCalculate[E Equipment](items []E) (SkillPoints, []E) {
	perm := make([]int, len(items))
	for i := range perm {
		perm[i] = i
	}

	var best fold
	bestSum := -1
	bestPerm := slices.Clone(perm)
	for {
		var f fold
		for _, i := range perm {
			f.put(items[i])
		}
		f.settle()
		if s := f.sp.Assigned.Sum(); bestSum < 0 || s < bestSum {
			best, bestSum = f, s
			copy(bestPerm, perm)
		}
		if !combo.NextPermutation(perm) {
			break
		}
	}
	return best.sp, pick(items, bestPerm)
}

// SCCPutCalculate splits the set into dependency components and lays them
// out in dependency order. Only orderings inside each component are
// permuted, so the cost is the product of the component factorials rather
// than n!. Every combination of component orderings is folded to the end and
// the cheapest settled state wins; the first one found wins ties.
func SCCPutCalculate[E Equipment](items []E) (SkillPoints, []E) {
	sccs := StronglyConnected(BuildDependencyMatrix(items))
	for _, comp := range sccs {
		slices.Sort(comp)
	}

	s := sccSearch[E]{
		items:   items,
		comps:   sccs,
		order:   make([]int, 0, len(items)),
		bestSum: -1,
	}
	s.walk(0, fold{})
	return s.best.sp, pick(items, s.bestOrder)
}

type sccSearch[E Equipment] struct {
	items []E
	comps [][]int
	order []int

	best      fold
	bestSum   int
	bestOrder []int
}

// walk wears component k in each of its orderings on top of ctx and recurses
// into the next component.
func (s *sccSearch[E]) walk(k int, ctx fold) {
	if k == len(s.comps) {
		ctx.settle()
		if sum := ctx.sp.Assigned.Sum(); s.bestSum < 0 || sum < s.bestSum {
			s.best, s.bestSum = ctx, sum
			s.bestOrder = slices.Clone(s.order)
		}
		return
	}

	perm := slices.Clone(s.comps[k])
	for {
		f := ctx
		for _, i := range perm {
			f.put(s.items[i])
		}
		s.order = append(s.order, perm...)
		s.walk(k+1, f)
		s.order = s.order[:len(s.order)-len(perm)]
		if !combo.NextPermutation(perm) {
			break
		}
	}
}

func pick[E any](items []E, order []int) []E {
	out := make([]E, len(order))
	for i, j := range order {
		out[i] = items[j]
	}
	return out
}
