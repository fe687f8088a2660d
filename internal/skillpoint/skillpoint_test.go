package skillpoint

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"build-optimizer/internal/stat"
)

type piece struct {
	name       string
	req, bonus stat.Point
}

func (p piece) Requirement() stat.Point { return p.req }
func (p piece) Bonus() stat.Point       { return p.bonus }

func TestCheck(t *testing.T) {
	assert.True(t, SkillPoints{
		Assigned: stat.NewPoint(0, 0, 0, 0, 0),
		Original: stat.NewPoint(100, 0, 0, 0, 0),
	}.Check(0))
	assert.False(t, SkillPoints{
		Assigned: stat.NewPoint(101, 0, 0, 0, 0),
	}.Check(200))
	assert.False(t, SkillPoints{
		Assigned: stat.NewPoint(101, 100, 0, 0, 0),
	}.Check(200))

	sp := SkillPoints{Assigned: stat.NewPoint(40, 40, 0, 0, 20)}
	assert.True(t, sp.Check(100))
	assert.False(t, sp.Check(99))
}

func TestAssign(t *testing.T) {
	sp := SkillPoints{
		Assigned: stat.NewPoint(100, 0, 0, 0, 0),
		Original: stat.NewPoint(100, 0, 100, 0, 0),
	}
	sp.Assign(stat.NewPoint(0, 5, 5, 0, 0))
	assert.Equal(t, SkillPoints{
		Assigned: stat.NewPoint(100, 5, 0, 0, 0),
		Original: stat.NewPoint(100, 5, 100, 0, 0),
	}, sp)
}

func TestAddWeapon(t *testing.T) {
	weapon := piece{
		req:   stat.NewPoint(10, 5, 0, 5, 0),
		bonus: stat.NewPoint(0, 0, 5, 5, 0),
	}
	sp := SkillPoints{
		Assigned: stat.NewPoint(0, 10, 0, 0, 0),
		Original: stat.NewPoint(0, 10, 0, 0, 0),
	}
	sp.AddWeapon(weapon)
	assert.Equal(t, SkillPoints{
		Assigned: stat.NewPoint(10, 10, 0, 5, 0),
		Original: stat.NewPoint(10, 10, 5, 10, 0),
	}, sp)
}

func gapFixture() []piece {
	return []piece{
		{req: stat.NewPoint(0, 0, 16, 0, 0), bonus: stat.NewPoint(0, 7, 10, 0, 5)},
		{req: stat.NewPoint(0, 7, 0, 0, 0), bonus: stat.NewPoint(5, 10, 10, 5, 5)},
		{req: stat.NewPoint(0, 0, 0, 0, 0), bonus: stat.NewPoint(5, 5, 5, 5, 5)},
		{req: stat.NewPoint(0, 5, 10, 0, 0), bonus: stat.NewPoint(5, 5, 10, 5, 5)},
		{req: stat.NewPoint(0, 0, 0, 0, 0), bonus: stat.NewPoint(5, 10, 10, 5, 10)},
		{req: stat.NewPoint(0, 0, 12, 0, 0), bonus: stat.NewPoint(0, 5, 5, 0, 5)},
		{req: stat.NewPoint(0, 0, 0, 0, 0), bonus: stat.NewPoint(5, 5, 5, 5, 5)},
		{req: stat.NewPoint(0, 0, 0, 0, 0), bonus: stat.NewPoint(5, 10, 10, 5, 5)},
	}
}

func TestFastGap(t *testing.T) {
	items := gapFixture()
	gap := FastGap(items)
	assert.Equal(t, stat.NewPoint(30, 50, 49, 30, 45), gap)
	assert.Equal(t, 0, -gap.OnlyNegative().Sum())
	assert.False(t, FastReject(items, 0))
}

func TestFastReject(t *testing.T) {
	items := []piece{
		{req: stat.NewPoint(40, 0, 0, 0, 0)},
		{req: stat.NewPoint(0, 30, 0, 0, 0), bonus: stat.NewPoint(10, 0, 0, 0, 0)},
	}
	// gap = [-30, -30, 0, 0, 0], shortfall 60
	assert.Equal(t, stat.NewPoint(-30, -30, 0, 0, 0), FastGap(items))
	assert.True(t, FastReject(items, 59))
	assert.False(t, FastReject(items, 60))

	sp, _ := SCCPutCalculate(items)
	assert.Equal(t, 60, sp.Assigned.Sum())
	assert.True(t, sp.Check(60))
}

func TestFastRejectKeepsFeasibleSets(t *testing.T) {
	cases := []struct {
		name   string
		item   piece
		budget int
	}{
		// nothing requires earth, so the drain costs nothing
		{"unrequired drain", piece{bonus: stat.NewPoint(-30, 0, 0, 0, 0)}, 0},
		// the drain is paid once by the fold, not on top of the requirement
		{"self drain", piece{req: stat.NewPoint(10, 0, 0, 0, 0), bonus: stat.NewPoint(-5, 0, 0, 0, 0)}, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items := []piece{c.item}
			sp, _ := SCCPutCalculate(items)
			require.True(t, sp.Check(c.budget), "assigned %s", sp.Assigned)
			assert.False(t, FastReject(items, c.budget))
		})
	}
}

func TestDependencyMatrix(t *testing.T) {
	items := []piece{
		{name: "booster", bonus: stat.NewPoint(10, 0, 0, 0, 0)},
		{name: "needy", req: stat.NewPoint(20, 0, 0, 0, 0), bonus: stat.NewPoint(-5, 0, 0, 0, 0)},
		{name: "plain"},
		{name: "drain", bonus: stat.NewPoint(-3, 0, 0, 0, 0)},
	}
	m := BuildDependencyMatrix(items)
	assert.Equal(t, DependencyMatrix{
		{false, false, false, false},
		{true, false, false, false},
		{false, false, false, false},
		{true, false, false, false},
	}, m)
}

func TestStronglyConnected(t *testing.T) {
	// 0 <-> 1, 1 -> 2, 3 -> 0, 4 alone
	m := DependencyMatrix{
		{false, true, false, false, false},
		{true, false, true, false, false},
		{false, false, false, false, false},
		{true, false, false, false, false},
		{false, false, false, false, false},
	}
	assert.Equal(t, [][]int{{2}, {1, 0}, {3}, {4}}, StronglyConnected(m))
}

func TestStronglyConnectedDependenciesFirst(t *testing.T) {
	// chain 0 -> 1 -> 2 -> 3: 3 has no dependencies and must come first
	m := DependencyMatrix{
		{false, true, false, false},
		{false, false, true, false},
		{false, false, false, true},
		{false, false, false, false},
	}
	assert.Equal(t, [][]int{{3}, {2}, {1}, {0}}, StronglyConnected(m))
}

func cycleFixture() []piece {
	return []piece{
		{name: "x", req: stat.NewPoint(0, 8, 0, 0, 0), bonus: stat.NewPoint(10, -5, 0, 0, 0)},
		{name: "y", req: stat.NewPoint(15, 0, 0, 0, 0), bonus: stat.NewPoint(0, 10, 0, 0, 0)},
		{name: "z", req: stat.NewPoint(0, 0, 20, 0, 0)},
	}
}

func TestSCCPutCalculate(t *testing.T) {
	items := cycleFixture()
	m := BuildDependencyMatrix(items)
	assert.True(t, m[0][1])
	assert.True(t, m[1][0])
	assert.Equal(t, [][]int{{1, 0}, {2}}, StronglyConnected(m))

	want := SkillPoints{
		Assigned: stat.NewPoint(5, 8, 20, 0, 0),
		Original: stat.NewPoint(15, 13, 20, 0, 0),
	}
	sp, order := SCCPutCalculate(items)
	assert.Equal(t, want, sp)
	require.Len(t, order, 3)
	assert.Equal(t, []string{"x", "y", "z"}, []string{order[0].name, order[1].name, order[2].name})

	full, _ := FullPutCalculate(items)
	assert.Equal(t, want, full)
}

func TestNegativeBonusSettle(t *testing.T) {
	items := []piece{
		{name: "needy", req: stat.NewPoint(20, 0, 0, 0, 0), bonus: stat.NewPoint(-5, 0, 0, 0, 0)},
		{name: "booster", bonus: stat.NewPoint(10, 0, 0, 0, 0)},
		{name: "plain"},
	}
	sp, order := SCCPutCalculate(items)
	assert.Equal(t, stat.NewPoint(10, 0, 0, 0, 0), sp.Assigned)
	assert.Equal(t, stat.NewPoint(15, 0, 0, 0, 0), sp.Original)
	assert.Equal(t, "booster", order[0].name)

	full, _ := FullPutCalculate(items)
	assert.Equal(t, sp.Assigned.Sum(), full.Assigned.Sum())
}

func TestSolveDispatch(t *testing.T) {
	items := cycleFixture()
	a, _ := Solve(items, SolverSCC)
	b, _ := Solve(items, SolverFull)
	assert.Equal(t, a, b)

	s, ok := ParseSolver("FULL")
	assert.True(t, ok)
	assert.Equal(t, SolverFull, s)
	_, ok = ParseSolver("greedy")
	assert.False(t, ok)
	assert.Equal(t, "scc", SolverSCC.String())
}

// randomSingleAxis builds items that each touch one axis with a
// non-negative bonus.
func randomSingleAxis(r *rand.Rand, n int) []piece {
	items := make([]piece, n)
	for i := range items {
		axis := r.IntN(stat.PointAxes)
		items[i].req[axis] = r.IntN(40)
		items[i].bonus[axis] = r.IntN(15)
	}
	return items
}

// randomMultiAxis builds items touching about half the axes each. When mixed
// is true, bonuses range over [-10, 10].
func randomMultiAxis(mixed bool) func(*rand.Rand, int) []piece {
	return func(r *rand.Rand, n int) []piece {
		items := make([]piece, n)
		for i := range items {
			for a := 0; a < stat.PointAxes; a++ {
				if r.IntN(2) == 0 {
					continue
				}
				items[i].req[a] = r.IntN(40)
				if mixed {
					items[i].bonus[a] = r.IntN(21) - 10
				} else {
					items[i].bonus[a] = r.IntN(15)
				}
			}
		}
		return items
	}
}

func TestSCCMatchesFull(t *testing.T) {
	t.Parallel()
	gens := []struct {
		name string
		gen  func(*rand.Rand, int) []piece
	}{
		{"single axis", randomSingleAxis},
		{"multi axis", randomMultiAxis(false)},
	}
	for _, g := range gens {
		r := rand.New(rand.NewPCG(11, 13))
		for round := 0; round < 300; round++ {
			items := g.gen(r, 2+r.IntN(5))
			scc, _ := SCCPutCalculate(items)
			full, _ := FullPutCalculate(items)
			require.Equal(t, full.Assigned.Sum(), scc.Assigned.Sum(), "%s round %d items %+v", g.name, round, items)
			require.False(t, FastReject(items, full.Assigned.Sum()), "%s round %d items %+v", g.name, round, items)
		}
	}
}

// With negative bonuses the component split can hide the optimum, so the SCC
// solver is only bounded below by the full search there.
func TestSCCMixedSignNeverBeatsFull(t *testing.T) {
	t.Parallel()
	gen := randomMultiAxis(true)
	r := rand.New(rand.NewPCG(17, 19))
	for round := 0; round < 300; round++ {
		items := gen(r, 2+r.IntN(5))
		scc, order := SCCPutCalculate(items)
		full, _ := FullPutCalculate(items)
		require.Len(t, order, len(items))
		require.GreaterOrEqual(t, scc.Assigned.Sum(), full.Assigned.Sum(), "round %d items %+v", round, items)
		require.False(t, FastReject(items, full.Assigned.Sum()), "round %d items %+v", round, items)
	}
}

func TestSCCAcrossComponents(t *testing.T) {
	// {a, c} form a cycle and b depends on it. Both orderings of the cycle
	// cost 55 on their own, but only c before a leaves enough earth for b.
	items := []piece{
		{name: "a", req: stat.NewPoint(0, 35, 0, 0, 0), bonus: stat.NewPoint(5, 0, 0, 0, 0)},
		{name: "b", req: stat.NewPoint(40, 0, 0, 0, 0)},
		{name: "c", req: stat.NewPoint(25, 25, 0, 0, 0), bonus: stat.NewPoint(0, 5, 0, 0, 0)},
	}
	assert.Equal(t, [][]int{{2, 0}, {1}}, StronglyConnected(BuildDependencyMatrix(items)))

	want := SkillPoints{
		Assigned: stat.NewPoint(35, 30, 0, 0, 0),
		Original: stat.NewPoint(40, 35, 0, 0, 0),
	}
	sp, order := SCCPutCalculate(items)
	assert.Equal(t, want, sp)
	require.Len(t, order, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{order[0].name, order[1].name, order[2].name})

	full, _ := FullPutCalculate(items)
	assert.Equal(t, want, full)
}

func TestFoldMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 8))
	for round := 0; round < 100; round++ {
		var f fold
		prev := f.sp
		nonNegative := true
		for i := 0; i < 8; i++ {
			var p piece
			for a := range p.req {
				p.req[a] = r.IntN(30)
				p.bonus[a] = r.IntN(21) - 10
				if p.bonus[a] < 0 {
					nonNegative = false
				}
			}
			f.put(p)
			require.False(t, f.sp.Assigned.AnyLess(prev.Assigned), "assigned decreased")
			if nonNegative {
				require.False(t, f.sp.Original.AnyLess(f.sp.Assigned), "original below assigned")
			}
			prev = f.sp
		}
	}
}
