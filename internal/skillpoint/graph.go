package skillpoint

// DependencyMatrix is an adjacency matrix over the items of one set.
// m[x][y] means x depends on y: wearing y first can lower the cost of x.
type DependencyMatrix [][]bool

// dependsOn reports whether x depends on y. That holds when, on some axis, y
// grants a positive bonus and x either requires more than y there or takes
// points away there.
func dependsOn(x, y Equipment) bool {
	xr, xb := x.Requirement(), x.Bonus()
	yr, yb := y.Requirement(), y.Bonus()
	for i := range yb {
		if yb[i] > 0 && (yr[i] < xr[i] || xb[i] < 0) {
			return true
		}
	}
	return false
}

// BuildDependencyMatrix evaluates dependsOn for every ordered pair.
func BuildDependencyMatrix[E Equipment](items []E) DependencyMatrix {
	n := len(items)
	m := make(DependencyMatrix, n)
	for x := range m {
		m[x] = make([]bool, n)
		for y := range m[x] {
			if x != y {
				m[x][y] = dependsOn(items[x], items[y])
			}
		}
	}
	return m
}

// StronglyConnected partitions the graph with Tarjan's algorithm. Components
// come out in emission order, so a component is listed after every component
// it depends on. Isolated nodes are singleton components.
func StronglyConnected(m DependencyMatrix) [][]int {
	n := len(m)
	t := tarjan{
		m:       m,
		index:   make([]int, n),
		low:     make([]int, n),
		onStack: make([]bool, n),
	}
	for v := range t.index {
		t.index[v] = -1
	}
	for v := 0; v < n; v++ {
		if t.index[v] == -1 {
			t.connect(v)
		}
	}
	return t.sccs
}

type tarjan struct {
	m       DependencyMatrix
	next    int
	index   []int
	low     []int
	onStack []bool
	stack   []int
	sccs    [][]int
}

func (t *tarjan) connect(v int) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for w, edge := range t.m[v] {
		if !edge {
			continue
		}
		if t.index[w] == -1 {
			t.connect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] == t.index[v] {
		var scc []int
		for {
			w := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
