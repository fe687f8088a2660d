package combo

// MultisetCombinations returns every non-decreasing k-tuple over [0, space),
// in lexicographic order. Used for slots that share a pool where order does
// not matter (the two ring slots).
func MultisetCombinations(space, k int) [][]int {
	var out [][]int
	if k <= 0 || space <= 0 {
		return out
	}
	cur := make([]int, k)
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < space; i++ {
			cur[pos] = i
			rec(pos+1, i)
		}
	}
	rec(0, 0)
	return out
}

// NextPermutation rearranges a into the next lexicographic permutation and
// reports whether one existed. Start from a sorted slice to visit all of them.
func NextPermutation(a []int) bool {
	if len(a) < 2 {
		return false
	}
	i := len(a) - 1
	for i > 0 && a[i-1] >= a[i] {
		i--
	}
	if i == 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i-1] {
		j--
	}
	a[i-1], a[j] = a[j], a[i-1]
	for l, r := i, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
