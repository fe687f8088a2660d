// Package combo enumerates the cartesian product of per-slot item pools in a
// random, memory-bounded order and fans the work out to a worker pool.
package combo

// Unrank decomposes a flat index into per-slot indices for the given radix
// (slot cardinalities). The last slot varies fastest.
//
// An index outside [0, product(radix)) is not an error: it wraps modulo the
// product, negative indices included, so the result always points at a valid
// tuple.
func Unrank(radix []int, index int) []int {
	dst := make([]int, len(radix))
	UnrankInto(dst, radix, index)
	return dst
}

// UnrankInto is Unrank writing into a caller-owned buffer of len(radix).
func UnrankInto(dst, radix []int, index int) {
	rem := index
	for i := len(radix) - 1; i >= 0; i-- {
		d := rem % radix[i]
		rem /= radix[i]
		if d < 0 {
			d += radix[i]
			rem--
		}
		dst[i] = d
	}
}

// Rank is the inverse of Unrank for in-range indices.
func Rank(radix, idx []int) int {
	flat := 0
	for i, r := range radix {
		flat = flat*r + idx[i]
	}
	return flat
}

// TotalCombinations returns the product of the pool sizes. It is 0 when there
// are no pools or any pool is empty.
func TotalCombinations[T any](pools [][]T) int {
	if len(pools) == 0 {
		return 0
	}
	total := 1
	for _, p := range pools {
		total *= len(p)
	}
	return total
}

func radixOf[T any](pools [][]T) []int {
	radix := make([]int, len(pools))
	for i, p := range pools {
		radix[i] = len(p)
	}
	return radix
}
