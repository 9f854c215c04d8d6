package domain

import (
	"iter"
	"math"
	"math/bits"
)

// Compositions yields every ordered way to split total indivisible units over
// parts slots, in lexicographic order: the first slot counts up from zero and
// varies slowest. The yielded slice is reused between iterations; copy it to
// keep it.
func Compositions(total, parts int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if total < 0 || parts <= 0 {
			return
		}
		shares := make([]int, parts)
		var walk func(pos, remaining int) bool
		walk = func(pos, remaining int) bool {
			if pos == parts-1 {
				shares[pos] = remaining
				return yield(shares)
			}
			for s := 0; s <= remaining; s++ {
				shares[pos] = s
				if !walk(pos+1, remaining-s) {
					return false
				}
			}
			return true
		}
		walk(0, total)
	}
}

// CompositionCount returns C(total+parts-1, parts-1), saturating just above
// limit so callers can compare against a budget without overflow.
func CompositionCount(total, parts int, limit uint64) uint64 {
	if total < 0 || parts <= 0 {
		return 0
	}
	sat := limit
	if limit < math.MaxUint64 {
		sat++
	}
	n := uint64(total + parts - 1)
	k := uint64(parts - 1)
	if k > n-k {
		k = n - k
	}
	var c uint64 = 1
	for i := uint64(1); i <= k; i++ {
		// c*(n-k+i) is always divisible by i.
		hi, lo := bits.Mul64(c, n-k+i)
		if hi != 0 {
			return sat
		}
		c = lo / i
		if c > limit {
			return sat
		}
	}
	return c
}
