package bwt

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// suffixArray builds the suffix array of seq with an implicit sentinel
// appended, length len(seq)+1. The sentinel sorts before every real
// symbol, so sa[0] is always the sentinel's own row and sa[i] == 0 marks
// the row whose suffix is the entire query — exactly the "primary" row
// Build needs.
//
// Queries handed to this package are a few hundred bases at most, so
// there's no call for a linear-time SA-IS construction here: this is the
// textbook prefix-doubling algorithm, O(n log^2 n) comparisons, rebuilding
// rank order a power-of-two prefix length at a time until ranks are
// unique.
func suffixArray(seq []uint8) []int32 {
	n := len(seq)
	m := n + 1

	sa := make([]int32, m)
	rank := make([]int32, m)
	next := make([]int32, m)
	for i := 0; i < m; i++ {
		sa[i] = int32(i)
		if i < n {
			rank[i] = int32(seq[i]) + 1 // leave 0 free for the sentinel
		}
	}

	keyAt := func(i, k int32) int32 {
		j := i + k
		if int(j) >= m {
			return -1
		}
		return rank[j]
	}

	for k := int32(1); k < int32(m); k *= 2 {
		slices.SortFunc(sa, func(a, b int32) int {
			if rank[a] != rank[b] {
				return cmp.Compare(rank[a], rank[b])
			}
			return cmp.Compare(keyAt(a, k), keyAt(b, k))
		})

		next[sa[0]] = 0
		for i := 1; i < m; i++ {
			prev, cur := sa[i-1], sa[i]
			same := rank[prev] == rank[cur] && keyAt(prev, k) == keyAt(cur, k)
			if same {
				next[cur] = next[prev]
			} else {
				next[cur] = next[prev] + 1
			}
		}
		copy(rank, next)

		if rank[sa[m-1]] == int32(m-1) {
			break
		}
	}

	return sa
}
