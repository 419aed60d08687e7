package fmindex

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// suffixArray builds the suffix array of seq (nt6-encoded, symbols 0..5)
// with an implicit sentinel appended, length len(seq)+1, sorting before
// every real symbol. Same prefix-doubling technique as bwt/sais.go,
// generalized from the 4-symbol query alphabet to nt6; a reference
// handed to RefIndex in tests is small enough that the simplicity of
// prefix-doubling outweighs a linear-time construction.
func suffixArray(seq []uint8) []int32 {
	n := len(seq)
	m := n + 1

	sa := make([]int32, m)
	rank := make([]int32, m)
	next := make([]int32, m)
	for i := 0; i < m; i++ {
		sa[i] = int32(i)
		if i < n {
			rank[i] = int32(seq[i]) + 1
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
