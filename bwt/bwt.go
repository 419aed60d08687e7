/*
Package bwt builds a small, exact Burrows-Wheeler transform over a single
query sequence and answers rank queries against it.

This is deliberately not the general-purpose, disk-scale BWT one would
build over a whole reference genome. It exists to give the DAWG builder
(see package dawg) a BWT to walk: one per alignment call, built fresh over
a query a few hundred bases long, and thrown away when the call returns.
Because the query is small, there's no need for run-length compression or
a wavelet tree — a 2-bit-packed symbol array with counts checkpointed
every 16 positions is plenty fast and a lot easier to get right.

The alphabet is fixed at four symbols, A/C/G/T encoded 0..3, plus a
virtual sentinel that never actually appears in the packed array (its row
is recorded separately as Primary). Rank queries return, for a prefix
length k, how many of each of the four symbols appear in bwt[0:k].

With rank in hand, backward extension works the usual BWT way: extending
a suffix-array interval [lo,hi) on the left by symbol c gives
[L2[c]+rank(c,lo), L2[c]+rank(c,hi)). The DAWG builder uses exactly this
to enumerate the query's distinct substrings.
*/
package bwt

import "fmt"

// symbolCount is the size of the packed alphabet (A, C, G, T).
const symbolCount = 4

// symbolsPerWord is how many 2-bit symbols fit in one 32-bit word, packed
// high-order bits first.
const symbolsPerWord = 16

// checkpointPeriod is how often (in symbols) a running count snapshot is
// stored in occ.
const checkpointPeriod = 16

// BWT is the Burrows-Wheeler transform of a short query sequence, built
// once per alignment call and read-only thereafter.
type BWT struct {
	seqLen  int32    // n, the length of the original query
	bwt     []uint32 // packed BWT symbols, 16 per word, 2 bits each
	primary int32    // row at which $ would appear; excluded from bwt
	occ     []int32  // four running counts per checkpoint, every 16 positions
	sa      []int32  // suffix array of length n+1, sa[primary] == 0
	l2      [5]int32 // l2[0] = 1; l2[c] = 1 + cumulative count of symbols < c
}

// countTable maps a packed byte (four 2-bit symbols) to four 8-bit partial
// counts, one per symbol, packed into a uint32. Computed once at process
// start the same way a BWT rank table normally is: a 256-entry lookup
// avoids scanning bits one at a time during rank queries.
var countTable [256]uint32

func init() {
	for i := 0; i < 256; i++ {
		var x uint32
		for c := uint32(0); c < 4; c++ {
			var n uint32
			if uint32(i)&3 == c {
				n++
			}
			if uint32(i)>>2&3 == c {
				n++
			}
			if uint32(i)>>4&3 == c {
				n++
			}
			if uint32(i)>>6 == c {
				n++
			}
			x |= n << (c * 8)
		}
		countTable[i] = x
	}
}

// Build constructs the lightweight BWT of seq, symbols already encoded
// 0..3 (A,C,G,T). The spec treats non-ACGT query bytes as the caller's
// problem: this never validates, only rejects a genuinely empty query.
func Build(seq []uint8) (BWT, error) {
	n := len(seq)
	if n == 0 {
		return BWT{}, fmt.Errorf("bwt: cannot build over an empty sequence")
	}

	sa := suffixArray(seq) // length n+1, over seq with an implicit sentinel

	b := BWT{
		seqLen: int32(n),
		bwt:    make([]uint32, (n+symbolsPerWord-1)/symbolsPerWord),
		occ:    make([]int32, ((n+checkpointPeriod)/checkpointPeriod+1)*symbolCount),
		sa:     sa,
	}

	// s holds the packed BWT column: for every row except primary (whose
	// predecessor character is the sentinel, not a real symbol), the
	// character immediately before sa[i] in the cyclic query+$ string.
	s := make([]uint8, n)
	si := 0
	for i := 0; i <= n; i++ {
		if sa[i] == 0 {
			b.primary = int32(i)
			continue
		}
		s[si] = seq[(int(sa[i])-1+n)%n]
		si++
	}

	for i := 0; i < n; i++ {
		b.bwt[i/symbolsPerWord] |= uint32(s[i]) << uint((symbolsPerWord-1-i%symbolsPerWord)*2)
	}

	var counts [symbolCount]int32
	for i := 0; i < n; i++ {
		if i%checkpointPeriod == 0 {
			copy(b.occ[(i/checkpointPeriod)*symbolCount:], counts[:])
		}
		counts[s[i]]++
	}
	if n%checkpointPeriod == 0 {
		copy(b.occ[(n/checkpointPeriod)*symbolCount:], counts[:])
	}

	b.l2[0] = 1
	for c := 0; c < symbolCount; c++ {
		b.l2[c+1] = counts[c]
	}
	for c := 1; c <= symbolCount; c++ {
		b.l2[c] += b.l2[c-1]
	}

	return b, nil
}

// Len returns the length of the original query sequence.
func (b *BWT) Len() int { return int(b.seqLen) }

// SA returns the suffix-array row at position k, one of the n+1 rows of
// the query's (conceptual) BWT matrix. Used by the backtrace to translate
// a DAWG node's interval back into query offsets.
func (b *BWT) SA(k int) int { return int(b.sa[k]) }

// L2 returns the cumulative start-of-symbol table; L2()[c]..L2()[c+1) is
// the row range owned by 0-indexed symbol c.
func (b *BWT) L2() [5]int32 { return b.l2 }

// rank1 returns, for each of the four symbols, the count of that symbol
// among the rows of the BWT matrix preceding row k. k ranges over the full
// [0, n+1] row space of the n+1-row matrix (sa has n+1 rows); the row at
// primary is excluded from the count since its BWT symbol is the virtual
// sentinel, not one of the four real ones.
func (b *BWT) rank1(k int32) [symbolCount]int32 {
	// Convert the row index k into j, a position in the packed bwt array
	// (length n, one entry short of the n+1-row matrix because the
	// primary row was never packed).
	j := k
	if j > b.primary {
		j--
	}

	var cnt [symbolCount]int32
	base := (j >> 4) << 2
	copy(cnt[:], b.occ[base:base+symbolCount])

	remaining := j & 15
	if remaining == 0 {
		return cnt
	}

	word := b.bwt[j>>4]
	mask := word & (^uint32(0) << uint(32-remaining*2))
	x := countTable[mask&0xff] + countTable[mask>>8&0xff] +
		countTable[mask>>16&0xff] + countTable[mask>>24]
	cnt[0] += int32(x&0xff) - (symbolsPerWord - remaining)
	cnt[1] += int32(x >> 8 & 0xff)
	cnt[2] += int32(x >> 16 & 0xff)
	cnt[3] += int32(x >> 24)
	return cnt
}

// Rank2A returns the per-symbol occurrence counts of the BWT prefixes of
// length k and l. Kept as two rank calls bundled together, matching the
// FM-index's own Rank2A shape so the DAWG builder can walk the query BWT
// and the reference FM-index the same way.
func (b *BWT) Rank2A(k, l int) (cntk, cntl [symbolCount]int32) {
	return b.rank1(int32(k)), b.rank1(int32(l))
}
