// Package align implements the dual-index beam dynamic program (C4) and
// its backtrace (C5) at the core of a BWA-SW-style local aligner: walking
// a query's DAWG in topological order while simultaneously descending a
// reference FM-index, keeping per-node beams of the N best cells under an
// affine-gap model, then reconstructing a CIGAR from the winning cell.
package align

import (
	"fmt"
	"io"

	"github.com/bebop/fmsw/alphabet"
	"github.com/bebop/fmsw/bwt"
	"github.com/bebop/fmsw/dawg"
	"github.com/bebop/fmsw/fmindex"
)

// Result is the alignment result spec.md §3 describes. A Score of 0 means
// no cell improved on the root: a normal, empty result, not an error.
// Callers compare Score against Options.MinScore themselves.
type Result struct {
	Score int32
	RSeq  []uint8
	CIGAR []uint32
	MLen  int32
	BLen  int32
	Lo    int64
	Hi    int64
	QOff  []int32
}

// Align runs the engine described in spec.md §2's flow: build the query's
// lightweight BWT (C1), convert it to a DAWG (C2), fill one beam row per
// DAWG node in topological order through a reference-rank cache (C3, C4),
// and backtrace from the best cell (C5). arena holds reusable scratch
// storage; query is a raw ACGT byte string, translated internally the way
// bwa-sw.c's rb3_sw builds its own query BWT from a raw sequence.
func Align(arena *Arena, opts Options, fmi fmindex.Index, query []byte) (Result, error) {
	return AlignTrace(arena, opts, fmi, query, 0, nil)
}

// AlignTrace is Align with the debug trace surface (C8) enabled: when w is
// non-nil, DebugDAWG writes one line per DAWG node and DebugSW one line
// per finished beam row. Passing flags=0 is equivalent to Align.
func AlignTrace(arena *Arena, opts Options, fmi fmindex.Index, query []byte, flags DebugFlags, w io.Writer) (Result, error) {
	nt6 := alphabet.EncodeNt6(string(query))
	qseq := make([]uint8, len(nt6))
	for i, c := range nt6 {
		qseq[i] = c - 1 // bwt.Build wants the 4-symbol 0..3 alphabet
	}

	q, err := bwt.Build(qseq)
	if err != nil {
		return Result{}, fmt.Errorf("align: %w", err)
	}
	g := dawg.Build(&q)

	cache := fmindex.NewRankCache(fmi, opts.R2CacheSize)
	acc := cache.Acc()

	arena.grow(opts.NBest, g.NumNodes())
	rows := arena.rows
	rows[0] = rows[0][:1]
	rows[0][0] = cell{Lo: 0, Hi: int64(acc[6]), HFrom: fromH}

	dbg := newDebugSink(flags, w)
	dbg.logDAWG(g)

	e := &engine{
		opt:  opts,
		fmi:  cache,
		g:    g,
		rows: rows,
		cs:   newCandSet(),
		hp:   newTopHeap(opts.NBest),
	}

	var bestScore int32
	var bestPos uint32
	for i := 1; i < g.NumNodes(); i++ {
		if !e.fillRow(i) {
			break
		}
		dbg.logRow(i, g.Node[i], rows[i])
		if rows[i][0].H > bestScore {
			bestScore = rows[i][0].H
			bestPos = encodePos(i, 0, opts.NBest)
		}
	}

	return backtrack(opts, acc, g, &q, rows, bestPos, bestScore)
}
