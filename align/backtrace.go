package align

import (
	"github.com/bebop/fmsw/bwt"
	"github.com/bebop/fmsw/dawg"
)

// btPass accumulates one pass of the two-pass backtrace (spec.md §4.5):
// the first pass (lenOnly) only counts cigar/rlen/qlen so exact-size
// output buffers can be allocated; the second pass fills them.
type btPass struct {
	nCigar     int
	cigar      []uint32
	rseq       []uint8
	rlen, qlen int
}

// pushState appends one traceback step's CIGAR operator, coalescing runs
// of the same op, mirroring sw_push_state verbatim — including writing
// rseq[rlen] unconditionally even for insertion steps that don't advance
// rlen; that slot is simply overwritten by the next reference-consuming
// step, exactly as in the grounding source.
func pushState(lastOp, op, c int, st *btPass, lenOnly bool) {
	if !lenOnly {
		st.rseq[st.rlen] = uint8(c)
		if lastOp == op {
			st.cigar[len(st.cigar)-1] += 1 << 4
		} else {
			st.cigar = append(st.cigar, uint32(1)<<4|uint32(op))
		}
	} else if lastOp != op {
		st.nCigar++
	}
	switch op {
	case 7, 8:
		st.qlen++
		st.rlen++
	case 1:
		st.qlen++
	case 2:
		st.rlen++
	}
}

// backtrackCore walks H_from/E_from/F_from back-pointers from pos to the
// root, mirroring sw_backtrack_core's state machine: last remembers
// whether the previous hop is continuing an E-run or F-run, since
// E_from/F_from only distinguish OPEN (stop continuing) from EXT (keep
// continuing) on the layer's own originating cell.
//
// The resulting cigar/rseq are produced in traversal order, endpoint
// first. Every DAWG edge and every reference extension prepends a symbol,
// so walking from the endpoint toward the root visits the alignment left
// to right: the output is already in left-to-right reference order and is
// not reversed.
func backtrackCore(nBest int, acc [7]int, g *dawg.DAWG, rows [][]cell, pos uint32, st *btPass, lenOnly bool) {
	last := 0
	lastOp := -1
	st.nCigar, st.rlen, st.qlen = 0, 0, 0

	for pos > 0 {
		r, slot := decodePos(pos, nBest)
		p := &rows[r][slot]

		state := last
		if last == 0 {
			state = int(p.HFrom)
		}
		ext := false
		switch state {
		case 1:
			ext = p.EFrom == fromExt
		case 2:
			ext = p.FFrom == fromExt
		}

		c := 1
		for ; c < 7; c++ {
			if acc[c] > int(p.Lo) {
				break
			}
		}
		c--

		var op int
		switch state {
		case 0:
			if uint8(c) == g.Node[r].C {
				op = 7
			} else {
				op = 8
			}
			pos = p.HFromPos
		case 1:
			if p.E <= 0 || p.EFromPos == noPos {
				panic("align: backtrace found an E-cell with E<=0 or no E_from_pos")
			}
			op = 1
			pos = p.EFromPos
		case 2:
			if p.F <= 0 || p.FFromOff == fUnset {
				panic("align: backtrace found an F-cell with F<=0 or unresolved F_from_off")
			}
			op = 2
			pos = uint32(r*nBest) + p.FFromOff
		}

		pushState(lastOp, op, c, st, lenOnly)
		lastOp = op
		if (state == 1 || state == 2) && ext {
			last = state
		} else {
			last = 0
		}
	}
}

// backtrack runs the two-pass reconstruction and assembles Result. score
// and pos are the best H found and its (node,slot) position; score==0
// means no cell improved on the root (spec.md §7 "No-alignment"), and the
// backtrace is skipped entirely.
func backtrack(opt Options, acc [7]int, g *dawg.DAWG, q *bwt.BWT, rows [][]cell, pos uint32, score int32) (Result, error) {
	if score == 0 {
		return Result{}, nil
	}

	var st btPass
	backtrackCore(opt.NBest, acc, g, rows, pos, &st, true)
	st.rseq = make([]uint8, st.rlen)
	st.cigar = make([]uint32, 0, st.nCigar)
	backtrackCore(opt.NBest, acc, g, rows, pos, &st, false)

	var mlen, blen int32
	for _, op := range st.cigar {
		l := int32(op >> 4)
		blen += l
		if op&0xf == 7 {
			mlen += l
		}
	}

	node, slot := decodePos(pos, opt.NBest)
	endCell := rows[node][slot]
	nd := g.Node[node]
	qoff := make([]int32, nd.Hi-nd.Lo)
	for k := nd.Lo; k < nd.Hi; k++ {
		qoff[k-nd.Lo] = int32(q.SA(int(k)))
	}

	return Result{
		Score: score,
		RSeq:  st.rseq,
		CIGAR: st.cigar,
		MLen:  mlen,
		BLen:  blen,
		Lo:    endCell.Lo,
		Hi:    endCell.Hi,
		QOff:  qoff,
	}, nil
}
