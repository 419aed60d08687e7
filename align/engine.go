package align

import (
	"github.com/bebop/fmsw/dawg"
	"github.com/bebop/fmsw/fmindex"
)

// engine carries the scratch structures sw_core threads through the
// per-node loop: the candidate set and top-N heap are cleared and reused
// for every DAWG node rather than reallocated, matching the original's
// single Kcalloc'd h/heap/fstack reused across the whole row loop.
type engine struct {
	opt  Options
	fmi  fmindex.Index
	g    *dawg.DAWG
	rows [][]cell
	cs   *candSet
	hp   *topHeap
}

// fillRow fills rows[node] with its top-N beam cells (spec.md §4.4 steps
// A-E). It reports false when the row ends up empty, signalling the
// caller to stop: no further node can improve (spec.md §4.4
// "Termination").
func (e *engine) fillRow(node int) bool {
	t := &e.g.Node[node]
	e.cs.clear()
	acc := e.fmi.Acc()

	// Step A — gather candidates from every predecessor's row.
	for _, pid := range t.Pre {
		predRow := e.rows[pid]
		for k := range predRow {
			p := &predRow[k]

			// E extension: query-side gap continues without consuming
			// the DAWG edge's symbol.
			r := newCell(p.Lo, p.Hi)
			if p.H-e.opt.GapOpen > p.E {
				r.EFrom, r.E = fromOpen, p.H-e.opt.GapOpen
			} else {
				r.EFrom, r.E = fromExt, p.E
			}
			r.E -= e.opt.GapExt
			if r.E > 0 {
				r.H = r.E
				r.HFrom = fromE
				r.EFromPos = encodePos(int(pid), k, e.opt.NBest)
				e.cs.update(&r)
			}

			// H extension: match/mismatch against the DAWG edge symbol,
			// descending the reference FM-index by every non-$ symbol.
			clo, chi := e.fmi.Rank2A(int(p.Lo), int(p.Hi))
			base := newCell(0, 0)
			base.HFrom = fromH
			base.HFromPos = encodePos(int(pid), k, e.opt.NBest)
			for c := 1; c < 6; c++ {
				sc := -e.opt.Mismatch
				if uint8(c) == t.C {
					sc = e.opt.Match
				}
				if p.H+sc <= 0 {
					continue
				}
				lo := int64(acc[c]) + int64(clo[c])
				hi := int64(acc[c]) + int64(chi[c])
				if lo == hi {
					continue
				}
				cand := base
				cand.Lo, cand.Hi = lo, hi
				cand.H = p.H + sc
				e.cs.update(&cand)
			}
		}
	}

	if e.cs.Len() == 0 {
		return false
	}

	// Step B — initial top-N prune, used only to seed the F-stack and
	// derive the "min" threshold; superseded by step D's rebuild.
	e.hp.reset(e.opt.NBest)
	for _, c := range e.cs.order {
		e.hp.insert(c.H, c.Seq, c)
	}
	snapshot := e.hp.sorted()

	// Step C — F layer: the reference-side (vertical) gap. The LIFO
	// fstack's correctness doesn't depend on push order (spec.md §5
	// "Ordering guarantees"), only on the monotone min threshold.
	var fstack []*cell
	for j := len(snapshot) - 1; j >= 0; j-- {
		if snapshot[j].H > e.opt.GapOpen+e.opt.GapExt {
			fstack = append(fstack, snapshot[j])
		}
	}
	for len(fstack) > 0 {
		z := fstack[len(fstack)-1]
		fstack = fstack[:len(fstack)-1]

		min := int32(0)
		if e.hp.full() {
			min = e.hp.min()
		}

		r := newCell(0, 0)
		if z.H-e.opt.GapOpen > z.F {
			r.FFrom, r.F = fromOpen, z.H-e.opt.GapOpen
		} else {
			r.FFrom, r.F = fromExt, z.F
		}
		r.F -= e.opt.GapExt
		r.H, r.HFrom = r.F, fromF
		if r.H <= min {
			continue
		}

		clo, chi := e.fmi.Rank2A(int(z.Lo), int(z.Hi))
		for c := 1; c < 6; c++ {
			lo := int64(acc[c]) + int64(clo[c])
			hi := int64(acc[c]) + int64(chi[c])
			if lo == hi {
				continue
			}
			cand := r
			cand.Lo, cand.Hi = lo, hi
			q := e.cs.update(&cand)
			e.hp.insert(q.H, q.Seq, q)
			if r.H-e.opt.GapExt > min {
				fstack = append(fstack, q)
			}
		}
	}

	// Step D — final top-N, re-heaped over the candidate set grown by
	// the F-closure.
	e.hp.reset(e.opt.NBest)
	for _, c := range e.cs.order {
		e.hp.insert(c.H, c.Seq, c)
	}
	final := e.hp.sorted()

	row := e.rows[node][:0]
	for _, c := range final {
		row = append(row, *c)
	}
	e.rows[node] = row

	// Step E — resolve F_from_off within the finished row.
	e.trackF(e.rows[node])

	return true
}

// trackF implements spec.md §4.4 step E, mirroring sw_track_F exactly,
// including its quirk: the loop only ever checks cells 0..len(row)-2,
// never len(row)-1, and a cell's F_from_off is judged resolved based on
// whatever earlier source indices have set by the time its own index is
// reached — not on the full sweep. This is replicated verbatim rather
// than "fixed", per spec.md §9's instruction for sw_update_candset's
// sibling quirk.
func (e *engine) trackF(row []cell) {
	nF := 0
	for j := range row {
		if row[j].F > 0 {
			nF++
		}
	}
	if nF == 0 {
		return
	}

	type key struct{ lo, hi int64 }
	idx := make(map[key]int, nF)
	for j := range row {
		if row[j].F == 0 {
			continue
		}
		idx[key{row[j].Lo, row[j].Hi}] = j
	}

	acc := e.fmi.Acc()
	for j := 0; j < len(row)-1; j++ {
		clo, chi := e.fmi.Rank2A(int(row[j].Lo), int(row[j].Hi))
		for c := 1; c < 6; c++ {
			lo := int64(acc[c]) + int64(clo[c])
			hi := int64(acc[c]) + int64(chi[c])
			if lo == hi {
				continue
			}
			if k, ok := idx[key{lo, hi}]; ok {
				row[k].FFromOff = uint32(j)
			}
		}
		if row[j].FFromOff == fUnset {
			if row[j].HFrom == fromF {
				panic("align: F-cell with H_from=F has an unresolved F_from_off")
			}
			row[j].F = 0
		}
	}
}
