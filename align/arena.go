package align

// Arena holds the beam-row scratch storage reused across Align calls. It
// is the Go substitute for spec.md §5's kalloc-style scratch arena: one
// backing slice of cells, sub-sliced per DAWG node exactly the way
// sw_core's single Kcalloc block is sliced into row[i].a, with the
// garbage collector playing the role the original hands to an explicit
// free() (see SPEC_FULL.md §5 AMBIENT STACK).
type Arena struct {
	cells []cell
	rows  [][]cell
}

// Reset drops the Arena's contents without releasing its backing arrays,
// so the next Align call reusing this Arena can grow back into the same
// memory instead of allocating fresh.
func (a *Arena) Reset() {
	a.cells = a.cells[:0]
	a.rows = a.rows[:0]
}

// grow ensures the arena has exactly nBest*nNodes cells available, sliced
// into nNodes rows of capacity nBest each, reusing the backing array when
// it is already large enough.
func (a *Arena) grow(nBest, nNodes int) {
	need := nBest * nNodes
	if cap(a.cells) < need {
		a.cells = make([]cell, need)
	} else {
		a.cells = a.cells[:need]
	}
	if cap(a.rows) < nNodes {
		a.rows = make([][]cell, nNodes)
	} else {
		a.rows = a.rows[:nNodes]
	}
	for i := 0; i < nNodes; i++ {
		a.rows[i] = a.cells[i*nBest : i*nBest : i*nBest+nBest]
	}
}
