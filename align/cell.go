package align

import "math"

// H_from / E_from / F_from values. bwa-sw.c marks these "don't change
// these values" since sw_backtrack_core packs them into a small state
// machine that relies on the exact numbering.
const (
	fromH uint8 = iota
	fromE
	fromF
)

const (
	fromOpen uint8 = iota
	fromExt
)

// noPos is the UINT32_MAX null sentinel for H_from_pos/E_from_pos.
const noPos = math.MaxUint32

// fUnset is F_from_off's 28-bit sentinel (spec.md §3, §9).
const fUnset = 0x0FFFFFFF

// cell is one beam-row entry (spec.md §3 "Beam row"). H/E/F are the three
// affine-gap layers; *_from / *_from_pos / F_from_off are the back-pointer
// fields the backtrace (C5) walks. Lo/Hi is the reference FM-index
// interval this cell has reached via backward extension.
type cell struct {
	H, E, F  int32
	HFrom    uint8
	EFrom    uint8
	FFrom    uint8
	FFromOff uint32
	HFromPos uint32
	EFromPos uint32
	Lo, Hi   int64

	// Seq is the candidate's insertion order within the row currently
	// being built. It breaks heap ties deterministically, standing in
	// for khash's bucket-iteration order, which the grounding source
	// relies on only for an arbitrary but stable tie-break.
	Seq int32
}

func newCell(lo, hi int64) cell {
	return cell{Lo: lo, Hi: hi, HFromPos: noPos, EFromPos: noPos, FFromOff: fUnset}
}

// encodePos and decodePos implement spec.md §9's "node*N+slot" back-pointer
// encoding, preserved bit for bit: it lets rows be reallocated without
// invalidating the positions stored in other rows' cells.
func encodePos(node, slot, nBest int) uint32 {
	return uint32(node*nBest + slot)
}

func decodePos(pos uint32, nBest int) (node, slot int) {
	return int(pos) / nBest, int(pos) % nBest
}
