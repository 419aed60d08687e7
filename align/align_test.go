package align

import (
	"testing"

	"github.com/bebop/fmsw/alphabet"
	"github.com/bebop/fmsw/fmindex"
)

// buildRef builds a RefIndex over a raw ACGT reference string (no literal
// "$": the sentinel is implicit, the way spec.md's "ACGTACGT$" notation
// means "ACGTACGT plus the terminator", not a literal dollar byte).
func buildRef(t *testing.T, ref string) *fmindex.RefIndex {
	t.Helper()
	r, err := fmindex.BuildRef(alphabet.EncodeNt6(ref))
	if err != nil {
		t.Fatalf("BuildRef(%q): %v", ref, err)
	}
	return r
}

// S1: an exact match scores match*len and backtraces to a single run of
// CIGAR op 7 (spec.md §8 property 8, scenario S1).
func TestAlignExactMatch(t *testing.T) {
	fmi := buildRef(t, "ACGTACGT")
	var arena Arena
	opt := NewOptions()
	res, err := Align(&arena, opt, fmi, []byte("ACGT"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Score != 4 {
		t.Fatalf("Score = %d, want 4", res.Score)
	}
	if len(res.CIGAR) != 1 || res.CIGAR[0] != 4<<4|7 {
		t.Fatalf("CIGAR = %v, want [4<<4|7]", res.CIGAR)
	}
	if res.MLen != 4 || res.BLen != 4 {
		t.Fatalf("MLen=%d BLen=%d, want 4,4", res.MLen, res.BLen)
	}
	if res.Hi <= res.Lo {
		t.Fatalf("[lo,hi) empty: lo=%d hi=%d", res.Lo, res.Hi)
	}

	// Cross-check property 8 against the classic oracle rather than just
	// the hardcoded expectation above: for an exact substring, the beam
	// engine's score must agree with a textbook local-alignment score
	// computed independently of the DAWG/beam machinery.
	scoring := Scoring{Match: int(opt.Match), Mismatch: int(opt.Mismatch), GapPenalty: -int(opt.GapOpen + opt.GapExt)}
	if want := SmithWaterman("ACGTACGT", "ACGT", scoring); int(res.Score) != want {
		t.Fatalf("Align score %d disagrees with SmithWaterman oracle %d", res.Score, want)
	}
}

// S2: a single central mismatch scores 4*match - mismatch, which sits
// below the default min_sc but Align itself never filters on MinScore —
// that comparison is left to the caller (spec.md §8 scenario S2).
func TestAlignSingleMismatch(t *testing.T) {
	fmi := buildRef(t, "AAAAA")
	var arena Arena
	opt := NewOptions()
	res, err := Align(&arena, opt, fmi, []byte("AATAA"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Score != 1 {
		t.Fatalf("Score = %d, want 1", res.Score)
	}
	if res.Score >= opt.MinScore {
		t.Fatalf("Score %d unexpectedly meets MinScore %d", res.Score, opt.MinScore)
	}

	// Cross-check against NeedlemanWunsch: both query and reference are
	// the same length with no gap in the best alignment, so the global
	// and local scores coincide here.
	scoring := Scoring{Match: int(opt.Match), Mismatch: int(opt.Mismatch), GapPenalty: -int(opt.GapOpen + opt.GapExt)}
	if want := NeedlemanWunsch("AAAAA", "AATAA", scoring); int(res.Score) != want {
		t.Fatalf("Align score %d disagrees with NeedlemanWunsch oracle %d", res.Score, want)
	}
}

// S3: a single insertion costs exactly the gap open+ext, reducing the
// best score to 0 — an empty Result, not an error (spec.md §8 scenario S3).
func TestAlignInsertionScoresZero(t *testing.T) {
	fmi := buildRef(t, "ACGTACGT")
	var arena Arena
	res, err := Align(&arena, NewOptions(), fmi, []byte("ACGGT"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Score != 0 {
		t.Fatalf("Score = %d, want 0", res.Score)
	}
	if res.CIGAR != nil {
		t.Fatalf("CIGAR = %v, want nil for an empty result", res.CIGAR)
	}
}

// S4: a single reference-side deletion (an extra reference base the query
// skips) costs gap_open+gap_ext against the two matching flanks (spec.md
// §8 scenario S4).
func TestAlignDeletion(t *testing.T) {
	fmi := buildRef(t, "ACGTTACGT")
	var arena Arena
	res, err := Align(&arena, NewOptions(), fmi, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if res.Score != 4 {
		t.Fatalf("Score = %d, want 4", res.Score)
	}
	want := []uint32{4<<4 | 7, 1<<4 | 2, 4<<4 | 7}
	if len(res.CIGAR) != len(want) {
		t.Fatalf("CIGAR = %v, want %v", res.CIGAR, want)
	}
	for i := range want {
		if res.CIGAR[i] != want[i] {
			t.Fatalf("CIGAR = %v, want %v", res.CIGAR, want)
		}
	}
	if res.MLen != 8 || res.BLen != 9 {
		t.Fatalf("MLen=%d BLen=%d, want 8,9", res.MLen, res.BLen)
	}
}

// S5: the root row always holds exactly one cell, spanning the whole
// reference interval with H=0 (spec.md §8 scenario S5).
func TestAlignRootRow(t *testing.T) {
	fmi := buildRef(t, "ACGTACGT")
	var arena Arena
	if _, err := Align(&arena, NewOptions(), fmi, []byte("ACGT")); err != nil {
		t.Fatalf("Align: %v", err)
	}
	root := arena.rows[0]
	if len(root) != 1 {
		t.Fatalf("row[0] has %d cells, want 1", len(root))
	}
	if root[0].Lo != 0 || root[0].H != 0 {
		t.Fatalf("row[0][0] = %+v, want Lo=0 H=0", root[0])
	}
	acc := fmi.Acc()
	if root[0].Hi != int64(acc[6]) {
		t.Fatalf("row[0][0].Hi = %d, want %d", root[0].Hi, acc[6])
	}
}

// S6: any query built entirely from reference symbols finds some
// alignment scoring at least one match (spec.md §8 scenario S6).
func TestAlignFindsSomeAlignment(t *testing.T) {
	fmi := buildRef(t, "ACGTACGTACGT")
	var arena Arena
	for _, q := range []string{"A", "AC", "ACGT", "GTAC", "TACG"} {
		res, err := Align(&arena, NewOptions(), fmi, []byte(q))
		if err != nil {
			t.Fatalf("Align(%q): %v", q, err)
		}
		if res.Score < 1 {
			t.Fatalf("Align(%q).Score = %d, want >= 1 (match)", q, res.Score)
		}
	}
}

// Property 9: raising the mismatch penalty while holding match fixed never
// increases the best score the engine finds.
func TestAlignMismatchPenaltyMonotone(t *testing.T) {
	fmi := buildRef(t, "AAAAA")
	var arena Arena
	lo := NewOptions()
	hi := NewOptions()
	hi.Mismatch++

	loRes, err := Align(&arena, lo, fmi, []byte("AATAA"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	hiRes, err := Align(&arena, hi, fmi, []byte("AATAA"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	if hiRes.Score > loRes.Score {
		t.Fatalf("raising mismatch penalty increased score: %d -> %d", loRes.Score, hiRes.Score)
	}
}

// Property 7: running Align twice on the same input, each time with a
// fresh Arena, produces identical score and CIGAR/rseq output.
func TestBacktrackIdempotent(t *testing.T) {
	fmi := buildRef(t, "ACGTTACGT")
	var arena Arena
	opt := NewOptions()
	a, err := Align(&arena, opt, fmi, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}

	var arena2 Arena
	b, err := Align(&arena2, opt, fmi, []byte("ACGTACGT"))
	if err != nil {
		t.Fatalf("Align: %v", err)
	}

	if a.Score != b.Score || len(a.CIGAR) != len(b.CIGAR) {
		t.Fatalf("repeated Align diverged: %+v vs %+v", a, b)
	}
	for i := range a.CIGAR {
		if a.CIGAR[i] != b.CIGAR[i] {
			t.Fatalf("CIGAR[%d] diverged: %d vs %d", i, a.CIGAR[i], b.CIGAR[i])
		}
	}
	for i := range a.RSeq {
		if a.RSeq[i] != b.RSeq[i] {
			t.Fatalf("RSeq[%d] diverged: %d vs %d", i, a.RSeq[i], b.RSeq[i])
		}
	}
}
