package fmindex

import "testing"

func TestBuildRefRejectsEmptySequence(t *testing.T) {
	if _, err := BuildRef(nil); err == nil {
		t.Fatal("expected an error building an index over an empty reference")
	}
}

// TestBuildRefAC hand-verifies a two-symbol reference "AC" (nt6 codes
// 1,2): sorted suffixes of "AC$" are $, AC$, C$, giving sa=[2,0,1],
// primary row 1, and BWT column C,A once the primary row is excluded.
func TestBuildRefAC(t *testing.T) {
	r, err := BuildRef([]uint8{1, 2}) // A C
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.seqLen != 2 {
		t.Fatalf("seqLen = %d, want 2", r.seqLen)
	}
	if r.primary != 1 {
		t.Fatalf("primary = %d, want 1", r.primary)
	}

	wantAcc := [7]int{0, 1, 2, 3, 3, 3, 3}
	if r.Acc() != wantAcc {
		t.Errorf("Acc() = %v, want %v", r.Acc(), wantAcc)
	}

	clo, chi := r.Rank2A(0, 3)
	if clo != [6]int{0, 0, 0, 0, 0, 0} {
		t.Errorf("clo = %v, want all zero", clo)
	}
	if chi != [6]int{0, 1, 1, 0, 0, 0} {
		t.Errorf("chi = %v, want one A, one C", chi)
	}
}

func TestBuildRefLongerThanOneWord(t *testing.T) {
	seq := make([]uint8, 40)
	for i := range seq {
		seq[i] = uint8(1 + i%4) // cycle through A,C,G,T
	}
	r, err := BuildRef(seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, total := r.Rank2A(0, len(seq)+1)
	var sum int
	for _, c := range total {
		sum += c
	}
	if sum != len(seq) {
		t.Errorf("rank2a over the full range summed to %d, want %d", sum, len(seq))
	}
}
