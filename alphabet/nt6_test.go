package alphabet_test

import (
	"testing"

	"github.com/bebop/fmsw/alphabet"
)

func TestEncodeNt6(t *testing.T) {
	got := alphabet.EncodeNt6("ACGTN-")
	want := []uint8{1, 2, 3, 4, 5, 5}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeNt6(t *testing.T) {
	for code, want := range map[uint8]byte{0: '$', 1: 'A', 2: 'C', 3: 'G', 4: 'T', 5: 'N'} {
		if got := alphabet.DecodeNt6(code); got != want {
			t.Errorf("DecodeNt6(%d) = %c, want %c", code, got, want)
		}
	}
}
