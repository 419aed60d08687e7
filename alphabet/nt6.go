// Package alphabet provides the nt6 encoding used across the BWT, DAWG,
// and FM-index packages: a six-symbol alphabet ($,A,C,G,T,N) with the
// sentinel fixed at code 0 so accumulated counts (L2/acc tables) can
// reserve row 0 for it.
package alphabet

// EncodeNt6 translates a DNA byte string into nt6 codes (1..4 for ACGT,
// 5 for anything else). It never fails: unrecognized bytes map to N,
// mirroring the permissive translation tables used by FM-index builders.
func EncodeNt6(seq string) []uint8 {
	codes := make([]uint8, len(seq))
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'a':
			codes[i] = 1
		case 'C', 'c':
			codes[i] = 2
		case 'G', 'g':
			codes[i] = 3
		case 'T', 't':
			codes[i] = 4
		default:
			codes[i] = 5
		}
	}
	return codes
}

// DecodeNt6 renders a single nt6 code back to its byte. align.Result.RSeq
// is left nt6-encoded (spec.md §3), so this is a convenience for callers
// that want to print a reference sequence rather than something the
// backtrace itself calls.
func DecodeNt6(code uint8) byte {
	const symbols = "$ACGTN"
	if int(code) >= len(symbols) {
		return 'N'
	}
	return symbols[code]
}
