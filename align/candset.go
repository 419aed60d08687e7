package align

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// candSet deduplicates candidate cells by their (lo,hi) reference interval
// (spec.md §4.4 step A, §9 "Hash set keyed by interval"), mirroring
// bwa-sw.c's sw_candset_t: a hash set keyed on lo,hi alone, with bucket
// collisions resolved by exact equality. murmur3 supplies the bucket
// hash — the same non-cryptographic hash the teacher's mash package used
// for k-mer hashing (see DESIGN.md) — while the outer map and exact
// Lo/Hi comparison give collision safety identical to khash's.
type candSet struct {
	buckets map[uint64][]*cell
	order   []*cell
	seq     int32
}

func newCandSet() *candSet {
	return &candSet{buckets: make(map[uint64][]*cell)}
}

func candSetHash(lo, hi int64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(lo))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(hi))
	return murmur3.Sum64(buf[:])
}

// clear empties the set for reuse on the next DAWG node, mirroring
// sw_candset_clear's reuse of one hash table across the whole row loop.
func (s *candSet) clear() {
	for k := range s.buckets {
		delete(s.buckets, k)
	}
	s.order = s.order[:0]
	s.seq = 0
}

func (s *candSet) find(lo, hi int64) *cell {
	for _, c := range s.buckets[candSetHash(lo, hi)] {
		if c.Lo == lo && c.Hi == hi {
			return c
		}
	}
	return nil
}

// update inserts p or merges it into an existing candidate with the same
// (lo,hi), mirroring sw_update_candset verbatim — including the
// documented H_from_pos quirk: H_from_pos is only carried over when the
// replacing H came from the H layer. spec.md §9 flags this as an open
// question the source marks "TODO: is this correct" and instructs
// implementers to preserve rather than "fix"; see DESIGN.md.
func (s *candSet) update(p *cell) *cell {
	if q := s.find(p.Lo, p.Hi); q != nil {
		if q.E < p.E {
			q.E, q.EFrom, q.EFromPos = p.E, p.EFrom, p.EFromPos
		}
		if q.F < p.F {
			q.F, q.FFrom = p.F, p.FFrom // F_from_off is populated later, by trackF
		}
		if q.H < p.H {
			q.H, q.HFrom = p.H, p.HFrom
			if p.HFrom == fromH {
				q.HFromPos = p.HFromPos
			}
		}
		return q
	}

	cp := *p
	cp.Seq = s.seq
	s.seq++
	h := candSetHash(cp.Lo, cp.Hi)
	s.buckets[h] = append(s.buckets[h], &cp)
	s.order = append(s.order, &cp)
	return &cp
}

func (s *candSet) Len() int { return len(s.order) }
