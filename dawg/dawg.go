/*
Package dawg builds the directed acyclic word graph (DAWG) of a query's
distinct substrings from the query's own BWT.

Two substrings of the query that reach the same BWT row interval are, by
definition, followed by exactly the same further extensions — so they can
share one DAWG node. This collapses what would otherwise be an O(n^2)
substring tree down to at most one node per distinct BWT interval ever
visited during backward extension, which for a query a few hundred bases
long is a small graph.

Construction is three passes over the query's BWT, all driven by backward
extension (the same [lo,hi) -> [L2[c]+rank(c,lo), L2[c]+rank(c,hi))
step bwt.BWT.Rank2A exists for):

  1. Count the in-degree of every interval reachable from the root
     (the whole-matrix interval [0, n+1), representing the empty
     substring).
  2. Walk again, assigning each interval a node id only once every
     predecessor edge into it has been seen — this produces a
     topological order without a separate sort.
  3. Walk a third time to fill in each node's predecessor list, now that
     every node has a stable id.
*/
package dawg

import "github.com/bebop/fmsw/bwt"

// Node is one node of the DAWG, identified by the half-open BWT row
// interval [Lo,Hi) it spans.
type Node struct {
	C   uint8   // nt6-encoded symbol (1..4) labeling the edge from a parent to this node; 0 for the root
	Lo  int32
	Hi  int32
	Pre []int32 // ids of predecessor nodes
}

// DAWG is the query's directed acyclic word graph. Node 0 is always the
// root, spanning the entire BWT matrix.
type DAWG struct {
	Node []Node
}

// NumNodes returns the number of DAWG nodes, used to pre-size the beam
// DP's per-node scratch rows.
func (g *DAWG) NumNodes() int { return len(g.Node) }

func key(lo, hi int32) uint64 {
	return uint64(uint32(lo))<<32 | uint64(uint32(hi))
}

type degCell struct {
	total, visit, id int32
}

// calcDeg computes, for every BWT interval reachable by backward
// extension from the root, how many distinct edges lead into it.
func calcDeg(q *bwt.BWT, n int32) map[uint64]*degCell {
	h := make(map[uint64]*degCell)
	l2 := q.L2()

	root := key(0, n+1)
	h[root] = &degCell{}
	stack := []uint64{root}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lo, hi := int32(x>>32), int32(uint32(x))

		rlo, rhi := q.Rank2A(int(lo), int(hi))
		for c := int32(3); c >= 0; c-- {
			clo, chi := l2[c]+rlo[c], l2[c]+rhi[c]
			if clo == chi {
				continue
			}
			k := key(clo, chi)
			cell, ok := h[k]
			if !ok {
				cell = &degCell{}
				h[k] = cell
				stack = append(stack, k)
			}
			cell.total++
		}
	}
	return h
}

// Build constructs the DAWG of q's distinct substrings.
func Build(q *bwt.BWT) *DAWG {
	n := int32(q.Len())
	l2 := q.L2()
	h := calcDeg(q, n)

	var totalPre int32
	for _, cell := range h {
		totalPre += cell.total
	}
	pre := make([]int32, totalPre)

	g := &DAWG{Node: make([]Node, len(h))}
	root := key(0, n+1)
	g.Node[0] = Node{Lo: 0, Hi: n + 1}

	var id, offPre int32
	id = 1
	stack := []uint64{root}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		lo, hi := int32(x>>32), int32(uint32(x))

		rlo, rhi := q.Rank2A(int(lo), int(hi))
		for c := int32(3); c >= 0; c-- {
			clo, chi := l2[c]+rlo[c], l2[c]+rhi[c]
			if clo == chi {
				continue
			}
			k := key(clo, chi)
			cell := h[k]
			cell.visit++
			if cell.visit == cell.total {
				cell.id = id
				g.Node[id] = Node{
					C:   uint8(c + 1), // +1 for nt6 encoding
					Lo:  clo,
					Hi:  chi,
					Pre: pre[offPre:offPre:offPre+cell.total],
				}
				offPre += cell.total
				id++
				stack = append(stack, k)
			}
		}
	}
	if id != int32(len(g.Node)) || offPre != totalPre {
		panic("dawg: topological pass produced an inconsistent node count")
	}

	for i := range g.Node {
		nd := &g.Node[i]
		rlo, rhi := q.Rank2A(int(nd.Lo), int(nd.Hi))
		for c := int32(0); c < 4; c++ {
			clo, chi := l2[c]+rlo[c], l2[c]+rhi[c]
			if clo == chi {
				continue
			}
			cell := h[key(clo, chi)]
			child := &g.Node[cell.id]
			child.Pre = append(child.Pre, int32(i))
		}
	}

	return g
}
