package align

import (
	"io"

	"github.com/bebop/fmsw/dawg"
	"github.com/lunny/log"
)

// DebugFlags is the bit-flag debug surface spec.md §6 describes ("Debug
// surface (optional). Two bit-flags, DAWG and SW, write human-readable
// traces to a diagnostic stream"), matching bwa-sw.c's RB3_DBG_DAWG and
// RB3_DBG_SW. Not part of the compatibility contract: results are
// identical whether or not tracing is enabled.
type DebugFlags uint8

const (
	DebugDAWG DebugFlags = 1 << iota
	DebugSW
)

// debugSink writes the optional trace lines through a *log.Logger the
// same way bio/genbank/genbank.go logs parser diagnostics with
// github.com/lunny/log. A zero-value debugSink (flags==0 or w==nil)
// costs nothing beyond the flag check on every call.
type debugSink struct {
	flags DebugFlags
	log   *log.Logger
}

func newDebugSink(flags DebugFlags, w io.Writer) *debugSink {
	if flags == 0 || w == nil {
		return &debugSink{}
	}
	return &debugSink{flags: flags, log: log.New(w, "", 0)}
}

func (d *debugSink) logDAWG(g *dawg.DAWG) {
	if d == nil || d.log == nil || d.flags&DebugDAWG == 0 {
		return
	}
	for i, n := range g.Node {
		d.log.Printf("DAWG\t%d\t[%d,%d)\tc=%d\tpre=%v", i, n.Lo, n.Hi, n.C, n.Pre)
	}
}

func (d *debugSink) logRow(node int, n dawg.Node, row []cell) {
	if d == nil || d.log == nil || d.flags&DebugSW == 0 {
		return
	}
	scores := make([]int32, len(row))
	for i, c := range row {
		scores[i] = c.H
	}
	d.log.Printf("SW\t%d\t[%d,%d)\t%d\t%v", node, n.Lo, n.Hi, len(row), scores)
}
