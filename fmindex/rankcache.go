package fmindex

import (
	"container/list"
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// DefaultRankCacheSize is the default LRU capacity, matching
// align.Options.R2CacheSize's default.
const DefaultRankCacheSize = 65536

// RankCache wraps an Index with a least-recently-used cache keyed by the
// (lo,hi) interval passed to Rank2A. The SW engine revisits the same
// handful of reference intervals constantly while walking the DAWG's
// beam, so caching rank results — which is what the underlying Index
// would otherwise have to recompute, potentially touching disk for a
// large on-disk FM-index — is the single highest-value optimization
// available without changing the Index contract.
//
// There's no LRU implementation in the retrieved corpus to build on, and
// the standard library's container/list plus a map is the textbook way
// to build one in Go without reaching for an external cache library, so
// that's what this does.
type RankCache struct {
	inner    Index
	capacity int
	order    *list.List
	entries  map[uint64]*list.Element
}

type rankCacheItem struct {
	key      uint64
	clo, chi [6]int
}

// NewRankCache wraps inner with an LRU cache of the given capacity. A
// non-positive capacity falls back to DefaultRankCacheSize.
func NewRankCache(inner Index, capacity int) *RankCache {
	if capacity <= 0 {
		capacity = DefaultRankCacheSize
	}
	return &RankCache{
		inner:    inner,
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[uint64]*list.Element, capacity),
	}
}

func rankCacheKey(lo, hi int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(lo))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(hi))
	return murmur3.Sum64(buf[:])
}

// Acc implements Index by delegating to the wrapped index; the
// cumulative count table is cheap to recompute and not worth caching.
func (c *RankCache) Acc() [7]int { return c.inner.Acc() }

// Rank2A implements Index, serving from cache when lo,hi was seen before.
func (c *RankCache) Rank2A(lo, hi int) (clo, chi [6]int) {
	key := rankCacheKey(lo, hi)
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		item := el.Value.(*rankCacheItem)
		return item.clo, item.chi
	}

	clo, chi = c.inner.Rank2A(lo, hi)
	item := &rankCacheItem{key: key, clo: clo, chi: chi}
	el := c.order.PushFront(item)
	c.entries[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*rankCacheItem).key)
	}

	return clo, chi
}
