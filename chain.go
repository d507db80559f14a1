package lz4

// chainTable is the match finder of the high-compression parser. head maps
// a hash bucket to the most recent position that produced it and chain
// links every position to the previous one with the same hash. The links
// are stored as 16-bit deltas in a ring over the 64 KiB window; a delta of
// zero terminates the chain. A slot of the ring is only overwritten once
// its position has left the window, so a chain walk that checks the window
// bound on every hop never follows a stale link.
type chainTable struct {
	head  []uint32
	chain []uint16
	// next position to insert; insert order must be strictly increasing
	next int
}

func (t *chainTable) init() {
	if t.head == nil {
		t.head = newTable(hashLogHC)
		t.chain = make([]uint16, maxDistance)
		return
	}
	clear(t.head)
	clear(t.chain)
	t.next = 0
}

// insert adds all positions in [t.next, end) to the chains. The caller
// must guarantee end+minMatch <= len(src).
func (t *chainTable) insert(src []byte, end int) {
	for ; t.next < end; t.next++ {
		pos := t.next
		x := _getLE32(src[pos:])
		h := hashValue(x, 32-hashLogHC)
		prev := int(t.head[h]) - 1
		t.head[h] = uint32(pos) + 1
		if prev >= 0 && pos-prev < maxDistance {
			t.chain[pos&(maxDistance-1)] = uint16(pos - prev)
		} else {
			t.chain[pos&(maxDistance-1)] = 0
		}
	}
}

// search walks the chain for the window at pos and returns the longest
// match found, verifying each candidate and extending it forward up to
// limit. It examines at most depth candidates. Among candidates of equal
// length the most recent one wins, which keeps the encoded offset small.
// The chain walk stops at the 64 KiB window bound.
func (t *chainTable) search(src []byte, pos, limit, depth int) (m match, ok bool) {
	x := _getLE32(src[pos:])
	h := hashValue(x, 32-hashLogHC)
	cand := int(t.head[h]) - 1
	for i := 0; i < depth; i++ {
		if cand < 0 || pos-cand >= maxDistance {
			break
		}
		if _getLE32(src[cand:]) == x {
			n := minMatch +
				lcp(src[cand+minMatch:limit],
					src[pos+minMatch:limit])
			if n > m.n {
				m = match{start: pos, ref: cand, n: n}
				ok = true
			}
		}
		delta := int(t.chain[cand&(maxDistance-1)])
		if delta == 0 {
			break
		}
		cand -= delta
	}
	return m, ok
}
