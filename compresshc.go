// SPDX-FileCopyrightText: © 2026 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package lz4

// compressChain is the high-compression parse over the chainTable. It
// behaves like the greedy parse but examines up to depth candidates per
// position and defers to the position one byte ahead while that yields a
// strictly longer match. The chains are fed with every position, including
// positions covered by emitted matches, so later positions can still
// reference them.
func compressChain(src, dst []byte, t *chainTable, depth int) (int, error) {
	var err error
	sn := len(src)
	if sn < minLength {
		return writeLastLiterals(dst, 0, src)
	}

	srcLimit := sn - lastLiterals
	mfLim := sn - mfLimit
	d, anchor := 0, 0

	for s := 1; s <= mfLim; {
		// the chains must not contain s itself while searching at s
		t.insert(src, s)
		m, ok := t.search(src, s, srcLimit, depth)
		if !ok {
			s++
			continue
		}

		// lazy step: a strictly longer match one byte ahead wins
		for m.start < mfLim {
			t.insert(src, m.start+1)
			m1, ok1 := t.search(src, m.start+1, srcLimit, depth)
			if !ok1 || m1.n <= m.n {
				break
			}
			m = m1
		}

		if k := lcs(src[:m.ref], src[anchor:m.start]); k > 0 {
			m = m.fix(-k)
		}

		d, err = writeSeq(dst, d, src[anchor:m.start], Seq{
			LitLen:   uint32(m.start - anchor),
			MatchLen: uint32(m.n),
			Offset:   uint32(m.start - m.ref),
		})
		if err != nil {
			return 0, err
		}
		s = m.end()
		anchor = s
	}
	return writeLastLiterals(dst, d, src[anchor:])
}
