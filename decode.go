// SPDX-FileCopyrightText: © 2026 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package lz4

// access abstracts the bounds discipline of the decoder. The checked
// variant verifies every read and write and makes the decoder reject
// malformed input; the trusted variant relies on the well-formedness
// guarantees of the caller and keeps the hot loop free of checks. Both run
// the same automaton in decodeBlock.
type access interface {
	// bounded reports whether the policy validates input and the
	// decoder must consume src exactly; otherwise the decoder stops
	// once dst is filled.
	bounded() bool
	srcOK(src []byte, s, n int) bool
	dstOK(dst []byte, d, n int) bool
}

type checked struct{}

func (checked) bounded() bool                   { return true }
func (checked) srcOK(src []byte, s, n int) bool { return n <= len(src)-s }
func (checked) dstOK(dst []byte, d, n int) bool { return n <= len(dst)-d }

type trusted struct{}

func (trusted) bounded() bool                   { return false }
func (trusted) srcOK(src []byte, s, n int) bool { return true }
func (trusted) dstOK(dst []byte, d, n int) bool { return true }

// readLen accumulates a length extension on top of the token nibble value:
// every 0xff continuation byte contributes 255 and a terminal byte below
// 0xff contributes its own value. The accumulated value is bounded by the
// format ceiling, so a run of continuation bytes cannot wrap the length
// into a small value that would defeat the bounds checks.
func readLen[A access](a A, src []byte, s, n int) (int, int, error) {
	for {
		if !a.srcOK(src, s, 1) {
			return 0, s, blockError(
				"length extension exceeds input at %d", s)
		}
		c := src[s]
		s++
		n += int(c)
		if n > maxInputSize {
			return 0, s, blockError("length overflow at %d", s)
		}
		if c < 255 {
			return n, s, nil
		}
	}
}

// copyMatch copies n match bytes from offset o behind the write head d.
// The ranges overlap whenever o < n, the classic self-referential
// run-length expansion, so the copy must proceed in increasing byte order.
func copyMatch(dst []byte, d, o, n int) {
	if o >= n {
		copy(dst[d:d+n], dst[d-o:])
		return
	}
	for i := 0; i < n; i++ {
		dst[d+i] = dst[d-o+i]
	}
}

// decodeBlock runs the sequence automaton: token, literal length
// extension, literals, offset, match length extension, match copy. With a
// bounded policy it terminates when src is exhausted behind a literal-only
// sequence; otherwise it terminates once dst has been filled by a literal
// copy, as the format requires a block to end with literals.
func decodeBlock[A access](a A, src, dst []byte) (s, d int, err error) {
	for {
		if !a.srcOK(src, s, 1) {
			return s, d, blockError("missing token at %d", s)
		}
		token := src[s]
		s++

		n := int(token >> mlBits)
		if n == runMask {
			n, s, err = readLen(a, src, s, n)
			if err != nil {
				return s, d, err
			}
		}
		if !a.srcOK(src, s, n) {
			return s, d, blockError(
				"literal run of %d bytes exceeds input", n)
		}
		if !a.dstOK(dst, d, n) {
			return s, d, blockError(
				"literal run of %d bytes exceeds output", n)
		}
		copy(dst[d:], src[s:s+n])
		s += n
		d += n

		if a.bounded() {
			if s == len(src) {
				if token&mlMask != 0 {
					return s, d, blockError(
						"match truncated after" +
							" final literal run")
				}
				return s, d, nil
			}
		} else if d == len(dst) {
			return s, d, nil
		}

		if !a.srcOK(src, s, 2) {
			return s, d, blockError("missing match offset at %d",
				s)
		}
		o := int(_getLE16(src[s:]))
		s += 2
		if a.bounded() && (o == 0 || o > d) {
			return s, d, blockError(
				"match offset %d invalid at output position %d",
				o, d)
		}

		n = int(token & mlMask)
		if n == mlMask {
			n, s, err = readLen(a, src, s, n)
			if err != nil {
				return s, d, err
			}
		}
		n += minMatch
		if !a.dstOK(dst, d, n) {
			return s, d, blockError(
				"match of %d bytes exceeds output", n)
		}
		copyMatch(dst, d, o, n)
		d += n
	}
}

// DecompressBlock decompresses the block src into dst and returns the
// number of bytes written. src must contain exactly one compressed block;
// dst must be large enough for the decompressed data and may be larger.
// Malformed input of any kind is reported as an error wrapping [ErrBlock],
// never as an out-of-bounds access. Use this variant for untrusted data.
func DecompressBlock(src, dst []byte) (int, error) {
	_, d, err := decodeBlock(checked{}, src, dst)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DecompressBlockFast decompresses src into dst, whose length must be the
// exact decompressed size, and returns the number of src bytes consumed.
// Input bytes after the decoded block are ignored. The input is trusted:
// a malformed block yields undefined output contents, but the function
// never reads or writes outside the provided buffers; where the trusting
// loop would overrun a buffer it returns an error instead.
func DecompressBlockFast(src, dst []byte) (n int, err error) {
	defer func() {
		if recover() != nil {
			n, err = 0, blockError("trusted decoder overrun")
		}
	}()
	s, _, err := decodeBlock(trusted{}, src, dst)
	if err != nil {
		return 0, err
	}
	return s, nil
}
