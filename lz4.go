// SPDX-FileCopyrightText: © 2026 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package lz4 implements the LZ4 block format. A block is a self-contained
// unit of compressed data consisting of LZ77 sequences: a run of literal
// bytes followed by a match that copies already decompressed data from a
// window of at most 64 KiB.
//
// The package provides two compressors and two decompressors. [CompressBlock]
// uses a greedy parser over a flat hash table and is fast.
// [CompressBlockHC] walks hash chains bounded by a level-dependent search
// depth and trades speed for a better compression ratio. [DecompressBlock]
// validates every read and write and reports malformed input as an error,
// which makes it the right choice for untrusted data. [DecompressBlockFast]
// trusts the caller to provide a well-formed block together with the exact
// decompressed size and omits the checks.
//
// A [Compressor] keeps its match-finder state across calls, which avoids the
// allocations of the one-shot functions. All functions are pure over the
// provided buffers; distinct Compressor values can be used in parallel.
package lz4

import (
	"errors"
	"fmt"
)

// Constants of the LZ4 block format. Matches are at least minMatch bytes
// long and their length is stored as the excess above minMatch. A block must
// end with a literal-only sequence covering at least the final lastLiterals
// bytes; no match may start within the final mfLimit bytes.
const (
	minMatch     = 4
	copyLength   = 8
	lastLiterals = 5
	mfLimit      = copyLength + minMatch
	minLength    = mfLimit + 1

	// maximum match distance addressable by the 16-bit offset field
	maxDistance = 1 << 16

	// hard ceiling of the format's length addressing
	maxInputSize = 0x7E000000

	// inputs below this limit use the 64K-specialized hash table
	limit64K = maxDistance + mfLimit - 1

	mlBits  = 4
	mlMask  = 1<<mlBits - 1
	runMask = 1<<(8-mlBits) - 1
)

// Hash table sizes for the three match finder variants.
const (
	hashLog    = 12
	hashLog64K = hashLog + 1
	hashLogHC  = 15
)

// skipStrength controls how quickly the fast parser accelerates through
// incompressible data.
const skipStrength = 6

// Compression levels of the high-compression parser.
const (
	minLevel     = 1
	maxLevel     = 17
	defaultLevel = 9
)

// ErrArgument reports an invalid caller-provided argument, for instance an
// input length at or above the format ceiling or a compression level outside
// [1,17]. It is raised before any buffer is touched.
var ErrArgument = errors.New("lz4: invalid argument")

// ErrBlock is the uniform format violation error. The safe decompressor
// wraps it with a reason for every malformed input condition and the
// compressors wrap it when the destination buffer proves too small.
var ErrBlock = errors.New("lz4: malformed block")

// blockError returns an error wrapping ErrBlock with a descriptive reason.
func blockError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBlock, fmt.Sprintf(format, args...))
}

// MaxCompressedLength returns a destination buffer size that is sufficient
// for compressing any input of n bytes, whether by the fast or the
// high-compression parser. It returns an error for negative n and for n at
// or above the format ceiling of 0x7E000000 bytes.
func MaxCompressedLength(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative input length %d",
			ErrArgument, n)
	}
	if n >= maxInputSize {
		return 0, fmt.Errorf(
			"%w: input length %d exceeds maximum %d",
			ErrArgument, n, maxInputSize-1)
	}
	return n + n/255 + 16, nil
}

// Seq describes a single LZ77 sequence: LitLen literal bytes followed by a
// match of MatchLen bytes at distance Offset from the write head. The final
// sequence of a block carries no match.
type Seq struct {
	LitLen   uint32
	MatchLen uint32
	Offset   uint32
}

// match is a candidate back reference produced by a match finder. The bytes
// src[start:start+n] equal src[ref:ref+n] and ref is always less than start.
type match struct {
	start int
	ref   int
	n     int
}

// end returns the source position directly behind the match.
func (m match) end() int { return m.start + m.n }

// fix returns a copy of the match with its start moved by correction bytes
// while the end position stays fixed. A negative correction extends the
// match backwards into the pending literal run.
func (m match) fix(correction int) match {
	m.start += correction
	m.ref += correction
	m.n -= correction
	return m
}

// encodedIntLen returns the number of continuation bytes the length encoding
// uses for v: none if v fits the token nibble, otherwise one byte per full
// 255 of the excess plus the terminal byte.
func encodedIntLen(v int) int {
	if v < runMask {
		return 0
	}
	return (v-runMask)/255 + 1
}

// seqLen returns the exact number of bytes the encoded sequence occupies:
// the token, the literal length extension, the literals themselves, the
// two-byte offset and the match length extension. mlExcess is the match
// length minus minMatch.
func seqLen(runLen, mlExcess int) int {
	return 1 + encodedIntLen(runLen) + runLen + 2 + encodedIntLen(mlExcess)
}
