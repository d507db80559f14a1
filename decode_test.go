package lz4

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/exp/slices"
)

// scenarioBlock is a two-sequence block: 4 literals 0x77 with a match of 4
// bytes at offset 4, then 8 literals 0x66 and terminator bytes. It decodes
// to 8x 0x77 followed by 8x 0x66.
var scenarioBlock = []byte{
	0x40, 0x77, 0x77, 0x77, 0x77, 0x04, 0x00,
	0x80, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66,
	0x00, 0x00,
}

func TestDecodeScenario(t *testing.T) {
	want := append(bytes.Repeat([]byte{0x77}, 8),
		bytes.Repeat([]byte{0x66}, 8)...)

	dst := make([]byte, 16)
	n, err := DecompressBlockFast(scenarioBlock, dst)
	if err != nil {
		t.Fatalf("DecompressBlockFast error %s", err)
	}
	if n != 16 {
		t.Errorf("DecompressBlockFast consumed %d bytes; want 16", n)
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("DecompressBlockFast wrote %x; want %x", dst, want)
	}
}

func TestDecodeScenarioTruncated(t *testing.T) {
	// The first 7 bytes cover only the first sequence; both decoders
	// must report the missing remainder as a block error.
	src := scenarioBlock[:7]

	if _, err := DecompressBlock(src, make([]byte, 64)); !errors.Is(
		err, ErrBlock) {
		t.Errorf("DecompressBlock error %v; want ErrBlock", err)
	}
	if _, err := DecompressBlockFast(src, make([]byte, 16)); !errors.Is(
		err, ErrBlock) {
		t.Errorf("DecompressBlockFast error %v; want ErrBlock", err)
	}
}

func TestDecodeEmptyBlock(t *testing.T) {
	n, err := DecompressBlock([]byte{0x00}, nil)
	if err != nil {
		t.Fatalf("DecompressBlock error %s", err)
	}
	if n != 0 {
		t.Errorf("DecompressBlock wrote %d bytes; want 0", n)
	}

	if _, err = DecompressBlock(nil, nil); !errors.Is(err, ErrBlock) {
		t.Errorf("DecompressBlock(nil) error %v; want ErrBlock", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{"literals-exceed-input", []byte{0x50, 'a', 'b'}},
		{"bare-extension-token", []byte{0xf0}},
		{"unterminated-extension", []byte{0xf0, 0xff, 0xff}},
		{"no-terminator", []byte{0x40, 'a', 'b', 'c', 'd', 0x04, 0x00}},
		{"half-offset", []byte{0x40, 'a', 'b', 'c', 'd', 0x01}},
		{"zero-offset", []byte{0x40, 'a', 'b', 'c', 'd', 0x00, 0x00, 0x00}},
		{"offset-before-start", []byte{0x40, 'a', 'b', 'c', 'd', 0x05, 0x00, 0x00}},
		{"match-exceeds-output", []byte{0x4f, 'a', 'b', 'c', 'd', 0x04, 0x00, 0xff, 0xff, 0xff, 0x00, 0x00}},
	}
	dst := make([]byte, 64)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecompressBlock(tc.src, dst); !errors.Is(
				err, ErrBlock) {
				t.Errorf("DecompressBlock error %v;"+
					" want ErrBlock", err)
			}
		})
	}
}

// TestDecodeLengthOverflow feeds a literal length extension long enough to
// overflow a 32-bit accumulator. The safe decoder must reject it instead
// of wrapping into a small length.
func TestDecodeLengthOverflow(t *testing.T) {
	src := make([]byte, 9<<20)
	src[0] = 0xf0
	for i := 1; i < len(src); i++ {
		src[i] = 0xff
	}
	_, err := DecompressBlock(src, make([]byte, 1024))
	if !errors.Is(err, ErrBlock) {
		t.Fatalf("DecompressBlock error %v; want ErrBlock", err)
	}

	// The same stream on the match length side.
	src[0] = 0x4f
	copy(src[1:], []byte{'a', 'b', 'c', 'd', 0x04, 0x00})
	for i := 7; i < len(src); i++ {
		src[i] = 0xff
	}
	_, err = DecompressBlock(src, make([]byte, 1024))
	if !errors.Is(err, ErrBlock) {
		t.Fatalf("DecompressBlock error %v; want ErrBlock", err)
	}
}

func TestDecodeTerminatorWithMatchNibble(t *testing.T) {
	// Final token declares a match but the input ends after the
	// literals.
	src := []byte{0x41, 'a', 'b', 'c', 'd'}
	if _, err := DecompressBlock(src, make([]byte, 16)); !errors.Is(
		err, ErrBlock) {
		t.Errorf("DecompressBlock error %v; want ErrBlock", err)
	}
}

// TestDecodePrefillDeterminism decodes the same block into differently
// pre-initialized buffers; the written range and the counts must be
// identical.
func TestDecodePrefillDeterminism(t *testing.T) {
	p := append(bytes.Repeat([]byte("abcabcdabcde"), 300),
		"trailing literals"...)
	bound, _ := MaxCompressedLength(len(p))
	comp := make([]byte, bound)
	n, err := CompressBlock(p, comp)
	if err != nil {
		t.Fatalf("CompressBlock error %s", err)
	}
	comp = comp[:n]

	a := make([]byte, len(p)+13)
	b := make([]byte, len(p)+13)
	for i := range b {
		b[i] = 'x'
	}
	wa, err := DecompressBlock(comp, a)
	if err != nil {
		t.Fatalf("DecompressBlock error %s", err)
	}
	wb, err := DecompressBlock(comp, b)
	if err != nil {
		t.Fatalf("DecompressBlock error %s", err)
	}
	if wa != wb {
		t.Fatalf("safe decoder wrote %d and %d bytes", wa, wb)
	}
	if !slices.Equal(a[:wa], b[:wb]) {
		t.Fatalf("safe decoder output depends on buffer contents")
	}

	fa := make([]byte, len(p))
	fb := bytes.Repeat([]byte{0xee}, len(p))
	na, err := DecompressBlockFast(comp, fa)
	if err != nil {
		t.Fatalf("DecompressBlockFast error %s", err)
	}
	nb, err := DecompressBlockFast(comp, fb)
	if err != nil {
		t.Fatalf("DecompressBlockFast error %s", err)
	}
	if na != nb {
		t.Fatalf("fast decoder consumed %d and %d bytes", na, nb)
	}
	if !slices.Equal(fa, fb) {
		t.Fatalf("fast decoder output depends on buffer contents")
	}
}

// FuzzDecompressBlock feeds arbitrary bytes to the safe decoder. It must
// never panic and successful decodes must not depend on the previous
// contents of the destination.
func FuzzDecompressBlock(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add(scenarioBlock)
	f.Add([]byte{0x40, 'a', 'b', 'c', 'd', 0x04, 0x00})
	f.Add([]byte{0xf0, 0xff, 0x01})
	f.Fuzz(func(t *testing.T, src []byte) {
		a := make([]byte, 1024)
		b := bytes.Repeat([]byte{0x5a}, 1024)
		na, errA := DecompressBlock(src, a)
		nb, errB := DecompressBlock(src, b)
		if (errA == nil) != (errB == nil) {
			t.Fatalf("decoder errors diverge: %v vs %v",
				errA, errB)
		}
		if errA != nil {
			return
		}
		if na != nb {
			t.Fatalf("decoder wrote %d and %d bytes", na, nb)
		}
		if !slices.Equal(a[:na], b[:nb]) {
			t.Fatalf("decoder output depends on buffer contents")
		}
	})
}
