package lz4

import (
	"fmt"
)

// CompressorConfig configures a [Compressor]. The zero value selects the
// fast greedy parser.
type CompressorConfig struct {
	// HighCompression selects the hash-chain parser, which examines
	// multiple candidates per position.
	HighCompression bool
	// Level bounds the search depth of the hash-chain parser; range
	// [1,17], default 9. Higher levels examine more candidates and
	// never change correctness. Must be zero unless HighCompression is
	// set.
	Level int
}

// ApplyDefaults sets values that are zero to their default values.
func (cfg *CompressorConfig) ApplyDefaults() {
	if cfg.HighCompression && cfg.Level == 0 {
		cfg.Level = defaultLevel
	}
}

// Verify checks the config for correctness.
func (cfg *CompressorConfig) Verify() error {
	if !cfg.HighCompression {
		if cfg.Level != 0 {
			return fmt.Errorf(
				"%w: Level=%d requires HighCompression",
				ErrArgument, cfg.Level)
		}
		return nil
	}
	if !(minLevel <= cfg.Level && cfg.Level <= maxLevel) {
		return fmt.Errorf("%w: Level=%d; must be in range [%d,%d]",
			ErrArgument, cfg.Level, minLevel, maxLevel)
	}
	return nil
}

// NewCompressor creates a compressor for the configuration.
func (cfg CompressorConfig) NewCompressor() (*Compressor, error) {
	c := new(Compressor)
	if err := c.init(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Compressor compresses independent blocks and keeps its match-finder
// allocations across calls. A Compressor must not be used from multiple
// goroutines at the same time; distinct Compressor values are independent.
type Compressor struct {
	cfg   CompressorConfig
	depth int
	table []uint32
	chain chainTable
}

func (c *Compressor) init(cfg CompressorConfig) error {
	cfg.ApplyDefaults()
	if err := cfg.Verify(); err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.HighCompression {
		c.depth = 1 << (cfg.Level - 1)
		c.chain.init()
	} else {
		c.table = newTable(hashLog64K)
	}
	return nil
}

// Reset returns the compressor to the state directly after creation. The
// match-finder allocations are kept.
func (c *Compressor) Reset() {
	if c.cfg.HighCompression {
		c.chain.init()
	} else {
		clear(c.table)
	}
}

// Compress compresses src as one block into dst and returns the number of
// bytes written. The call either succeeds completely or returns an error;
// the contents of dst are unspecified on failure. Use
// [MaxCompressedLength] to size dst so that any input fits.
func (c *Compressor) Compress(src, dst []byte) (int, error) {
	if len(src) >= maxInputSize {
		return 0, fmt.Errorf(
			"%w: input length %d exceeds maximum %d",
			ErrArgument, len(src), maxInputSize-1)
	}
	if c.cfg.HighCompression {
		c.chain.init()
		return compressChain(src, dst, &c.chain, c.depth)
	}
	if c.table == nil {
		c.table = newTable(hashLog64K)
	}
	if len(src) < limit64K {
		t := c.table[:1<<hashLog64K]
		clear(t)
		return compressFast(src, dst, t, hashLog64K)
	}
	t := c.table[:1<<hashLog]
	clear(t)
	return compressFast(src, dst, t, hashLog)
}

// CompressBlock compresses src into dst with the fast greedy parser and
// returns the number of bytes written. For repeated calls a [Compressor]
// avoids the hash table allocation.
func CompressBlock(src, dst []byte) (int, error) {
	var c Compressor
	if err := c.init(CompressorConfig{}); err != nil {
		return 0, err
	}
	return c.Compress(src, dst)
}

// CompressBlockHC compresses src into dst with the hash-chain parser at
// the given level and returns the number of bytes written. Level 0 selects
// the default level 9.
func CompressBlockHC(src, dst []byte, level int) (int, error) {
	var c Compressor
	cfg := CompressorConfig{HighCompression: true, Level: level}
	if err := c.init(cfg); err != nil {
		return 0, err
	}
	return c.Compress(src, dst)
}

// compressFast is the greedy single-candidate parse. The table holds one
// position per bucket, stored as position+1. Matches are verified by
// comparing the 4-byte windows, extended forward with lcp and backward
// into the pending literal run with lcs. The parser accelerates through
// data that produces no matches by growing its step width every
// 1<<skipStrength misses.
func compressFast(src, dst []byte, table []uint32, hashBits uint) (int, error) {
	var err error
	sn := len(src)
	if sn < minLength {
		return writeLastLiterals(dst, 0, src)
	}

	shift := 32 - hashBits
	srcLimit := sn - lastLiterals
	mfLim := sn - mfLimit
	d, anchor := 0, 0
	s := anchor + 1

	for {
		// match search
		var m match
		miss := 1 << skipStrength
		for {
			if s > mfLim {
				return writeLastLiterals(dst, d, src[anchor:])
			}
			x := _getLE32(src[s:])
			h := hashValue(x, shift)
			cand := int(table[h]) - 1
			table[h] = uint32(s) + 1
			if cand >= 0 && s-cand < maxDistance &&
				_getLE32(src[cand:]) == x {
				m = match{start: s, ref: cand, n: minMatch}
				break
			}
			s += miss >> skipStrength
			miss++
		}

		m.n += lcp(src[m.ref+minMatch:srcLimit],
			src[m.start+minMatch:srcLimit])
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
		if s > mfLim {
			return writeLastLiterals(dst, d, src[anchor:])
		}
		// keep the table warm inside the copied match
		x := _getLE32(src[s-2:])
		table[hashValue(x, shift)] = uint32(s-2) + 1
	}
}
