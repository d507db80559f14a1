package lz4

// putLen writes the continuation bytes for the length excess l above the
// token nibble value 15: one 0xff byte per full 255 and a terminal byte
// below 0xff, which may be zero. The caller must have verified the space,
// which encodedIntLen computes exactly.
func putLen(dst []byte, d, l int) int {
	for l >= 255 {
		dst[d] = 255
		d++
		l -= 255
	}
	dst[d] = byte(l)
	d++
	return d
}

// writeSeq serializes one sequence at dst[d:]: the token, the literal
// length extension, the literals, the little-endian offset and the match
// length extension. lit must hold exactly seq.LitLen bytes. It returns the
// new write position or a block error if the destination cannot hold the
// sequence followed by a worst-case terminator.
//
// An offset of zero or a match shorter than minMatch indicates a match
// finder bug, not a caller error.
func writeSeq(dst []byte, d int, lit []byte, seq Seq) (int, error) {
	if seq.Offset == 0 {
		panic("lz4: sequence with zero offset")
	}
	mlExcess := int(seq.MatchLen) - minMatch
	if mlExcess < 0 {
		panic("lz4: match shorter than minimum match length")
	}
	if seqLen(len(lit), mlExcess)+1+lastLiterals > len(dst)-d {
		return 0, blockError(
			"destination too small for sequence at %d", d)
	}

	litLen := len(lit)
	token := byte(min(litLen, runMask))<<mlBits |
		byte(min(mlExcess, mlMask))
	dst[d] = token
	d++
	if litLen >= runMask {
		d = putLen(dst, d, litLen-runMask)
	}
	d += copy(dst[d:], lit)
	_putLE16(dst[d:], uint16(seq.Offset))
	d += 2
	if mlExcess >= mlMask {
		d = putLen(dst, d, mlExcess-mlMask)
	}
	return d, nil
}

// writeLastLiterals writes the final literal-only sequence of a block,
// which omits the offset and match length fields. lit may be empty; the
// block then ends with a bare zero token.
func writeLastLiterals(dst []byte, d int, lit []byte) (int, error) {
	litLen := len(lit)
	if 1+encodedIntLen(litLen)+litLen > len(dst)-d {
		return 0, blockError(
			"destination too small for %d trailing literals",
			litLen)
	}
	dst[d] = byte(min(litLen, runMask)) << mlBits
	d++
	if litLen >= runMask {
		d = putLen(dst, d, litLen-runMask)
	}
	d += copy(dst[d:], lit)
	return d, nil
}
