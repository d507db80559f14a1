package lz4

// prime is the multiplier of the Fibonacci-style hash over a 4-byte
// little-endian window. Keeping the top bits after the multiplication gives
// a good bucket distribution for the small tables used here.
const prime = 0x9E3779B1

// hashValue hashes the 4-byte window x into a table with 32-shift index
// bits. The shift is unsigned, so no sign extension can leak into the
// bucket index.
func hashValue(x uint32, shift uint) uint32 {
	return (x * prime) >> shift
}

// newTable returns a hash table with one position slot per bucket. A slot
// stores position+1 so that the zero value means empty.
func newTable(hashBits uint) []uint32 {
	return make([]uint32, 1<<hashBits)
}
