// Package linalg implements finite-field sparse/dense row reduction over a
// prime field, in the prime-size-aware variants the engine needs to avoid
// 64-bit overflow (spec §4.4–§4.6): a 17-bit path, a 31-bit path (with an
// AVX2-eligible inner loop when the CPU supports it), and a 32-bit path
// with a split 96-bit accumulator.
package linalg

// Path selects which overflow-safe accumulation scheme a prime requires.
type Path int8

const (
	// Path17 covers p < 2^17: mul*cf < 2^34, so roughly 2^29 terms can
	// accumulate into a signed int64 column before it must be reduced.
	Path17 Path = iota
	// Path31 covers p < 2^31: products reach 2^62; accumulation uses
	// subtract-then-correct to stay inside [0, 2p^2).
	Path31
	// Path32 covers p < 2^32, where p^2 itself exceeds 63 bits; the
	// accumulator is split into two 64-bit halves representing a 96-bit
	// value (spec §4.4).
	Path32
)

// SelectPath picks the overflow-safe path for a prime p.
func SelectPath(p uint32) Path {
	switch {
	case p < 1<<17:
		return Path17
	case p < 1<<31:
		return Path31
	default:
		return Path32
	}
}

// ModInverse returns a^-1 mod p via Fermat's little theorem (p prime):
// a^(p-2) mod p, by square-and-multiply.
func ModInverse(a, p uint32) uint32 {
	return powMod(a, p-2, p)
}

func powMod(base, exp, p uint32) uint32 {
	result := uint64(1)
	b := uint64(base) % uint64(p)
	e := exp
	for e > 0 {
		if e&1 == 1 {
			result = (result * b) % uint64(p)
		}
		b = (b * b) % uint64(p)
		e >>= 1
	}
	return uint32(result)
}

// RED64 and RED32 are the precomputed reduction constants 2^64 mod p and
// 2^32 mod p used by the 32-bit path's 96-bit accumulator recombination
// (spec §4.4).
type Reductions struct {
	Red64 uint64
	Red32 uint64
}

// NewReductions precomputes the 2^64 mod p and 2^32 mod p constants a
// Path32 reduction needs.
func NewReductions(p uint32) Reductions {
	pp := uint64(p)
	red32 := (uint64(1) << 32) % pp
	// 2^64 mod p = (2^32 mod p)^2 mod p.
	red64 := (red32 * red32) % pp
	return Reductions{Red64: red64, Red32: red32}
}
