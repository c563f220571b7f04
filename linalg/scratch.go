package linalg

import (
	"math/bits"

	"github.com/kori-dev/f4gb/basis"
)

// scratch is one worker's reusable dense accumulator, sized to the
// matrix's column count and allocated once per worker, not per row. Each
// worker's accumulator is its own allocation; the workers' accumulators
// are not slices of one shared nthrds*ncols block. Which fields are live
// depends on path: Path17 and Path31 use dr alone; Path32 uses the split
// lo/hi pair.
type scratch struct {
	path Path
	red  Reductions
	// grouped enables the AVX2-eligible unrolled inner loop on the
	// 31-bit path. Decided once per worker; F4_NO_SIMD forces it off so
	// the scalar fallback is testable on any machine.
	grouped bool

	dr []int64 // Path17, Path31
	lo []uint64
	hi []uint64 // Path32: value at column c is hi[c]*2^64 + lo[c]

	candidates []int32 // reusable scratch for the current row's new-pivot candidates

	// mults/adds count multiplier applications and accumulator adds for
	// this worker; the dispatcher folds them into stats after the join.
	mults int64
	adds  int64
}

func newScratch(path Path, red Reductions, ncols int) *scratch {
	s := &scratch{path: path, red: red, grouped: AVX2Eligible && !NoSimdEnv()}
	switch path {
	case Path32:
		s.lo = make([]uint64, ncols)
		s.hi = make([]uint64, ncols)
	default:
		s.dr = make([]int64, ncols)
	}
	return s
}

// scatterInitial writes a row's coefficients into the accumulator at
// columns, overwriting whatever was there (every candidate column from a
// prior row was cleared before reuse, and every other column is already 0).
func (s *scratch) scatterInitial(columns []int32, cf []uint32) {
	switch s.path {
	case Path32:
		for j, c := range columns {
			s.lo[c] = uint64(cf[j])
			s.hi[c] = 0
		}
	default:
		for j, c := range columns {
			s.dr[c] = int64(cf[j])
		}
	}
}

// resetAll zeroes the whole accumulator. Used by the probabilistic path,
// whose block combinations touch a scattered, hard-to-track set of
// columns across many rows up front, unlike the exact path's single-row
// scatter where only that row's own columns need clearing.
func (s *scratch) resetAll() {
	switch s.path {
	case Path32:
		for i := range s.lo {
			s.lo[i] = 0
			s.hi[i] = 0
		}
	default:
		for i := range s.dr {
			s.dr[i] = 0
		}
	}
}

func (s *scratch) isZero(c int32) bool {
	switch s.path {
	case Path32:
		return s.lo[c] == 0 && s.hi[c] == 0
	default:
		return s.dr[c] == 0
	}
}

func (s *scratch) clear(c int32) {
	switch s.path {
	case Path32:
		s.lo[c] = 0
		s.hi[c] = 0
	default:
		s.dr[c] = 0
	}
}

// residue reduces the accumulator at column c modulo p, returning the
// value in [0, p), and writes that reduced value back so a later retry
// (after losing a CAS race) sees the already-normalized residue rather
// than the raw accumulator (spec §9 Q1).
func (s *scratch) residue(c int32, p uint32) uint32 {
	switch s.path {
	case Path17:
		// dr only ever grows by nonnegative products on this path (spec
		// §4.4: mul*cf < 2^34, ~2^29 accumulations fit before overflow),
		// so a plain nonnegative modulo is exact.
		v := uint32(s.dr[c] % int64(p))
		s.dr[c] = int64(v)
		return v
	case Path31:
		// dr stays in [0, 2p^2) by the subtract-then-correct discipline
		// in cancel; one conditional subtraction suffices here, but a
		// full modulo keeps this path correct even when called on a
		// freshly scattered (unreduced) coefficient.
		v := uint32(((s.dr[c] % int64(p)) + int64(p)) % int64(p))
		s.dr[c] = int64(v)
		return v
	default: // Path32
		hiMod := s.hi[c] % uint64(p)
		loMod := s.lo[c] % uint64(p)
		total := (hiMod*s.red.Red64 + loMod) % uint64(p)
		s.lo[c] = total
		s.hi[c] = 0
		return uint32(total)
	}
}

// cancel eliminates a nonzero residue v found at some column by adding
// that column's pivot row in, scaled so the column becomes exactly zero
// (spec §4.4). The prime-size regimes get there by different arithmetic:
// Path17 and Path32 add (p-v)*pivotRow, which lands the eliminated column
// at exactly p (the caller clears it explicitly afterward); Path31
// instead subtracts v*pivotRow directly, which lands it at exactly 0
// without help, using the subtract-then-correct discipline to keep the
// accumulator within [0, 2p^2) so products never overflow int64 (spec
// §4.4's 31-bit regime).
func (s *scratch) cancel(piv *NewPivot, v uint32, p uint32) {
	cols, cf := piv.Mons, piv.Cf
	s.mults += int64(len(cols))
	s.adds += int64(len(cols))
	switch s.path {
	case Path17:
		m := int64(p - v)
		for j, c := range cols {
			s.dr[c] += m * int64(cf[j])
		}
	case Path31:
		m := int64(v)
		pp := int64(p) * int64(p)
		if s.grouped {
			s.cancel31Grouped(piv, m, pp)
			return
		}
		for j, c := range cols {
			s.dr[c] -= m * int64(cf[j])
			s.dr[c] += (s.dr[c] >> 63) & pp
		}
	default: // Path32
		mul := p - v
		for j, c := range cols {
			prod := uint64(mul) * uint64(cf[j])
			lo, carry := bits.Add64(s.lo[c], prod, 0)
			s.lo[c] = lo
			s.hi[c] += carry
		}
	}
}

// cancel31Grouped is the AVX2-eligible inner loop of the 31-bit path:
// the pivot's Preloop remainder is peeled scalar, then basis.UnrollWidth
// columns go through one loop body per iteration, the same grouping the
// vectorized original uses for its 256-bit lanes. Observationally
// identical to the scalar loop in cancel.
func (s *scratch) cancel31Grouped(piv *NewPivot, m, pp int64) {
	cols, cf := piv.Mons, piv.Cf
	pre := int(piv.Preloop)
	for j := 0; j < pre; j++ {
		c := cols[j]
		s.dr[c] -= m * int64(cf[j])
		s.dr[c] += (s.dr[c] >> 63) & pp
	}
	for j := pre; j < len(cols); j += basis.UnrollWidth {
		c0, c1, c2, c3 := cols[j], cols[j+1], cols[j+2], cols[j+3]
		s.dr[c0] -= m * int64(cf[j])
		s.dr[c0] += (s.dr[c0] >> 63) & pp
		s.dr[c1] -= m * int64(cf[j+1])
		s.dr[c1] += (s.dr[c1] >> 63) & pp
		s.dr[c2] -= m * int64(cf[j+2])
		s.dr[c2] += (s.dr[c2] >> 63) & pp
		s.dr[c3] -= m * int64(cf[j+3])
		s.dr[c3] += (s.dr[c3] >> 63) & pp
	}
}

// accumulate adds mult*cf[j] into the accumulator at each of cols[j],
// for the probabilistic path's random linear combination of whole rows
// (spec §4.5) rather than cancellation of a single residue. mult is
// masked by the caller to keep products bounded, but a block sums many
// rows into the same columns, so Path17 and Path31 reduce the column
// modulo p after every added term, and Path32 folds the high limb back
// modulo p whenever a carry reaches it.
func (s *scratch) accumulate(cols []int32, cf []uint32, mult uint32, p uint32) {
	s.mults += int64(len(cols))
	s.adds += int64(len(cols))
	switch s.path {
	case Path32:
		for j, c := range cols {
			prod := uint64(mult) * uint64(cf[j])
			lo, carry := bits.Add64(s.lo[c], prod, 0)
			s.lo[c] = lo
			s.hi[c] += carry
			if s.hi[c] != 0 {
				hiMod := s.hi[c] % uint64(p)
				loMod := s.lo[c] % uint64(p)
				s.lo[c] = (hiMod*s.red.Red64 + loMod) % uint64(p)
				s.hi[c] = 0
			}
		}
	default: // Path17, Path31
		m := int64(mult)
		pp := int64(p)
		for j, c := range cols {
			s.dr[c] = (s.dr[c] + m*int64(cf[j])) % pp
		}
	}
}
