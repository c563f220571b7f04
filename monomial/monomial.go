// Package monomial implements exponent vectors over a fixed number of
// variables: degree, a short divisibility mask, and a hash that is linear
// over exponent addition (hash(a*b) = hash(a) + hash(b)).
//
// Monomials are small, fixed-shape values and are passed by value; the
// hash tables in package hashtable are what give them a stable identity
// across a step.
package monomial

import "math/rand/v2"

// Exp is an exponent vector over nv variables. Callers must not mutate a
// shared Exp slice in place; Monomial values borrow their Exp slice and
// two Monomials may share backing storage after a copy-free construction.
type Exp []int32

// Mask is a bit-summary of variable support: bit i is set when Exp[i] > 0.
// Non-divisibility can be rejected in O(1) via (a.Mask &^ b.Mask) != 0,
// which is true whenever a has support on a variable b lacks — a cheap,
// sound, one-sided test (false positives are possible, false negatives are
// not), so a mask pass is always followed by the exact exponent check.
type Mask uint64

// Monomial is an interned exponent vector plus its cached degree, mask,
// and hash.
type Monomial struct {
	Exp  Exp
	Deg  int32
	Mask Mask
	Hash uint64
}

// Weights assigns one random 64-bit weight per variable; Hash(e) is the
// dot product of e with these weights, which makes hashing linear over
// monomial multiplication: Hash(a+b) = Hash(a) + Hash(b) (mod 2^64).
//
// Weights are derived from math/rand/v2 seeded explicitly by the caller,
// never from an unseeded source — Trace/Application determinism (spec
// property 3) depends on the same Weights producing the same hashes
// across runs of the same process configuration.
type Weights struct {
	nv int
	w  []uint64
}

// NewWeights builds random per-variable hash weights for nv variables,
// seeded deterministically from seed.
func NewWeights(nv int, seed uint64) *Weights {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	w := make([]uint64, nv)
	for i := range w {
		// Odd weights keep the hash sensitive to every exponent parity;
		// zero or even-heavy weights would collide more than necessary.
		w[i] = rng.Uint64() | 1
	}
	return &Weights{nv: nv, w: w}
}

// NumVars returns the number of variables these weights were built for.
func (w *Weights) NumVars() int { return w.nv }

// New builds a Monomial from an exponent vector, computing its degree,
// mask and hash. exp is retained, not copied.
func (w *Weights) New(exp Exp) Monomial {
	var deg int32
	var mask Mask
	var hash uint64
	for i, e := range exp {
		if e > 0 {
			deg += e
			mask |= 1 << uint(i%64)
			hash += uint64(e) * w.w[i]
		}
	}
	return Monomial{Exp: exp, Deg: deg, Mask: mask, Hash: hash}
}

// Identity returns the monomial 1 (all-zero exponent vector) for nv
// variables.
func (w *Weights) Identity() Monomial {
	return Monomial{Exp: make(Exp, w.nv)}
}

// Mul returns the product a*b: exponents add componentwise, and so do
// degree and hash; the mask is the bitwise OR of supports.
func Mul(a, b Monomial) Monomial {
	exp := make(Exp, len(a.Exp))
	for i := range exp {
		exp[i] = a.Exp[i] + b.Exp[i]
	}
	return Monomial{
		Exp:  exp,
		Deg:  a.Deg + b.Deg,
		Mask: a.Mask | b.Mask,
		Hash: a.Hash + b.Hash,
	}
}

// Lcm returns the least common multiple of a and b: the componentwise
// maximum of their exponents. Unlike Mul, this is not linear in the
// summed-hash sense; Lcm's hash must be recomputed from its exponents by
// the caller's Weights (lcm is not a product of a and b in general).
func Lcm(a, b Monomial, w *Weights) Monomial {
	exp := make(Exp, len(a.Exp))
	for i := range exp {
		if a.Exp[i] > b.Exp[i] {
			exp[i] = a.Exp[i]
		} else {
			exp[i] = b.Exp[i]
		}
	}
	return w.New(exp)
}

// Divides reports whether a divides b: every component of a's exponent is
// at most the matching component of b's. The mask check rejects most
// non-divisors in O(1) before the O(nv) exact check runs.
func Divides(a, b Monomial) bool {
	if a.Mask&^b.Mask != 0 {
		return false
	}
	for i := range a.Exp {
		if a.Exp[i] > b.Exp[i] {
			return false
		}
	}
	return true
}

// Quotient computes b/a as an exponent vector, assuming a divides b. If a
// does not divide b (the mask test has a false positive), ok is false and
// the returned slice must be discarded — this is the "reject if any
// component is negative" check from symbolic preprocessing.
func Quotient(a, b Monomial) (q Exp, ok bool) {
	q = make(Exp, len(a.Exp))
	for i := range q {
		d := b.Exp[i] - a.Exp[i]
		if d < 0 {
			return nil, false
		}
		q[i] = d
	}
	return q, true
}

// Less orders monomials by degree-reverse-lexicographic order (degrevlex):
// higher degree first; ties broken by the *last* variable with a
// differing exponent, preferring the smaller exponent there (the
// standard degrevlex tiebreak). Less(a, b) reports whether a sorts before
// b (a is "larger" in term-order conventions, i.e. a would be processed
// first as a potential lead monomial).
func Less(a, b Monomial) bool {
	if a.Deg != b.Deg {
		return a.Deg > b.Deg
	}
	for i := len(a.Exp) - 1; i >= 0; i-- {
		if a.Exp[i] != b.Exp[i] {
			return a.Exp[i] < b.Exp[i]
		}
	}
	return false
}
