// Package basis holds the append-only Gröbner basis: rows (in the flat
// "pointer-as-header" shape of spec §9, expressed here as a plain struct
// rather than an offset-addressed buffer), their coefficient arrays, and
// the lead-monomial masks used by symbolic preprocessing's divisor search.
package basis

import (
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// Row is one polynomial row: a multiplier-free shape shared by basis rows
// and (until converted) matrix rows. Mons holds hash-table IDs before
// hash→column conversion and column indices afterward — both are int32,
// and which one a given Mons slice holds is determined by which phase of
// the pipeline currently owns the row, not by the type system.
//
// The field names mirror the fixed-prefix fields of the original flat
// encoding (BIndex, Mult, CoeffIdx, Preloop) as identifiers, not as byte
// offsets — see spec §9's "pointer-as-header trick" note.
type Row struct {
	// BIndex is the basis index of the generator this row was multiplied
	// from (trace bookkeeping only; -1 when not tracked).
	BIndex int32
	// Mult is the hash-table ID of the multiplier monomial applied to the
	// generator to produce this row (trace bookkeeping only).
	Mult hashtable.ID
	// CoeffIdx indexes into the owning coefficient-array store.
	CoeffIdx int32
	// Preloop is the unroll remainder: len(Mons) % unrollWidth, so
	// reduction loops can peel that many scalar iterations before the
	// unrolled loop body.
	Preloop int32
	// Mons is the row's monomial indices. Mons[0] is always the row's
	// lead (smallest column / largest monomial-order term).
	Mons []int32
}

// UnrollWidth is the loop-unroll factor used throughout package linalg's
// normalize/multiply/reduce inner loops (UNROLL in the original).
const UnrollWidth = 4

// NewRow builds a Row, computing Preloop from len(mons).
func NewRow(bIndex int32, mult hashtable.ID, coeffIdx int32, mons []int32) *Row {
	return &Row{
		BIndex:   bIndex,
		Mult:     mult,
		CoeffIdx: coeffIdx,
		Preloop:  int32(len(mons) % UnrollWidth),
		Mons:     mons,
	}
}

// Lead is the cached lead-monomial summary used for fast divisor
// rejection: a mask-based non-divisibility test before the exact
// exponent comparison (spec §4.2).
type Lead struct {
	RowIndex int32
	Mon      monomial.Monomial
}

// Basis is the append-only set of Gröbner basis rows.
type Basis struct {
	weights *monomial.Weights
	Rows    []*Row
	Cf32    [][]uint32
	Leads   []Lead
}

// New creates an empty Basis over the given hash weights.
func New(w *monomial.Weights) *Basis {
	return &Basis{weights: w}
}

// Len returns the number of rows currently in the basis.
func (b *Basis) Len() int { return len(b.Rows) }

// Append adds a new row with its coefficient array and lead monomial to
// the basis, returning the new row's index. Ownership of cf transfers to
// the basis (spec §3 "Lifecycles").
func (b *Basis) Append(row *Row, cf []uint32, leadMon monomial.Monomial) int32 {
	idx := int32(len(b.Rows))
	row.CoeffIdx = idx
	b.Rows = append(b.Rows, row)
	b.Cf32 = append(b.Cf32, cf)
	b.Leads = append(b.Leads, Lead{RowIndex: idx, Mon: leadMon})
	return idx
}

// FindDivisor searches the basis leads for a row whose lead divides m,
// scanning in insertion order and using the mask pre-filter (spec §4.2:
// "reject quickly when lm[i] & ~mask(m) is nonzero"). It returns the
// index of the first divisor found, the multiplier exponent (m / lead),
// and ok=false if no basis lead divides m. The lead cache carries the
// full monomials, so no hash-table resolution is needed here.
func (b *Basis) FindDivisor(m monomial.Monomial) (rowIdx int32, mult monomial.Exp, ok bool) {
	for _, lead := range b.Leads {
		if lead.Mon.Mask&^m.Mask != 0 {
			continue // quick mask-based reject
		}
		q, divides := monomial.Quotient(lead.Mon, m)
		if !divides {
			// mask test had a false positive; keep scanning.
			continue
		}
		return lead.RowIndex, q, true
	}
	return 0, nil, false
}

// Weights returns the hash weights shared with the basis's hash table.
func (b *Basis) Weights() *monomial.Weights { return b.weights }

// MultiplyRow multiplies basis row g by the monomial mult, interning every
// resulting term into dst (typically the symbolic hash table) and
// returning the new row. bht resolves g's own monomial IDs. The new row's
// coefficients are not copied: multiplying by a monomial only shifts
// exponents, so the row still borrows b.Cf32[gen.CoeffIdx] (spec §3).
func (b *Basis) MultiplyRow(bht, dst *hashtable.Table, g int32, mult monomial.Monomial) *Row {
	gen := b.Rows[g]
	mons := make([]int32, len(gen.Mons))
	for i, id := range gen.Mons {
		term := bht.Mon(hashtable.ID(id))
		product := monomial.Mul(mult, term)
		mons[i] = int32(dst.Insert(product.Exp))
	}
	return NewRow(g, 0, gen.CoeffIdx, mons)
}
