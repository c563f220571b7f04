// Package symbolic grows the symbolic hash table until every monomial
// appearing in any selected row has a reducer if one exists in the
// basis (spec §4.2).
package symbolic

import (
	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// Reducer is a reducer row discovered during preprocessing, along with
// the basis generator and multiplier exponent it came from (for trace
// recording).
type Reducer struct {
	Gen  int32
	Mult monomial.Exp
	Row  *basis.Row
}

// Preprocess walks sht in append order. For every Absent entry it marks
// the entry Seen, searches the basis for a divisor of that monomial, and
// — on success — multiplies the divisor's row up to the monomial,
// interning any new terms into sht (which grows the very table being
// walked) and marking the monomial's entry Pivot.
//
// The loop re-reads sht.Len() every iteration rather than capturing it
// once: reducer rows found partway through the walk introduce monomials
// strictly smaller than their own lead under the term order, and the
// order is well-founded on finite supports, so new entries are
// eventually all either leads themselves or irreducible — the walk
// terminates once every entry has been visited, including ones appended
// by earlier iterations of the same walk.
func Preprocess(bs *basis.Basis, bht, sht *hashtable.Table) []Reducer {
	var reducers []Reducer
	// ID 0 is the table's reserved sentinel slot, not a monomial any row
	// references; the walk starts at 1 so it can never be promoted to a
	// column.
	for i := 1; i < sht.Len(); i++ {
		id := hashtable.ID(i)
		entry := sht.Entry(id)
		if entry.State != hashtable.Absent {
			continue
		}
		sht.SetState(id, hashtable.Seen)

		genIdx, multExp, ok := bs.FindDivisor(entry.Mon)
		if !ok {
			continue
		}
		mult := bs.Weights().New(multExp)
		row := bs.MultiplyRow(bht, sht, genIdx, mult)
		sht.SetState(id, hashtable.Pivot)
		reducers = append(reducers, Reducer{Gen: genIdx, Mult: multExp, Row: row})
	}
	return reducers
}
