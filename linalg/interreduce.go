package linalg

import "github.com/kori-dev/f4gb/basis"

// Interreduce performs spec §4.4's final interreduction pass: traversing
// columns right-to-left, each pivot is re-reduced against every pivot at
// a strictly greater column (already finalized by the time we reach a
// smaller one, since we walk descending). No concurrency is needed — the
// spec is explicit that this pass runs single-threaded.
//
// A pivot's own lead column is never touched while reducing other,
// already-finalized pivots into it: every term of a finalized pivot row
// lies at a column greater than or equal to that pivot's own lead, so
// reducing column c' > col can never reach back down to col itself.
func Interreduce(pivs *PivotTable, p uint32) *PivotTable {
	path := SelectPath(p)
	red := NewReductions(p)
	ncols := pivs.Len()
	out := NewPivotTable(ncols)
	sc := newScratch(path, red, ncols)

	for col := ncols - 1; col >= 0; col-- {
		piv := pivs.Get(int32(col))
		if piv == nil {
			continue
		}
		sc.scatterInitial(piv.Mons, piv.Cf)
		sc.candidates = sc.candidates[:0]
		scanAndReduce(sc, int32(col), out, p, nil, 0)

		mons, cf := gather(sc, sc.candidates, p)
		inv := ModInverse(cf[0], p)
		normalize(cf, inv, p)
		for _, c := range sc.candidates {
			sc.clear(c)
		}

		out.Publish(&NewPivot{
			Mons: mons, Cf: cf, Gen: piv.Gen, ReducerIdx: piv.ReducerIdx,
			Preloop: int32(len(mons) % basis.UnrollWidth),
		})
	}
	return out
}
