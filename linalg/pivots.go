package linalg

import "sync/atomic"

// NewPivot is a freshly discovered, normalized pivot row, still owned by
// the matrix until transferred into the basis (spec §3 "Lifecycles").
type NewPivot struct {
	Mons []int32
	Cf   []uint32
	// Gen is the basis generator this pivot ultimately traces back to
	// (trace bookkeeping only).
	Gen int32
	// ReducerIdx is this pivot's position in the matrix's original
	// Reducer slice (0..nru-1) when it was seeded from a known-pivot row,
	// or -1 when it was discovered during this reduction step. Only
	// seeded reducers are tracked in a trace.Recorder's rba bitset (spec
	// §4.7: "a bitset over the nru reducer rows").
	ReducerIdx int32
	// Preloop is the unroll remainder len(Mons) % basis.UnrollWidth,
	// precomputed so the grouped inner loop can peel that many scalar
	// iterations before its unrolled body.
	Preloop int32
}

// PivotTable is the CAS-published pivot array pivs[0..ncols): one atomic
// slot per column, written at most once successfully per column (spec
// §4.4, §5). Readers and the single successful writer never need a lock;
// losing writers retry instead.
type PivotTable struct {
	slots []atomic.Pointer[NewPivot]
}

// NewPivotTable allocates an empty pivot table for ncols columns.
func NewPivotTable(ncols int) *PivotTable {
	return &PivotTable{slots: make([]atomic.Pointer[NewPivot], ncols)}
}

// Get returns the pivot currently published at column c, or nil.
func (t *PivotTable) Get(c int32) *NewPivot {
	return t.slots[c].Load()
}

// Publish attempts to install p as the pivot for column p.Mons[0]. It
// reports whether this call won the race; a losing caller must retry its
// own row reduction starting from the column that beat it (spec §5).
func (t *PivotTable) Publish(p *NewPivot) bool {
	return t.slots[p.Mons[0]].CompareAndSwap(nil, p)
}

// Len returns the number of columns the table covers.
func (t *PivotTable) Len() int { return len(t.slots) }
