// Package trace records a Trace-mode matrix step (multipliers, per-row
// reducer contributions, and which rows published a pivot) so that an
// Application-mode run at another prime can check its outcome against
// it (spec §4.7). It does not rebuild a matrix: an Application run builds
// its matrix through pair selection and symbolic preprocessing as usual.
package trace

import (
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// Recorder owns the trace hash table (tht) and the per-row contribution
// bitsets (rba) produced by a Trace-mode reduction.
type Recorder struct {
	tht *hashtable.Table
	// rba[i] is a bitset over the matrix's nru reducer rows, set bit j
	// when reducer row j actually contributed to row i's reduction.
	rba [][]uint64
	nru int
}

// NewRecorder creates a Recorder over a fresh trace hash table sharing
// the basis's hash weights.
func NewRecorder(w *monomial.Weights) *Recorder {
	return &Recorder{tht: hashtable.NewTable(w)}
}

// Table returns the trace hash table multipliers are interned into.
func (r *Recorder) Table() *hashtable.Table { return r.tht }

// RecordMultiplier interns a row's multiplier exponent into the trace
// hash table, returning its stable trace ID.
func (r *Recorder) RecordMultiplier(e monomial.Exp) hashtable.ID {
	return r.tht.Insert(e)
}

// Reset prepares the recorder for a new matrix step with nru reducer
// rows and nrl to-be-reduced rows.
func (r *Recorder) Reset(nru, nrl int) {
	r.nru = nru
	words := (nru + 63) / 64
	r.rba = make([][]uint64, nrl)
	for i := range r.rba {
		r.rba[i] = make([]uint64, words)
	}
}

// MarkContribution records that reducer row `reducer` contributed to the
// reduction of to-be-reduced row `row`.
func (r *Recorder) MarkContribution(row, reducer int) {
	r.rba[row][reducer/64] |= 1 << uint(reducer%64)
}

// Contributed reports whether reducer row `reducer` was marked as having
// contributed to row `row`.
func (r *Recorder) Contributed(row, reducer int) bool {
	return r.rba[row][reducer/64]&(1<<uint(reducer%64)) != 0
}

// RBA returns the full contribution-bitset table (spec §3's mat->rba).
func (r *Recorder) RBA() [][]uint64 { return r.rba }

// Replay is the subset of a Trace run's outcome an Application-mode
// reduction at a different prime checks itself against: which
// to-be-reduced rows were expected to publish a new pivot (as opposed to
// reducing to zero).
type Replay struct {
	ExpectedNonZero []bool
}

// ToReplay captures which rows published a pivot during a Trace run,
// indexed the same way as the matrix's ToBeReduced slice.
func ToReplay(publishedAt []bool) *Replay {
	cp := make([]bool, len(publishedAt))
	copy(cp, publishedAt)
	return &Replay{ExpectedNonZero: cp}
}
