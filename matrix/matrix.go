// Package matrix holds the F4 matrix: reducer rows (rr) with known-pivot
// leads, to-be-reduced rows (tr), and the A|B|C|D column split produced by
// hash→column conversion (spec §3, §4.3).
package matrix

import (
	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/monomial"
)

// Row is one matrix row before it is published as a basis pivot: the
// originating basis generator, its multiplier exponent (for trace), and
// the underlying row data. Before ConvertColumns, Row.Mons holds
// symbolic-hash-table IDs; after, it holds column indices.
type Row struct {
	Gen  int32
	Mult monomial.Exp
	Row  *basis.Row
}

// Matrix is one F4 step's linear system.
type Matrix struct {
	Reducer      []*Row // rr, count nru
	ToBeReduced  []*Row // tr, count nrl
	NC, NCL, NCR int32

	// RBA[i] is a bitset over the nru reducer rows marking which of them
	// contributed to ToBeReduced[i]'s reduction. Populated only when a
	// trace.Recorder is active; nil otherwise (spec §4.7).
	RBA [][]uint64
}

// New assembles a Matrix from the rows pair selection and symbolic
// preprocessing produced.
func New(reducer, extra, toBeReduced []Row) *Matrix {
	m := &Matrix{}
	m.Reducer = make([]*Row, 0, len(reducer)+len(extra))
	for _, r := range reducer {
		r := r
		m.Reducer = append(m.Reducer, &r)
	}
	for _, r := range extra {
		r := r
		m.Reducer = append(m.Reducer, &r)
	}
	m.ToBeReduced = make([]*Row, 0, len(toBeReduced))
	for _, r := range toBeReduced {
		r := r
		m.ToBeReduced = append(m.ToBeReduced, &r)
	}
	return m
}

// Nru returns the number of reducer rows.
func (m *Matrix) Nru() int { return len(m.Reducer) }

// Nrl returns the number of to-be-reduced rows.
func (m *Matrix) Nrl() int { return len(m.ToBeReduced) }
