package linalg

import (
	"testing"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/matrix"
)

// TestReduceSparseDenseHybridMatchesExact checks the two-phase hybrid
// path against the single-phase exact path on the same hand-checkable
// system used in TestReduceExactEliminatesKnownPivot: both must agree on
// the final pivot set, since they differ only in scheduling strategy.
func TestReduceSparseDenseHybridMatchesExact(t *testing.T) {
	newMatrix := func() (*matrix.Matrix, *basis.Basis) {
		bs := &basis.Basis{Cf32: [][]uint32{
			{3, 7},
			{1, 5},
		}}
		reducer := &matrix.Row{Gen: 0, Row: &basis.Row{CoeffIdx: 1, Mons: []int32{0, 2}}}
		tbr := &matrix.Row{Gen: 0, Row: &basis.Row{CoeffIdx: 0, Mons: []int32{0, 1}}}
		return &matrix.Matrix{
			Reducer:     []*matrix.Row{reducer},
			ToBeReduced: []*matrix.Row{tbr},
			NC:          3, NCL: 1, NCR: 2,
		}, bs
	}

	cfg := Config{NThreads: 2, Prime: 101}
	mat, bs := newMatrix()
	exact, err := Reduce(mat, bs, cfg, Exact, nil, nil, nil)
	if err != nil {
		t.Fatalf("exact Reduce: %v", err)
	}

	mat2, bs2 := newMatrix()
	hybrid, err := Reduce(mat2, bs2, cfg, ExactSparseDense, nil, nil, nil)
	if err != nil {
		t.Fatalf("hybrid Reduce: %v", err)
	}

	if hybrid.ZeroReductions != exact.ZeroReductions {
		t.Fatalf("ZeroReductions = %d, want %d", hybrid.ZeroReductions, exact.ZeroReductions)
	}
	if len(hybrid.NewPivots) != len(exact.NewPivots) {
		t.Fatalf("len(NewPivots) = %d, want %d", len(hybrid.NewPivots), len(exact.NewPivots))
	}
	got, want := hybrid.NewPivots[0], exact.NewPivots[0]
	if got.Mons[0] != want.Mons[0] || got.Cf[0] != want.Cf[0] {
		t.Fatalf("hybrid pivot = %+v, want %+v", got, want)
	}
}

// TestReduceSparseDenseHybridAllKnownLeavesNoResidual checks the case
// where phase 1 alone reduces every row to zero against seeded pivots, so
// phase 2 has nothing left to do.
func TestReduceSparseDenseHybridAllKnownLeavesNoResidual(t *testing.T) {
	bs := &basis.Basis{Cf32: [][]uint32{{1, 5}}}
	reducer := &matrix.Row{Gen: 0, Row: &basis.Row{CoeffIdx: 0, Mons: []int32{0, 2}}}
	tbr := &matrix.Row{Gen: 1, Row: &basis.Row{CoeffIdx: 0, Mons: []int32{0, 2}}}
	mat := &matrix.Matrix{
		Reducer:     []*matrix.Row{reducer},
		ToBeReduced: []*matrix.Row{tbr},
		NC:          3, NCL: 1, NCR: 2,
	}

	res, err := Reduce(mat, bs, Config{NThreads: 1, Prime: 101}, ExactSparseDense, nil, nil, nil)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if res.ZeroReductions != 1 || len(res.NewPivots) != 0 {
		t.Fatalf("got ZeroReductions=%d NewPivots=%d, want 1,0", res.ZeroReductions, len(res.NewPivots))
	}
}
