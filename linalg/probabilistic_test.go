package linalg

import (
	"testing"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/matrix"
)

func TestBlockSizeFor(t *testing.T) {
	cases := []struct {
		nrl  int
		want int
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{12, 2},
		{27, 3},
		{300, 10},
	}
	for _, c := range cases {
		if got := blockSizeFor(c.nrl); got != c.want {
			t.Fatalf("blockSizeFor(%d) = %d, want %d", c.nrl, got, c.want)
		}
	}
}

func TestPartitionBlocksCoversEveryRow(t *testing.T) {
	rows := make([]*matrix.Row, 7)
	for i := range rows {
		rows[i] = &matrix.Row{Gen: int32(i)}
	}
	blocks := partitionBlocks(rows, 3)
	var total int
	for _, b := range blocks {
		total += len(b)
	}
	if total != len(rows) {
		t.Fatalf("partitionBlocks covered %d rows, want %d", total, len(rows))
	}
	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}
}

// TestReduceProbabilisticSparseStructuralInvariants checks properties
// that must hold regardless of which random linear combinations the PCG
// happens to draw: every discovered pivot is normalized, its lead column
// has no duplicate among the other discovered pivots (CAS guarantees
// this), and the pivot count never exceeds the row count.
func TestReduceProbabilisticSparseStructuralInvariants(t *testing.T) {
	bs := &basis.Basis{Cf32: [][]uint32{
		{1, 5}, {1, 7}, {1, 5, 7},
	}}
	mat := &matrix.Matrix{
		ToBeReduced: []*matrix.Row{
			{Gen: 0, Row: &basis.Row{CoeffIdx: 0, Mons: []int32{0, 1}}},
			{Gen: 1, Row: &basis.Row{CoeffIdx: 1, Mons: []int32{0, 2}}},
			{Gen: 2, Row: &basis.Row{CoeffIdx: 2, Mons: []int32{0, 1, 2}}},
		},
		NC: 3, NCL: 0, NCR: 3,
	}

	cfg := Config{NThreads: 2, Prime: 101, MaxUHTSize: 1 << 10, Seed: 12345}
	res, err := Reduce(mat, bs, cfg, Probabilistic, nil, nil, nil)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if len(res.NewPivots) > len(mat.ToBeReduced) {
		t.Fatalf("len(NewPivots) = %d, exceeds row count %d", len(res.NewPivots), len(mat.ToBeReduced))
	}
	seenCols := map[int32]bool{}
	for _, p := range res.NewPivots {
		if len(p.Cf) == 0 || p.Cf[0] != 1 {
			t.Fatalf("pivot %+v not normalized", p)
		}
		if seenCols[p.Mons[0]] {
			t.Fatalf("duplicate pivot published at column %d", p.Mons[0])
		}
		seenCols[p.Mons[0]] = true
	}
}
