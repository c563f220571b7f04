package linalg

import (
	"golang.org/x/sync/errgroup"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
)

// hybridRow is a matrix-local intermediate row produced by the sparse
// AB-CD phase: its coefficients have no basis generator to borrow from
// (spec §3's "tr[i] rows use matrix-local mat->cf_32"), so it carries its
// own Cf slice instead of a basis.Row's CoeffIdx.
type hybridRow struct {
	Mons []int32
	Cf   []uint32
	Gen  int32
}

// reduceSparseDenseHybrid implements spec §4.6's two-phase strategy for
// matrices whose D-block becomes dense:
//
//  1. Sparse AB-CD reduction: every to-be-reduced row is reduced once
//     against only the known sparse pivots (seeded from rr), leaving a
//     residual row supported only on non-pivot columns. This is exactly
//     one pass of scanAndReduce with nothing yet published beyond the
//     seeded pivots, run as a join barrier across all rows.
//  2. Dense echelon: the residuals are then run through the same
//     CAS-publish dynamic reduction as the exact path (reduceFromScratch),
//     which — since only non-pivot columns remain live — behaves exactly
//     like a dense echelon reduction restricted to the D-block.
func reduceSparseDenseHybrid(mat *matrix.Matrix, bs *basis.Basis, cfg Config, st *stats.Stats) (*Result, error) {
	path := cfg.path()
	red := NewReductions(cfg.Prime)
	pivs := NewPivotTable(int(mat.NC))
	seedKnownPivots(pivs, mat, bs)

	nthreads := cfg.NThreads
	if nthreads < 1 {
		nthreads = 1
	}

	rows := mat.ToBeReduced
	residual := make([]*hybridRow, len(rows))

	var mu rowResultCollector
	var next1 int32
	g1 := new(errgroup.Group)
	g1.SetLimit(nthreads)
	for w := 0; w < nthreads; w++ {
		g1.Go(func() error {
			sc := newScratch(path, red, int(mat.NC))
			defer func() { mu.addOps(sc.mults, sc.adds) }()
			for {
				idx := nextIndex(&next1, int32(len(rows)))
				if idx < 0 {
					return nil
				}
				row := rows[idx]
				cf := bs.Cf32[row.Row.CoeffIdx]
				sc.scatterInitial(row.Row.Mons, cf)
				sc.candidates = sc.candidates[:0]
				scanAndReduce(sc, row.Row.Mons[0], pivs, cfg.Prime, nil, 0)
				if len(sc.candidates) == 0 {
					continue // reduced to zero against known pivots alone
				}
				mons, cfs := gather(sc, sc.candidates, cfg.Prime)
				for _, c := range sc.candidates {
					sc.clear(c)
				}
				residual[idx] = &hybridRow{Mons: mons, Cf: cfs, Gen: row.Gen}
			}
		})
	}
	if err := g1.Wait(); err != nil {
		return nil, err
	}

	var next2 int32
	g2 := new(errgroup.Group)
	g2.SetLimit(nthreads)
	for w := 0; w < nthreads; w++ {
		g2.Go(func() error {
			sc := newScratch(path, red, int(mat.NC))
			defer func() { mu.addOps(sc.mults, sc.adds) }()
			for {
				idx := nextIndex(&next2, int32(len(residual)))
				if idx < 0 {
					return nil
				}
				r := residual[idx]
				if r == nil {
					mu.addZero()
					continue
				}
				sc.scatterInitial(r.Mons, r.Cf)
				np := reduceFromScratch(sc, r.Mons[0], pivs, cfg.Prime, nil, 0, r.Gen)
				if np == nil {
					mu.addZero()
					continue
				}
				mu.addPivot(np)
			}
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	if st != nil {
		st.Reductions += len(rows)
		st.NewPivots += len(mu.pivots)
		st.ZeroReductions += mu.zero
		st.AddMults(mu.mults)
		st.AddAdds(mu.adds)
	}
	return &Result{NewPivots: mu.pivots, ZeroReductions: mu.zero}, nil
}
