package linalg

import (
	"math/bits"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
)

// blockSizeFor picks the probabilistic block size sqrt(nrl/3) from spec
// §4.5, floored at 1.
func blockSizeFor(nrl int) int {
	if nrl <= 0 {
		return 0
	}
	size := int(isqrt(uint64(nrl) / 3))
	if size < 1 {
		size = 1
	}
	return size
}

func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

func partitionBlocks(rows []*matrix.Row, blockSize int) [][]*matrix.Row {
	if blockSize <= 0 {
		blockSize = len(rows)
	}
	var blocks [][]*matrix.Row
	for i := 0; i < len(rows); i += blockSize {
		end := i + blockSize
		if end > len(rows) {
			end = len(rows)
		}
		blocks = append(blocks, rows[i:end])
	}
	return blocks
}

// reduceProbabilisticSparse implements spec §4.5: partition the to-be-
// reduced rows into blocks of about sqrt(nrl/3), and for each block draw
// a fresh random linear combination of its rows on every attempt,
// reducing that single dense combination instead of every row
// individually. A block that combines to zero is treated as fully
// redundant; otherwise the combination's pivot is published and the
// block is retried (a new random combination of the same rows) up to
// len(block) times, since a rank-k block can yield up to k pivots this
// way before every combination collapses to zero.
func reduceProbabilisticSparse(mat *matrix.Matrix, bs *basis.Basis, cfg Config, st *stats.Stats) (*Result, error) {
	path := cfg.path()
	red := NewReductions(cfg.Prime)
	pivs := NewPivotTable(int(mat.NC))
	seedKnownPivots(pivs, mat, bs)

	nthreads := cfg.NThreads
	if nthreads < 1 {
		nthreads = 1
	}
	maxUHT := cfg.MaxUHTSize
	if maxUHT <= 0 {
		maxUHT = 1 << 20
	}
	multMask := uint32(1)<<uint(bits.Len(uint(maxUHT))) - 1

	blockSize := blockSizeFor(len(mat.ToBeReduced))
	blocks := partitionBlocks(mat.ToBeReduced, blockSize)

	var mu rowResultCollector
	g := new(errgroup.Group)
	g.SetLimit(nthreads)
	for bi, block := range blocks {
		block, bi := block, bi
		seed := cfg.Seed ^ (uint64(bi)+1)*0x9e3779b97f4a7c15
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(seed, seed^0xabcdef1234567890))
			sc := newScratch(path, red, int(mat.NC))
			defer func() { mu.addOps(sc.mults, sc.adds) }()
			remaining := len(block)
			for remaining > 0 {
				minLead := combineBlock(sc, block, rng, multMask, cfg.Prime, bs)
				np := reduceFromScratch(sc, minLead, pivs, cfg.Prime, nil, 0, -1)
				if np == nil {
					mu.addZero()
					break // combination collapsed to zero: block treated as redundant
				}
				mu.addPivot(np)
				remaining--
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if st != nil {
		st.NewPivots += len(mu.pivots)
		st.ZeroReductions += mu.zero
		st.AddMults(mu.mults)
		st.AddAdds(mu.adds)
	}
	return &Result{NewPivots: mu.pivots, ZeroReductions: mu.zero}, nil
}

// combineBlock scatters a fresh random linear combination of block's rows
// into sc (reset first, since the block's rows may touch columns spread
// across the whole width) and returns the smallest lead column touched,
// the correct starting column for the subsequent scan.
func combineBlock(sc *scratch, block []*matrix.Row, rng *rand.Rand, multMask, p uint32, bs *basis.Basis) int32 {
	sc.resetAll()
	minLead := int32(-1)
	for _, row := range block {
		mult := rng.Uint32() & multMask
		if mult == 0 {
			mult = 1
		}
		cf := bs.Cf32[row.Row.CoeffIdx]
		mons := row.Row.Mons
		sc.accumulate(mons, cf, mult, p)
		if minLead < 0 || mons[0] < minLead {
			minLead = mons[0]
		}
	}
	if minLead < 0 {
		minLead = 0
	}
	return minLead
}
