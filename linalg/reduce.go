package linalg

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/f4err"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
	"github.com/kori-dev/f4gb/trace"
)

// Mode selects a reduction strategy (spec §6).
type Mode int8

const (
	Exact Mode = iota
	Probabilistic
	ExactSparseDense
	ProbabilisticSparseDense
	Trace
	Application
)

// Config holds the reduction-relevant engine configuration (spec §6):
// nthrds, fc (the prime), max_uht_size for the probabilistic multiplier
// mask, and a deterministic seed for math/rand/v2 (spec explicitly rules
// out cryptographic-grade RNG and deterministic thread interleaving, but
// requires Exact-mode determinism given fixed nthrds — the random inputs
// Probabilistic mode consumes still need a reproducible seed for tests).
type Config struct {
	NThreads   int
	Prime      uint32
	MaxUHTSize int
	Seed       uint64
}

func (c Config) path() Path { return SelectPath(c.Prime) }

// Result is the outcome of one Reduce call.
type Result struct {
	NewPivots      []*NewPivot
	ZeroReductions int
	// PublishedAt[i] reports whether ToBeReduced[i] published a new
	// pivot (as opposed to reducing to zero). Populated by the exact
	// engine only; a Trace run hands it to trace.ToReplay so a later
	// Application run at another prime can check itself against it.
	PublishedAt []bool
}

// Reduce runs the row engine over mat's to-be-reduced rows according to
// mode, publishing new pivots via CAS (spec §4.4–§4.6). rec is non-nil
// only for Trace mode, where it records reducer contributions; replay is
// non-nil only for Application mode, where the outcome is checked
// against it.
func Reduce(mat *matrix.Matrix, bs *basis.Basis, cfg Config, mode Mode, st *stats.Stats, rec *trace.Recorder, replay *trace.Replay) (*Result, error) {
	switch mode {
	case Exact, Trace, Application:
		return reduceExact(mat, bs, cfg, st, rec, replay)
	case ExactSparseDense:
		return reduceSparseDenseHybrid(mat, bs, cfg, st)
	case Probabilistic, ProbabilisticSparseDense:
		return reduceProbabilisticSparse(mat, bs, cfg, st)
	default:
		panic("linalg: unknown mode")
	}
}

// reduceExact is the sparse reduction engine of spec §4.4: a fixed worker
// pool pulls to-be-reduced rows off a shared dynamic counter (work-
// stealing-equivalent dynamic partitioning), each reducing its row
// against a per-worker dense accumulator and the shared CAS-published
// pivot table. Workers that hit an error keep running to completion —
// errgroup.Group without a context never cancels sibling goroutines, it
// only remembers the first error for Wait to return (spec §7).
func reduceExact(mat *matrix.Matrix, bs *basis.Basis, cfg Config, st *stats.Stats, rec *trace.Recorder, replay *trace.Replay) (*Result, error) {
	path := cfg.path()
	red := NewReductions(cfg.Prime)
	pivs := NewPivotTable(int(mat.NC))
	seedKnownPivots(pivs, mat, bs)

	nthreads := cfg.NThreads
	if nthreads < 1 {
		nthreads = 1
	}

	rows := mat.ToBeReduced
	var next int32
	var mu rowResultCollector
	publishedAt := make([]bool, len(rows))

	g := new(errgroup.Group)
	g.SetLimit(nthreads)
	for w := 0; w < nthreads; w++ {
		g.Go(func() error {
			sc := newScratch(path, red, int(mat.NC))
			defer func() { mu.addOps(sc.mults, sc.adds) }()
			for {
				idx := nextIndex(&next, int32(len(rows)))
				if idx < 0 {
					return nil
				}
				row := rows[idx]
				np, err := reduceRow(sc, row, bs, pivs, cfg.Prime, rec, int(idx))
				if err != nil {
					return err
				}
				if np == nil {
					mu.addZero()
					continue
				}
				publishedAt[idx] = true
				mu.addPivot(np)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if replay != nil {
		// A row-count mismatch means the matrix no longer has the shape
		// the trace recorded, which invalidates the modular run the same
		// way an unexpected zero does.
		if len(replay.ExpectedNonZero) != len(publishedAt) {
			return nil, f4err.ErrUnluckyPrime
		}
		for i, expected := range replay.ExpectedNonZero {
			if expected && !publishedAt[i] {
				return nil, f4err.ErrUnluckyPrime
			}
		}
	}

	if st != nil {
		st.Reductions += len(rows)
		st.ZeroReductions += mu.zero
		st.NewPivots += len(mu.pivots)
		st.AddMults(mu.mults)
		st.AddAdds(mu.adds)
	}
	return &Result{NewPivots: mu.pivots, ZeroReductions: mu.zero, PublishedAt: publishedAt}, nil
}

// seedKnownPivots publishes every rr row as the already-known pivot at
// its lead column, so the scan in reduceRow finds a non-nil entry there
// immediately instead of treating known-pivot columns as candidates.
func seedKnownPivots(pivs *PivotTable, mat *matrix.Matrix, bs *basis.Basis) {
	for i, r := range mat.Reducer {
		cf := bs.Cf32[r.Row.CoeffIdx]
		pivs.Publish(&NewPivot{Mons: r.Row.Mons, Cf: cf, Gen: r.Gen, ReducerIdx: int32(i), Preloop: r.Row.Preloop})
	}
}

func nextIndex(counter *int32, n int32) int32 {
	i := atomic.AddInt32(counter, 1) - 1
	if i >= n {
		return -1
	}
	return i
}

// reduceRow reduces one to-be-reduced row to either nil (zero) or a fresh
// normalized NewPivot.
func reduceRow(sc *scratch, row *matrix.Row, bs *basis.Basis, pivs *PivotTable, p uint32, rec *trace.Recorder, rowIdx int) (*NewPivot, error) {
	cf := bs.Cf32[row.Row.CoeffIdx]
	mons := row.Row.Mons
	sc.scatterInitial(mons, cf)
	return reduceFromScratch(sc, mons[0], pivs, p, rec, rowIdx, row.Gen), nil
}

// reduceFromScratch drives the scan/gather/normalize/publish loop to
// completion from an accumulator that has already been scattered,
// retrying across CAS losses per spec §4.4 step 5 and §9 Q1: on a CAS
// loss the accumulator is not re-scattered, since every column below the
// losing pivot's lead is already zero.
func reduceFromScratch(sc *scratch, sc0 int32, pivs *PivotTable, p uint32, rec *trace.Recorder, rowIdx int, gen int32) *NewPivot {
	for {
		sc.candidates = sc.candidates[:0]
		scanAndReduce(sc, sc0, pivs, p, rec, rowIdx)

		if len(sc.candidates) == 0 {
			return nil
		}

		newMons, newCf := gather(sc, sc.candidates, p)
		inv := ModInverse(newCf[0], p)
		normalize(newCf, inv, p)

		candidate := &NewPivot{
			Mons: newMons, Cf: newCf, Gen: gen, ReducerIdx: -1,
			Preloop: int32(len(newMons) % basis.UnrollWidth),
		}
		if pivs.Publish(candidate) {
			for _, c := range sc.candidates {
				sc.clear(c)
			}
			return candidate
		}
		// lost the race: the winner's lead column is newMons[0]; resume
		// scanning from there using the accumulator state already in place.
		sc0 = newMons[0]
	}
}

// scanAndReduce implements spec §4.4 step 2: scan ascending from sc0,
// reducing against every known pivot it finds and collecting the
// remaining nonzero columns (which have no pivot yet) into sc.candidates
// in ascending order.
func scanAndReduce(sc *scratch, sc0 int32, pivs *PivotTable, p uint32, rec *trace.Recorder, rowIdx int) {
	ncols := int32(pivs.Len())
	for i := sc0; i < ncols; i++ {
		if sc.isZero(i) {
			continue
		}
		v := sc.residue(i, p)
		if v == 0 {
			sc.clear(i)
			continue
		}
		piv := pivs.Get(i)
		if piv == nil {
			sc.candidates = append(sc.candidates, i)
			continue
		}
		sc.cancel(piv, v, p)
		sc.clear(i)
		if rec != nil && piv.ReducerIdx >= 0 {
			rec.MarkContribution(rowIdx, int(piv.ReducerIdx))
		}
	}
}

// gather collects the accumulator's values at columns (already in
// ascending order from scanAndReduce) into a fresh sparse row.
func gather(sc *scratch, columns []int32, p uint32) ([]int32, []uint32) {
	mons := make([]int32, len(columns))
	cf := make([]uint32, len(columns))
	copy(mons, columns)
	for i, c := range columns {
		cf[i] = sc.residue(c, p)
	}
	return mons, cf
}

// normalize scales cf so cf[0] == 1, in place (spec §3 invariant).
func normalize(cf []uint32, inv, p uint32) {
	for i, v := range cf {
		cf[i] = uint32((uint64(v) * uint64(inv)) % uint64(p))
	}
}

// rowResultCollector gathers per-worker results behind a mutex; reduction
// itself never blocks on it except for this O(1) append.
type rowResultCollector struct {
	mu     sync.Mutex
	pivots []*NewPivot
	zero   int
	mults  int64
	adds   int64
}

func (c *rowResultCollector) addPivot(p *NewPivot) {
	c.mu.Lock()
	c.pivots = append(c.pivots, p)
	c.mu.Unlock()
}

func (c *rowResultCollector) addZero() {
	c.mu.Lock()
	c.zero++
	c.mu.Unlock()
}

func (c *rowResultCollector) addOps(mults, adds int64) {
	c.mu.Lock()
	c.mults += mults
	c.adds += adds
	c.mu.Unlock()
}
