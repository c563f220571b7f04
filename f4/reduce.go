package f4

import (
	"math/bits"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/f4err"
	"github.com/kori-dev/f4gb/linalg"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
	"github.com/kori-dev/f4gb/trace"
)

// Reduce runs one of the four row-engine strategies over mat (spec §6
// reduce). rec records contributions in Trace mode; replay is the
// Trace-run output an Application-mode run checks itself against.
//
// A FieldBits hint too small for FieldChar would put the accumulator
// outside its proven range, so that combination is rejected up front
// rather than silently computing wrong residues.
func Reduce(mat *matrix.Matrix, bs *basis.Basis, cfg Config, mode linalg.Mode, rec *trace.Recorder, replay *trace.Replay, st *stats.Stats) (res *linalg.Result, err error) {
	if cfg.FieldBits != 0 && cfg.FieldBits < bits.Len32(cfg.FieldChar) {
		return nil, f4err.ErrOverflowGuard
	}
	lcfg := linalg.Config{
		NThreads:   cfg.NumThreads,
		Prime:      cfg.FieldChar,
		MaxUHTSize: cfg.MaxUHTSize,
		Seed:       cfg.Seed,
	}
	st.Time(stats.PhaseReduce, func() {
		res, err = linalg.Reduce(mat, bs, lcfg, mode, st, rec, replay)
	})
	if rec != nil {
		mat.RBA = rec.RBA()
	}
	return res, err
}
