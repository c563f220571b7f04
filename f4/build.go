package f4

import (
	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/pairs"
	"github.com/kori-dev/f4gb/stats"
	"github.com/kori-dev/f4gb/symbolic"
	"github.com/kori-dev/f4gb/trace"
)

// BuildMatrix runs pair selection (§4.1) followed by symbolic
// preprocessing (§4.2), assembling the resulting reducer and to-be-
// reduced rows into one Matrix (spec §6 build_matrix). rec is non-nil
// only when a Trace run is recording multipliers.
func BuildMatrix(bs *basis.Basis, set *pairs.Set, bht, sht *hashtable.Table, cfg Config, rec *trace.Recorder, st *stats.Stats) *matrix.Matrix {
	var sel pairs.Selection
	st.Time(stats.PhaseSelect, func() {
		sel = pairs.Select(set, bs, bht, sht, pairs.Config{MaxSelect: cfg.MaxSelect})
		if rec != nil {
			for _, r := range sel.Reducer {
				r.Row.Mult = rec.RecordMultiplier(r.Mult)
			}
			for _, r := range sel.ToBeReduced {
				r.Row.Mult = rec.RecordMultiplier(r.Mult)
			}
		}
	})

	var extra []matrix.Row
	st.Time(stats.PhaseSymbolic, func() {
		reducers := symbolic.Preprocess(bs, bht, sht)
		extra = make([]matrix.Row, len(reducers))
		for i, r := range reducers {
			extra[i] = matrix.Row(r)
			if rec != nil {
				r.Row.Mult = rec.RecordMultiplier(r.Mult)
			}
		}
	})

	reducer := make([]matrix.Row, len(sel.Reducer))
	for i, r := range sel.Reducer {
		reducer[i] = matrix.Row(r)
	}
	toBeReduced := make([]matrix.Row, len(sel.ToBeReduced))
	for i, r := range sel.ToBeReduced {
		toBeReduced[i] = matrix.Row(r)
	}

	mat := matrix.New(reducer, extra, toBeReduced)
	st.Rows += mat.Nru() + mat.Nrl()
	if rec != nil {
		rec.Reset(mat.Nru(), mat.Nrl())
	}
	return mat
}

// ConvertColumns assigns columns to every live symbolic hash table entry
// and rewrites mat's rows in place (spec §6 convert_hashes_to_columns).
func ConvertColumns(mat *matrix.Matrix, sht *hashtable.Table, cfg Config, st *stats.Stats) (hcm *matrix.ColumnMap, err error) {
	st.Time(stats.PhaseConvert, func() {
		hcm, err = matrix.ConvertColumns(mat, sht, cfg.NumThreads)
	})
	return hcm, err
}
