package f4

import (
	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/linalg"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
)

// InterreduceMatrix runs a full interreduction of the finished basis
// (spec §6 interreduce_matrix_rows): every basis row is treated as a
// reducer row of one synthetic matrix, columns are assigned the usual
// way, linalg.Interreduce eliminates back-references between pivots, and
// the result replaces bs's rows in place.
func InterreduceMatrix(bs *basis.Basis, bht *hashtable.Table, cfg Config, st *stats.Stats) error {
	var err error
	st.Time(stats.PhaseInterred, func() {
		err = interreduceMatrix(bs, bht, cfg)
	})
	return err
}

func interreduceMatrix(bs *basis.Basis, bht *hashtable.Table, cfg Config) error {
	sht := hashtable.NewTable(bht.Weights())

	reducerRows := make([]matrix.Row, bs.Len())
	for i, row := range bs.Rows {
		mons := make([]int32, len(row.Mons))
		for j, id := range row.Mons {
			mon := bht.Mon(hashtable.ID(id))
			mons[j] = int32(sht.InsertPivot(mon.Exp))
		}
		newRow := basis.NewRow(row.BIndex, row.Mult, row.CoeffIdx, mons)
		reducerRows[i] = matrix.Row{Gen: int32(i), Row: newRow}
	}

	mat := matrix.New(reducerRows, nil, nil)
	hcm, err := matrix.ConvertColumns(mat, sht, cfg.NumThreads)
	if err != nil {
		return err
	}

	pivs := linalg.NewPivotTable(int(mat.NC))
	for _, r := range mat.Reducer {
		cf := bs.Cf32[r.Row.CoeffIdx]
		pivs.Publish(&linalg.NewPivot{Mons: r.Row.Mons, Cf: cf, Gen: r.Gen, ReducerIdx: r.Gen, Preloop: r.Row.Preloop})
	}
	out := linalg.Interreduce(pivs, cfg.FieldChar)

	newRows := make([]*basis.Row, 0, mat.NC)
	newCf := make([][]uint32, 0, mat.NC)
	newLeads := make([]basis.Lead, 0, mat.NC)
	for col := int32(0); col < mat.NC; col++ {
		piv := out.Get(col)
		if piv == nil {
			continue
		}
		mons := make([]int32, len(piv.Mons))
		for i, c := range piv.Mons {
			shtID := hcm.Hash[c]
			mon := sht.Mon(shtID)
			mons[i] = int32(bht.Insert(mon.Exp))
		}
		idx := int32(len(newRows))
		row := basis.NewRow(piv.Gen, 0, idx, mons)
		leadMon := bht.Mon(hashtable.ID(mons[0]))
		newRows = append(newRows, row)
		newCf = append(newCf, piv.Cf)
		newLeads = append(newLeads, basis.Lead{RowIndex: idx, Mon: leadMon})
	}

	bs.Rows = newRows
	bs.Cf32 = newCf
	bs.Leads = newLeads
	return nil
}
