package f4

import (
	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/linalg"
	"github.com/kori-dev/f4gb/matrix"
	"github.com/kori-dev/f4gb/stats"
)

// insertNewPivots translates every new pivot's column indices back to
// bht IDs via hcm, re-interning any monomial bht has not seen before, and
// appends each resulting row to bs. Returns the new basis indices in the
// same order as res.NewPivots.
func insertNewPivots(res *linalg.Result, bs *basis.Basis, bht, sht *hashtable.Table, hcm *matrix.ColumnMap) []int32 {
	indices := make([]int32, 0, len(res.NewPivots))
	for _, np := range res.NewPivots {
		mons := make([]int32, len(np.Mons))
		for i, col := range np.Mons {
			shtID := hcm.Hash[col]
			mon := sht.Mon(shtID)
			mons[i] = int32(bht.Insert(mon.Exp))
		}
		row := basis.NewRow(np.Gen, 0, 0, mons)
		leadMon := bht.Mon(hashtable.ID(mons[0]))
		idx := bs.Append(row, np.Cf, leadMon)
		indices = append(indices, idx)
	}
	return indices
}

// ConvertRowsToBasisElements folds a reduction's new pivots into the
// working basis mid-computation, so later pair selection can draw
// critical pairs against them (spec §6
// convert_sparse_matrix_rows_to_basis_elements).
func ConvertRowsToBasisElements(mat *matrix.Matrix, bs *basis.Basis, bht, sht *hashtable.Table, hcm *matrix.ColumnMap, res *linalg.Result, st *stats.Stats) []int32 {
	var indices []int32
	st.Time(stats.PhaseConvertBk, func() {
		indices = insertNewPivots(res, bs, bht, sht, hcm)
	})
	return indices
}

// ReturnNormalFormsToBasis folds a reduction's new pivots into bs the
// same way ConvertRowsToBasisElements does (spec §6
// return_normal_forms_to_basis), for call sites that only need the
// resulting normal forms recorded and do not care about the returned
// indices (e.g. a final pass after the last matrix step).
func ReturnNormalFormsToBasis(mat *matrix.Matrix, bs *basis.Basis, bht, sht *hashtable.Table, hcm *matrix.ColumnMap, res *linalg.Result, st *stats.Stats) {
	st.Time(stats.PhaseConvertBk, func() {
		insertNewPivots(res, bs, bht, sht, hcm)
	})
}
