package matrix

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// ColumnMap is the result of ConvertColumns: the reverse map from column
// index back to the symbolic-hash-table ID it came from (hcm in the
// original), needed once reduction finishes to re-intern new pivot
// monomials into the basis hash table.
type ColumnMap struct {
	Hash []hashtable.ID
	NCL  int32
}

// ConvertColumns assigns every live sht entry a column, in decreasing
// monomial order, then rewrites every matrix row's Mons in place from
// hash-table IDs to column indices (spec §4.3). The row rewrite is
// embarrassingly parallel — each row only reads its own Mons slice and
// the (by then immutable) column assignments in sht — so it runs over an
// errgroup worker pool bounded by nthreads, mirroring the teacher's
// worker-queue-over-independent-blocks shape.
func ConvertColumns(mat *Matrix, sht *hashtable.Table, nthreads int) (*ColumnMap, error) {
	type col struct {
		id    hashtable.ID
		mon   monomial.Monomial
		pivot bool
	}
	cols := make([]col, 0, sht.Len())
	sht.Each(func(id hashtable.ID, e hashtable.Entry) {
		// ID 0 is the reserved sentinel slot; it is never eligible to
		// become a column, whatever its state.
		if id == 0 || e.State == hashtable.Absent {
			return
		}
		cols = append(cols, col{id: id, mon: e.Mon, pivot: e.State == hashtable.Pivot})
	})
	sort.Slice(cols, func(i, j int) bool { return monomial.Less(cols[i].mon, cols[j].mon) })

	hcm := make([]hashtable.ID, len(cols))
	var ncl int32
	for pos, c := range cols {
		sht.SetColumn(c.id, int32(pos))
		hcm[pos] = c.id
		if c.pivot {
			ncl++
		}
	}
	mat.NC = int32(len(cols))
	mat.NCL = ncl
	mat.NCR = mat.NC - ncl

	rows := make([]*Row, 0, len(mat.Reducer)+len(mat.ToBeReduced))
	rows = append(rows, mat.Reducer...)
	rows = append(rows, mat.ToBeReduced...)
	if err := rewriteRows(rows, sht, nthreads); err != nil {
		return nil, err
	}
	return &ColumnMap{Hash: hcm, NCL: ncl}, nil
}

// rewriteRows overwrites each row's Mons in place, from sht IDs to the
// columns ConvertColumns just assigned. Column assignment above is
// strictly sequential and completes before any goroutine here starts, so
// concurrent readers of sht never race with a writer.
func rewriteRows(rows []*Row, sht *hashtable.Table, nthreads int) error {
	if nthreads < 1 {
		nthreads = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(nthreads)
	for _, r := range rows {
		r := r
		g.Go(func() error {
			for i, id := range r.Row.Mons {
				r.Row.Mons[i] = sht.Entry(hashtable.ID(id)).Column
			}
			return nil
		})
	}
	return g.Wait()
}
