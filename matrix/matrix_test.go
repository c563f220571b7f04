package matrix

import (
	"testing"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// TestConvertColumnsDecreasingOrderAndSplit builds a tiny two-row matrix
// by hand ({x^2-1, xy-1}'s S1 fixture shape) and checks that
// ConvertColumns assigns columns in decreasing monomial order and counts
// NCL correctly.
func TestConvertColumnsDecreasingOrderAndSplit(t *testing.T) {
	w := monomial.NewWeights(2, 7)
	sht := hashtable.NewTable(w)

	xy := sht.InsertPivot(monomial.Exp{1, 1}) // known pivot, degree 2
	x := sht.Insert(monomial.Exp{1, 0})       // degree 1, no reducer
	one := sht.Insert(monomial.Exp{0, 0})     // constant term, degree 0

	// ConvertColumns always runs after symbolic preprocessing has walked
	// sht to completion, so every entry a row actually references is at
	// least Seen by the time columns are assigned.
	sht.SetState(x, hashtable.Seen)
	sht.SetState(one, hashtable.Seen)

	row := basis.NewRow(-1, 0, 0, []int32{int32(xy), int32(x), int32(one)})
	mat := New(
		[]Row{{Gen: 0, Row: row}},
		nil,
		nil,
	)

	cm, err := ConvertColumns(mat, sht, 2)
	if err != nil {
		t.Fatalf("ConvertColumns: %v", err)
	}

	if mat.NC != 3 {
		t.Fatalf("expected 3 columns, got %d", mat.NC)
	}
	if mat.NCL != 1 {
		t.Fatalf("expected 1 known-pivot column, got %d", mat.NCL)
	}
	if mat.NCR != 2 {
		t.Fatalf("expected 2 non-pivot columns, got %d", mat.NCR)
	}

	// xy has the highest degree, so it must land at column 0.
	if row.Mons[0] != 0 {
		t.Fatalf("expected xy's row-lead to land at column 0, got %d", row.Mons[0])
	}
	// column 0 maps back to the xy entry via the column map.
	if cm.Hash[0] != xy {
		t.Fatalf("column map at 0 should point back to xy's hash ID")
	}
	// Mons[1] (x) and Mons[2] (1) are distinct monomials, so distinct columns.
	if row.Mons[1] == row.Mons[2] {
		t.Fatalf("x and the identity monomial must land in distinct columns")
	}
}

func TestConvertColumnsSkipsAbsentEntries(t *testing.T) {
	w := monomial.NewWeights(1, 3)
	sht := hashtable.NewTable(w)
	sht.Insert(monomial.Exp{5}) // left Absent: never referenced by any row

	mat := New(nil, nil, nil)
	cm, err := ConvertColumns(mat, sht, 1)
	if err != nil {
		t.Fatalf("ConvertColumns: %v", err)
	}
	if mat.NC != 0 {
		t.Fatalf("expected 0 live columns, got %d", mat.NC)
	}
	if len(cm.Hash) != 0 {
		t.Fatalf("expected empty column map, got %d entries", len(cm.Hash))
	}
}
