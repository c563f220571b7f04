package symbolic

import (
	"testing"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

func TestPreprocessGrowsTableWhileWalking(t *testing.T) {
	w := monomial.NewWeights(2, 1)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)

	one := bht.Insert(monomial.Exp{0, 0})
	x := bht.Insert(monomial.Exp{1, 0})
	y := bht.Insert(monomial.Exp{0, 1})

	// gen0: x - 1
	bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x), int32(one)}), []uint32{1, 100}, bht.Mon(x))
	// gen1: y - 1
	bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(y), int32(one)}), []uint32{1, 100}, bht.Mon(y))

	sht := hashtable.NewTable(w)
	xy := sht.Insert(monomial.Exp{1, 1}) // Absent: the monomial to close

	reducers := Preprocess(bs, bht, sht)

	if len(reducers) != 2 {
		t.Fatalf("expected 2 reducer rows discovered (for xy and y), got %d", len(reducers))
	}
	if sht.Entry(xy).State != hashtable.Pivot {
		t.Fatalf("xy should become a known-pivot column")
	}
	// the identity monomial should never get a reducer: no basis lead has degree 0
	idID, ok := sht.Lookup(monomial.Exp{0, 0})
	if !ok {
		t.Fatalf("identity should have been interned while multiplying y - 1")
	}
	if sht.Entry(idID).State == hashtable.Pivot {
		t.Fatalf("identity monomial should not become a pivot column")
	}
}

func TestPreprocessNoDivisorLeavesSeen(t *testing.T) {
	w := monomial.NewWeights(2, 2)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)
	x2 := bht.Insert(monomial.Exp{2, 0})
	bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x2)}), []uint32{1}, bht.Mon(x2))

	sht := hashtable.NewTable(w)
	xID := sht.Insert(monomial.Exp{1, 0})

	reducers := Preprocess(bs, bht, sht)
	if len(reducers) != 0 {
		t.Fatalf("expected no reducer (x^2 does not divide x), got %d", len(reducers))
	}
	if sht.Entry(xID).State != hashtable.Seen {
		t.Fatalf("x should stay Seen, not become Pivot, without a divisor")
	}
}
