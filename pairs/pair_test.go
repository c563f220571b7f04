package pairs

import (
	"testing"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// buildS1Basis constructs the spec §8 S1 fixture: {x^2-1, xy-1} over p=101.
func buildS1Basis(t *testing.T) (*basis.Basis, *hashtable.Table) {
	t.Helper()
	w := monomial.NewWeights(2, 42)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)

	// x^2 - 1  => coefficients [1, 100] over p=101 (100 == -1 mod 101)
	x2 := bht.Insert(monomial.Exp{2, 0})
	one := bht.Insert(monomial.Exp{0, 0})
	bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x2), int32(one)}), []uint32{1, 100}, bht.Mon(x2))

	// xy - 1
	xy := bht.Insert(monomial.Exp{1, 1})
	bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(xy), int32(one)}), []uint32{1, 100}, bht.Mon(xy))

	return bs, bht
}

func TestSelectS1(t *testing.T) {
	bs, bht := buildS1Basis(t)
	w := bs.Weights()
	sht := hashtable.NewTable(w)

	set := &Set{Pairs: []Pair{NewPair(0, 1, bs, 0)}}
	sel := Select(set, bs, bht, sht, Config{MaxSelect: 10})

	if len(set.Pairs) != 0 {
		t.Fatalf("selected pair should be removed from the set, got %d remaining", len(set.Pairs))
	}
	if len(sel.Reducer) != 1 {
		t.Fatalf("expected exactly 1 reducer row, got %d", len(sel.Reducer))
	}
	if len(sel.ToBeReduced) != 1 {
		t.Fatalf("expected exactly 1 to-be-reduced row, got %d", len(sel.ToBeReduced))
	}
	// lcm(x^2, xy) = x^2y, degree 3
	lead := sht.Mon(hashtable.ID(sel.Reducer[0].Row.Mons[0]))
	if lead.Deg != 3 {
		t.Fatalf("expected lead degree 3 (x^2y), got %d", lead.Deg)
	}
}

func TestSelectCapNeverSplitsLcmClass(t *testing.T) {
	w := monomial.NewWeights(1, 3)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)
	// three generators all with lead x, so every pair among them has lcm=x
	for i := 0; i < 3; i++ {
		x := bht.Insert(monomial.Exp{1})
		bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x)}), []uint32{1}, bht.Mon(x))
	}
	set := &Set{Pairs: []Pair{
		NewPair(0, 1, bs, 0),
		NewPair(0, 2, bs, 1),
		NewPair(1, 2, bs, 2),
	}}
	sht := hashtable.NewTable(w)
	sel := Select(set, bs, bht, sht, Config{MaxSelect: 1})

	total := len(sel.Reducer) + len(sel.ToBeReduced)
	if total != 3 { // 3 distinct generators {0,1,2}, all sharing lcm=x
		t.Fatalf("expected all 3 distinct generators emitted despite cap=1, got %d", total)
	}
	if len(sel.Reducer) != 1 {
		t.Fatalf("expected exactly one reducer row, got %d", len(sel.Reducer))
	}
}
