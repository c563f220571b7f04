package monomial

import "testing"

func TestHashIsLinear(t *testing.T) {
	w := NewWeights(3, 1)
	a := w.New(Exp{1, 0, 2})
	b := w.New(Exp{0, 3, 1})
	prod := Mul(a, b)
	if prod.Hash != a.Hash+b.Hash {
		t.Fatalf("hash not linear: got %d want %d", prod.Hash, a.Hash+b.Hash)
	}
	if prod.Deg != a.Deg+b.Deg {
		t.Fatalf("degree not additive: got %d want %d", prod.Deg, a.Deg+b.Deg)
	}
}

func TestDividesMaskRejectsFast(t *testing.T) {
	w := NewWeights(2, 7)
	x := w.New(Exp{1, 0})
	y := w.New(Exp{0, 1})
	if Divides(x, y) {
		t.Fatalf("x should not divide y")
	}
	xy := w.New(Exp{1, 1})
	if !Divides(x, xy) {
		t.Fatalf("x should divide xy")
	}
	if !Divides(y, xy) {
		t.Fatalf("y should divide xy")
	}
}

func TestQuotientRejectsNegative(t *testing.T) {
	w := NewWeights(2, 3)
	x2 := w.New(Exp{2, 0})
	x := w.New(Exp{1, 0})
	q, ok := Quotient(x, x2)
	if !ok || q[0] != 1 || q[1] != 0 {
		t.Fatalf("x2/x = x expected, got %v ok=%v", q, ok)
	}
	_, ok = Quotient(x2, x)
	if ok {
		t.Fatalf("x/x2 should not divide evenly")
	}
}

func TestLcm(t *testing.T) {
	w := NewWeights(2, 5)
	x2 := w.New(Exp{2, 0})
	xy := w.New(Exp{1, 1})
	lcm := Lcm(x2, xy, w)
	if lcm.Exp[0] != 2 || lcm.Exp[1] != 1 {
		t.Fatalf("lcm(x^2, xy) = x^2y expected, got %v", lcm.Exp)
	}
}

func TestLessDegrevlex(t *testing.T) {
	w := NewWeights(2, 9)
	x2 := w.New(Exp{2, 0})
	xy := w.New(Exp{1, 1})
	y2 := w.New(Exp{0, 2})
	// same degree: tiebreak favors smaller exponent on the last variable
	if !Less(x2, xy) {
		t.Fatalf("x^2 should sort before xy under degrevlex")
	}
	if !Less(xy, y2) {
		t.Fatalf("xy should sort before y^2 under degrevlex")
	}
}
