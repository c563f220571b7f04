// Package pairs selects critical (S-)pairs by minimal degree, respecting
// a configured selection cap, and emits the multiplied reducer/to-be-
// reduced rows that seed a matrix build (spec §4.1).
package pairs

import (
	"sort"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/monomial"
)

// Pair is a critical pair between two basis generators, carrying its lcm
// monomial precomputed (lcm's hash is linear but its exponents are a
// componentwise max, not a sum, so it cannot be derived from the
// generators' hashes alone — see monomial.Lcm).
type Pair struct {
	Gen1, Gen2 int32
	Lcm        monomial.Monomial
	// Generation is the insertion order, used only as the final,
	// deterministic tiebreak among pairs whose lcm degree and lcm
	// monomial order are equal.
	Generation int32
}

// Set is a stable, removable queue of pairs.
type Set struct {
	Pairs []Pair
}

// NewPair builds a Pair from two basis generator indices.
func NewPair(gen1, gen2 int32, bs *basis.Basis, generation int32) Pair {
	l1 := bs.Leads[gen1].Mon
	l2 := bs.Leads[gen2].Mon
	return Pair{
		Gen1:       gen1,
		Gen2:       gen2,
		Lcm:        monomial.Lcm(l1, l2, bs.Weights()),
		Generation: generation,
	}
}

// removePrefix drops the first n pairs via a stable shift, matching
// spec §4.1's "the selected pairs are removed from the pair set (stable
// shift)".
func (s *Set) removePrefix(n int) {
	s.Pairs = append(s.Pairs[:0], s.Pairs[n:]...)
}

// Config controls pair selection.
type Config struct {
	// MaxSelect caps the number of pairs taken per matrix build (mnsel),
	// but the cap is extended forward to avoid splitting an lcm class.
	MaxSelect int
}

// Row is one emitted matrix row: the originating basis generator, the
// multiplier exponent applied to it, and the multiplied row itself
// (monomials already interned into sht).
type Row struct {
	Gen  int32
	Mult monomial.Exp
	Row  *basis.Row
}

// Selection is the output of Select: the reducer rows (rr, one per
// distinct generator that is first in its lcm class) and the to-be-
// reduced rows (tr, the rest).
type Selection struct {
	Reducer     []Row
	ToBeReduced []Row
}

// Select sorts set by lcm degree, takes the minimal-degree prefix
// (capped at cfg.MaxSelect but never splitting an lcm class), and splits
// it into reducer/to-be-reduced rows (spec §4.1). Selected pairs are
// removed from set. bht resolves the monomial IDs referenced by existing
// basis rows; sht is the fresh symbolic hash table every multiplied term
// is interned into.
func Select(set *Set, bs *basis.Basis, bht, sht *hashtable.Table, cfg Config) Selection {
	if len(set.Pairs) == 0 {
		return Selection{}
	}

	// (a) sort by lcm degree.
	sort.SliceStable(set.Pairs, func(i, j int) bool {
		return set.Pairs[i].Lcm.Deg < set.Pairs[j].Lcm.Deg
	})
	md := set.Pairs[0].Lcm.Deg

	npd := 0
	for npd < len(set.Pairs) && set.Pairs[npd].Lcm.Deg == md {
		npd++
	}

	// (c) resort that prefix by lcm monomial order.
	prefix := set.Pairs[:npd]
	sort.SliceStable(prefix, func(i, j int) bool {
		if !sameMonomial(prefix[i].Lcm, prefix[j].Lcm) {
			return monomial.Less(prefix[i].Lcm, prefix[j].Lcm)
		}
		return prefix[i].Generation < prefix[j].Generation
	})

	// (d) cap at mnsel, extended forward to include the whole lcm class.
	nps := npd
	if cfg.MaxSelect > 0 && npd > cfg.MaxSelect {
		nps = cfg.MaxSelect
		lastLcm := prefix[nps-1].Lcm
		for nps < npd && sameMonomial(prefix[nps].Lcm, lastLcm) {
			nps++
		}
	}
	selected := prefix[:nps]

	sel := Selection{}
	i := 0
	for i < len(selected) {
		j := i
		lcm := selected[i].Lcm
		for j < len(selected) && sameMonomial(selected[j].Lcm, lcm) {
			j++
		}
		emitGroup(selected[i:j], bs, bht, sht, &sel)
		i = j
	}

	set.removePrefix(nps)
	return sel
}

// emitGroup processes every pair sharing one lcm: collects the distinct
// generators referenced (spec §10's gens_cmp supplement: generators are
// numerically sorted and de-duplicated before the first/rest split), and
// emits one multiplied row per distinct generator — the first becomes
// the reducer row, the rest become to-be-reduced rows. The shared lcm's
// symbolic hash table entry is marked a known-pivot column, since it is
// by construction the lead of the reducer row.
func emitGroup(group []Pair, bs *basis.Basis, bht, sht *hashtable.Table, sel *Selection) {
	gens := make([]int32, 0, 2*len(group))
	for _, p := range group {
		gens = append(gens, p.Gen1, p.Gen2)
	}
	sort.Slice(gens, func(i, j int) bool { return gens[i] < gens[j] })

	lcm := group[0].Lcm
	sht.InsertPivot(lcm.Exp)

	prev := int32(-1)
	first := true
	for _, g := range gens {
		if g == prev {
			continue
		}
		prev = g
		row, mult := multiplyGenerator(bs, bht, sht, g, lcm)
		if first {
			sel.Reducer = append(sel.Reducer, Row{Gen: g, Mult: mult, Row: row})
			first = false
		} else {
			sel.ToBeReduced = append(sel.ToBeReduced, Row{Gen: g, Mult: mult, Row: row})
		}
	}
}

// multiplyGenerator multiplies basis generator g by lcm/lead(g), interning
// every resulting term into sht and returning the new row. The row's
// coefficients are not copied: multiplying by a monomial only shifts
// exponents, so the multiplied row still borrows bs.Cf32[g] via
// CoeffIdx (spec §3: rows use coefficients from the basis until reduced).
func multiplyGenerator(bs *basis.Basis, bht, sht *hashtable.Table, g int32, lcm monomial.Monomial) (*basis.Row, monomial.Exp) {
	leadMon := bs.Leads[g].Mon
	multExp, ok := monomial.Quotient(leadMon, lcm)
	if !ok {
		panic("pairs: lcm is not a multiple of its own generator's lead")
	}
	mult := bs.Weights().New(multExp)
	row := bs.MultiplyRow(bht, sht, g, mult)
	return row, multExp
}

func sameMonomial(a, b monomial.Monomial) bool {
	if a.Deg != b.Deg {
		return false
	}
	for i := range a.Exp {
		if a.Exp[i] != b.Exp[i] {
			return false
		}
	}
	return true
}
