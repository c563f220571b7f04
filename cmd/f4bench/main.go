// Command f4bench runs the F4 engine over one of a couple of small
// built-in fixtures, one pair per matrix step until its pair queue is
// empty, interreduces the basis, and reports the resulting stats.
//
// Usage:
//
//	f4bench -fixture s1 -prime 101 -threads 4 -info 2
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kori-dev/f4gb/basis"
	"github.com/kori-dev/f4gb/f4"
	"github.com/kori-dev/f4gb/hashtable"
	"github.com/kori-dev/f4gb/linalg"
	"github.com/kori-dev/f4gb/monomial"
	"github.com/kori-dev/f4gb/pairs"
	"github.com/kori-dev/f4gb/stats"
)

var (
	fixture = flag.String("fixture", "s1", "fixture to run: s1, s2")
	prime   = flag.Uint("prime", 101, "field characteristic")
	threads = flag.Int("threads", 1, "worker thread count")
	info    = flag.Int("info", 2, "stats report verbosity (0-3)")
)

func main() {
	flag.Parse()

	var bs *basis.Basis
	var bht *hashtable.Table
	var gens []int32

	switch *fixture {
	case "s1":
		bs, bht, gens = buildS1(uint32(*prime))
	case "s2":
		bs, bht, gens = buildS2(uint32(*prime))
	default:
		fmt.Fprintf(os.Stderr, "unknown fixture %q (want s1 or s2)\n", *fixture)
		os.Exit(1)
	}

	cfg := f4.NewConfig(f4.WithFieldChar(uint32(*prime)), f4.WithNumThreads(*threads), f4.WithInfoLevel(*info))
	st := stats.New()

	set := &pairs.Set{}
	for i := 0; i < len(gens); i++ {
		for j := i + 1; j < len(gens); j++ {
			set.Pairs = append(set.Pairs, pairs.NewPair(gens[i], gens[j], bs, int32(len(set.Pairs))))
		}
	}

	for len(set.Pairs) > 0 {
		p := set.Pairs[0]
		set.Pairs = set.Pairs[1:]

		sht := hashtable.NewTable(bht.Weights())
		step := &pairs.Set{Pairs: []pairs.Pair{p}}

		mat := f4.BuildMatrix(bs, step, bht, sht, cfg, nil, st)
		hcm, err := f4.ConvertColumns(mat, sht, cfg, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "convert columns: %v\n", err)
			os.Exit(1)
		}
		res, err := f4.Reduce(mat, bs, cfg, linalg.Exact, nil, nil, st)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reduce: %v\n", err)
			os.Exit(1)
		}
		newIdx := f4.ConvertRowsToBasisElements(mat, bs, bht, sht, hcm, res, st)
		for _, idx := range newIdx {
			for _, g := range gens {
				if g != idx {
					set.Pairs = append(set.Pairs, pairs.NewPair(g, idx, bs, int32(len(set.Pairs))))
				}
			}
			gens = append(gens, idx)
		}
	}

	if err := f4.InterreduceMatrix(bs, bht, cfg, st); err != nil {
		fmt.Fprintf(os.Stderr, "interreduce: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("basis size: %d\n", bs.Len())
	st.Report(os.Stdout, *info)
}

// buildS1 constructs {x^2-1, xy-1}, nv=2.
func buildS1(p uint32) (*basis.Basis, *hashtable.Table, []int32) {
	w := monomial.NewWeights(2, 1)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)

	x2 := bht.Insert(monomial.Exp{2, 0})
	one := bht.Insert(monomial.Exp{0, 0})
	i0 := bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x2), int32(one)}), []uint32{1, p - 1}, bht.Mon(x2))

	xy := bht.Insert(monomial.Exp{1, 1})
	i1 := bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(xy), int32(one)}), []uint32{1, p - 1}, bht.Mon(xy))

	return bs, bht, []int32{i0, i1}
}

// buildS2 constructs the ideal {x+y+z-1, xy+yz+zx, xyz-1}, nv=3.
func buildS2(p uint32) (*basis.Basis, *hashtable.Table, []int32) {
	w := monomial.NewWeights(3, 2)
	bht := hashtable.NewTable(w)
	bs := basis.New(w)

	x := bht.Insert(monomial.Exp{1, 0, 0})
	y := bht.Insert(monomial.Exp{0, 1, 0})
	z := bht.Insert(monomial.Exp{0, 0, 1})
	one := bht.Insert(monomial.Exp{0, 0, 0})
	i0 := bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(x), int32(y), int32(z), int32(one)}),
		[]uint32{1, 1, 1, p - 1}, bht.Mon(x))

	xy := bht.Insert(monomial.Exp{1, 1, 0})
	yz := bht.Insert(monomial.Exp{0, 1, 1})
	zx := bht.Insert(monomial.Exp{1, 0, 1})
	i1 := bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(xy), int32(yz), int32(zx)}),
		[]uint32{1, 1, 1}, bht.Mon(xy))

	xyz := bht.Insert(monomial.Exp{1, 1, 1})
	i2 := bs.Append(basis.NewRow(-1, 0, 0, []int32{int32(xyz), int32(one)}),
		[]uint32{1, p - 1}, bht.Mon(xyz))

	return bs, bht, []int32{i0, i1, i2}
}
