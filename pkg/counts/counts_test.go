// 18 May 2021

package counts_test

import (
	"math/rand"
	"testing"

	"github.com/andrew-torda/msastats/pkg/alphabet"
	. "github.com/andrew-torda/msastats/pkg/counts"
	"github.com/andrew-torda/msastats/pkg/msa"
)

const nAlpha = alphabet.NSym

// encoded is a helper. Build an alignment from strings and encode it.
func encoded(t *testing.T, rows []string) *msa.MSA {
	t.Helper()
	m, err := msa.FromStrings(rows)
	if err != nil {
		t.Fatal("building test alignment:", err)
	}
	m.Encode()
	return m
}

func approxEqual(x, y float64) bool {
	const eps = 1e-9
	d := x - y
	return d < eps && d > -eps
}

// The little worked example: two sequences, two columns, weights 1
// and 2. We know every entry of the answer.
func TestSingleSmall(t *testing.T) {
	m := encoded(t, []string{"AC", "A-"})
	weights := []float64{1.0, 2.0}
	counts := make([]float64, SingleSize(m.Ncol()))
	if err := Single(counts, m, weights); err != nil {
		t.Fatal("Single:", err)
	}
	ndxA := alphabet.Ndx('A')
	ndxC := alphabet.Ndx('C')
	want := map[int]float64{
		SingleNdx(0, ndxA):            3.0,
		SingleNdx(1, ndxC):            1.0,
		SingleNdx(1, alphabet.GapNdx): 2.0,
	}
	for i, v := range counts {
		if !approxEqual(v, want[i]) {
			t.Fatalf("single counts entry %d got %g want %g", i, v, want[i])
		}
	}
}

func TestPairSmall(t *testing.T) {
	m := encoded(t, []string{"AC", "A-"})
	weights := []float64{1.0, 2.0}
	counts := make([]float64, PairSize(m.Ncol()))
	if err := Pair(counts, m, weights); err != nil {
		t.Fatal("Pair:", err)
	}
	ndxA := alphabet.Ndx('A')
	ndxC := alphabet.Ndx('C')
	gap := uint8(alphabet.GapNdx)
	if got := counts[PairNdx(2, 0, 1, ndxA, ndxC)]; !approxEqual(got, 1.0) {
		t.Fatal("counts[0][1][A][C] got", got)
	}
	if got := counts[PairNdx(2, 0, 1, ndxA, gap)]; !approxEqual(got, 2.0) {
		t.Fatal("counts[0][1][A][gap] got", got)
	}
	var total float64 // everything else in the (0,1) block must be zero
	base := PairNdx(2, 0, 1, 0, 0)
	for k := 0; k < nAlpha*nAlpha; k++ {
		total += counts[base+k]
	}
	if !approxEqual(total, 3.0) {
		t.Fatal("block (0,1) total got", total)
	}
}

func TestTripletSmall(t *testing.T) {
	m := encoded(t, []string{"AC", "A-"})
	weights := []float64{1.0, 2.0}
	triplets := []Triple{{0, 1, 1}}
	counts := make([]float64, TripletSize(len(triplets)))
	if err := Triplet(counts, m, weights, triplets); err != nil {
		t.Fatal("Triplet:", err)
	}
	ndxA := alphabet.Ndx('A')
	ndxC := alphabet.Ndx('C')
	gap := uint8(alphabet.GapNdx)
	if got := counts[TripletNdx(0, ndxA, ndxC, ndxC)]; !approxEqual(got, 1.0) {
		t.Fatal("counts[0][A][C][C] got", got)
	}
	if got := counts[TripletNdx(0, ndxA, gap, gap)]; !approxEqual(got, 2.0) {
		t.Fatal("counts[0][A][gap][gap] got", got)
	}
	var total float64
	for _, v := range counts {
		total += v
	}
	if !approxEqual(total, 3.0) {
		t.Fatal("triplet total got", total)
	}
}

// randAln makes a random alignment and weights for the property
// based tests below.
func randAln(t *testing.T, nrow, ncol int, seed int64) (*msa.MSA, []float64) {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	letters := "ARNDCQEGHILKMFPSTWYV-x" // includes one junk character
	rows := make([]string, nrow)
	for n := range rows {
		b := make([]byte, ncol)
		for i := range b {
			b[i] = letters[rnd.Intn(len(letters))]
		}
		rows[n] = string(b)
	}
	weights := make([]float64, nrow)
	var wsum float64
	for n := range weights {
		weights[n] = rnd.Float64() * 2
		wsum += weights[n]
	}
	return encoded(t, rows), weights
}

func sum(x []float64) (t float64) {
	for _, v := range x {
		t += v
	}
	return t
}

// Every column marginal of the single counts is the total weight.
func TestSingleMarginals(t *testing.T) {
	m, weights := randAln(t, 31, 17, 1637)
	wsum := sum(weights)
	counts := make([]float64, SingleSize(m.Ncol()))
	if err := Single(counts, m, weights); err != nil {
		t.Fatal("Single:", err)
	}
	for i := 0; i < m.Ncol(); i++ {
		if got := sum(counts[i*nAlpha : (i+1)*nAlpha]); !approxEqual(got, wsum) {
			t.Fatalf("column %d marginal got %g want %g", i, got, wsum)
		}
	}
}

// Pair marginals, transpose symmetry and the diagonal blocks.
func TestPairProperties(t *testing.T) {
	m, weights := randAln(t, 23, 9, 42)
	ncol := m.Ncol()
	wsum := sum(weights)
	pair := make([]float64, PairSize(ncol))
	if err := Pair(pair, m, weights); err != nil {
		t.Fatal("Pair:", err)
	}
	single := make([]float64, SingleSize(ncol))
	if err := Single(single, m, weights); err != nil {
		t.Fatal("Single:", err)
	}

	const blk = nAlpha * nAlpha
	for i := 0; i < ncol; i++ {
		for j := 0; j < ncol; j++ {
			base := PairNdx(ncol, i, j, 0, 0)
			if got := sum(pair[base : base+blk]); !approxEqual(got, wsum) {
				t.Fatalf("block (%d,%d) marginal got %g want %g", i, j, got, wsum)
			}
			for a := uint8(0); a < nAlpha; a++ {
				for b := uint8(0); b < nAlpha; b++ {
					x := pair[PairNdx(ncol, i, j, a, b)]
					y := pair[PairNdx(ncol, j, i, b, a)]
					if x != y {
						t.Fatalf("no transpose symmetry at (%d,%d,%d,%d)", i, j, a, b)
					}
				}
			}
		}
	}
	for i := 0; i < ncol; i++ { // the diagonal blocks
		for a := uint8(0); a < nAlpha; a++ {
			for b := uint8(0); b < nAlpha; b++ {
				got := pair[PairNdx(ncol, i, i, a, b)]
				if a != b {
					if got != 0 {
						t.Fatalf("diag (%d,%d,%d) should be zero, got %g", i, a, b, got)
					}
				} else if !approxEqual(got, single[SingleNdx(i, a)]) {
					t.Fatalf("diag (%d,%d) got %g want single %g",
						i, a, got, single[SingleNdx(i, a)])
				}
			}
		}
	}
}

func TestTripletMarginals(t *testing.T) {
	m, weights := randAln(t, 19, 11, 7)
	wsum := sum(weights)
	triplets := []Triple{{0, 1, 2}, {10, 3, 3}, {5, 5, 5}, {2, 1, 0}}
	counts := make([]float64, TripletSize(len(triplets)))
	if err := Triplet(counts, m, weights, triplets); err != nil {
		t.Fatal("Triplet:", err)
	}
	const blk = nAlpha * nAlpha * nAlpha
	for tt := range triplets {
		if got := sum(counts[tt*blk : (tt+1)*blk]); !approxEqual(got, wsum) {
			t.Fatalf("triplet %d marginal got %g want %g", tt, got, wsum)
		}
	}
}

// A second call must overwrite, not accumulate.
func TestIdempotent(t *testing.T) {
	m, weights := randAln(t, 9, 5, 99)
	counts := make([]float64, SingleSize(m.Ncol()))
	if err := Single(counts, m, weights); err != nil {
		t.Fatal("Single:", err)
	}
	first := make([]float64, len(counts))
	copy(first, counts)
	if err := Single(counts, m, weights); err != nil {
		t.Fatal("Single again:", err)
	}
	for i := range counts {
		if counts[i] != first[i] {
			t.Fatal("second call changed entry", i)
		}
	}
}

// The counters must refuse broken caller contracts.
func TestFailFast(t *testing.T) {
	m := encoded(t, []string{"AC", "A-"})
	weights := []float64{1, 2}

	if err := Single(make([]float64, 3), m, weights); err == nil {
		t.Fatal("Single took a counts slice of the wrong size")
	}
	if err := Single(make([]float64, SingleSize(2)), m, []float64{1}); err == nil {
		t.Fatal("Single took the wrong number of weights")
	}
	raw, _ := msa.FromStrings([]string{"AC", "A-"}) // never encoded
	if err := Single(make([]float64, SingleSize(2)), raw, weights); err == nil {
		t.Fatal("Single took an unencoded alignment")
	}
	if err := Pair(make([]float64, 7), m, weights); err == nil {
		t.Fatal("Pair took a counts slice of the wrong size")
	}
	bad := []Triple{{0, 1, 2}} // column 2 of 2
	if err := Triplet(make([]float64, TripletSize(1)), m, weights, bad); err == nil {
		t.Fatal("Triplet took an out of range column")
	}
	neg := []Triple{{0, -1, 1}}
	if err := Triplet(make([]float64, TripletSize(1)), m, weights, neg); err == nil {
		t.Fatal("Triplet took a negative column")
	}
}
