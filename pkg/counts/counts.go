// 18 May 2021

// Package counts tallies weighted symbol frequencies over an encoded
// alignment. There are three flavours. Single is a count for each
// column and symbol. Pair is a count for every ordered pair of
// columns and pair of symbols, including the pair of a column with
// itself. Triplet is a count for a caller-chosen list of column
// triples, since counting every triple would eat all the memory in
// the building.
//
// The output tensors are flat float64 slices allocated by the
// caller. A call zeroes its output and then accumulates, so calling
// twice gives the same answer, not double. Offsets within the flat
// slices come from the Ndx helpers, which keeps the layout in
// exactly one place.
//
// Pair and triplet counting are spread over goroutines. Each task
// owns a disjoint slice of the output, so there are no locks and no
// atomics, and the WaitGroup at the end makes all the writes visible
// to the caller. Within one output slice, rows are always summed in
// row order, so results are reproducible to the last bit for any
// number of workers.
package counts

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/andrew-torda/msastats/pkg/alphabet"
	"github.com/andrew-torda/msastats/pkg/msa"
)

const nAlpha = alphabet.NSym

// Triple is one caller-chosen set of three column indices. Order
// matters and there is no requirement that they differ.
type Triple struct {
	I, J, K int
}

// SingleSize says how long the output slice for Single must be.
func SingleSize(ncol int) int { return ncol * nAlpha }

// PairSize says how long the output slice for Pair must be.
func PairSize(ncol int) int { return ncol * ncol * nAlpha * nAlpha }

// TripletSize says how long the output slice for Triplet must be.
func TripletSize(ntriplets int) int { return ntriplets * nAlpha * nAlpha * nAlpha }

// SingleNdx is the offset of [column i][symbol a].
func SingleNdx(i int, a uint8) int { return i*nAlpha + int(a) }

// PairNdx is the offset of [column i][column j][symbol a][symbol b].
func PairNdx(ncol, i, j int, a, b uint8) int {
	return ((i*ncol+j)*nAlpha+int(a))*nAlpha + int(b)
}

// TripletNdx is the offset of [triplet t][symbol a][symbol b][symbol c].
func TripletNdx(t int, a, b, c uint8) int {
	return ((t*nAlpha+int(a))*nAlpha+int(b))*nAlpha + int(c)
}

// checkArgs does the checks common to all three counters. The
// output size, the weights and the matrix contents are all caller
// contracts, and we would rather stop here than scribble somewhere
// wrong in a flat slice.
func checkArgs(ncounts, want int, m *msa.MSA, weights []float64) error {
	if ncounts != want {
		return fmt.Errorf("counts slice has %d entries, need %d", ncounts, want)
	}
	if len(weights) != m.Nrow() {
		return fmt.Errorf("%d weights for %d sequences", len(weights), m.Nrow())
	}
	for n := 0; n < m.Nrow(); n++ {
		for i, c := range m.Row(n) {
			if c >= nAlpha {
				return fmt.Errorf(
					"cell at row %d col %d holds %d. Alignment not encoded ?", n, i, c)
			}
		}
	}
	return nil
}

func zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// nWorker picks the number of goroutines for ntask independent tasks.
func nWorker(ntask int) int {
	n := runtime.GOMAXPROCS(0)
	if n > ntask {
		n = ntask
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Single fills counts, of length SingleSize(ncol), with the weighted
// tally of each symbol at each column. The marginal over symbols at
// any column is the total weight of all sequences. One pass, row
// major, no goroutines. This is the cheap one and it is memory bound
// anyway.
func Single(counts []float64, m *msa.MSA, weights []float64) error {
	ncol := m.Ncol()
	if err := checkArgs(len(counts), SingleSize(ncol), m, weights); err != nil {
		return err
	}
	zero(counts)
	for n := 0; n < m.Nrow(); n++ {
		row := m.Row(n)
		w := weights[n]
		for i := 0; i < ncol; i++ {
			counts[i*nAlpha+int(row[i])] += w
		}
	}
	return nil
}

// Pair fills counts, of length PairSize(ncol), with the weighted
// tally of symbol pairs for every ordered column pair (i,j). The
// tensor is deliberately not symmetrised. counts[i][j] and
// counts[j][i] both exist and are transposes of each other, which
// doubles memory but keeps downstream indexing simple. Work is
// O(ncol² nrow), so the flattened (i,j) space is strided across
// goroutines. Each (i,j) owns its own 21x21 block of the output.
func Pair(counts []float64, m *msa.MSA, weights []float64) error {
	nrow, ncol := m.Nrow(), m.Ncol()
	if err := checkArgs(len(counts), PairSize(ncol), m, weights); err != nil {
		return err
	}
	zero(counts)
	npair := ncol * ncol
	nw := nWorker(npair)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			const blk = nAlpha * nAlpha
			for ij := w; ij < npair; ij += nw {
				i, j := ij/ncol, ij%ncol
				dst := counts[ij*blk : (ij+1)*blk]
				for n := 0; n < nrow; n++ {
					row := m.Row(n)
					dst[int(row[i])*nAlpha+int(row[j])] += weights[n]
				}
			}
		}(w)
	}
	wg.Wait()
	return nil
}

// Triplet fills counts, of length TripletSize(len(triplets)), with
// the weighted tally of symbol triples at each of the caller's
// column triples. The column indices are checked before anything is
// written, because an index past ncol would land the tally in
// somebody else's output.
func Triplet(counts []float64, m *msa.MSA, weights []float64, triplets []Triple) error {
	nrow, ncol := m.Nrow(), m.Ncol()
	if err := checkArgs(len(counts), TripletSize(len(triplets)), m, weights); err != nil {
		return err
	}
	for t, trp := range triplets {
		for _, i := range [3]int{trp.I, trp.J, trp.K} {
			if i < 0 || i >= ncol {
				return fmt.Errorf(
					"triplet %d refers to column %d, alignment has %d", t, i, ncol)
			}
		}
	}
	zero(counts)
	nw := nWorker(len(triplets))
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			const blk = nAlpha * nAlpha * nAlpha
			for t := w; t < len(triplets); t += nw {
				trp := triplets[t]
				dst := counts[t*blk : (t+1)*blk]
				for n := 0; n < nrow; n++ {
					row := m.Row(n)
					a, b, c := row[trp.I], row[trp.J], row[trp.K]
					dst[(int(a)*nAlpha+int(b))*nAlpha+int(c)] += weights[n]
				}
			}
		}(w)
	}
	wg.Wait()
	return nil
}
