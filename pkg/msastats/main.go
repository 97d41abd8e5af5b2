// 9 Jun 2021
package msastats

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/andrew-torda/msastats/pkg/alphabet"
	"github.com/andrew-torda/msastats/pkg/counts"
	"github.com/andrew-torda/msastats/pkg/logo"
	"github.com/andrew-torda/msastats/pkg/msa"
	"github.com/andrew-torda/msastats/pkg/triplets"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Wgts    string // weights file, one number per sequence
	Pairs   string // file for pair counts, empty means do not compute
	TripIn  string // file with a list of column triples
	TripOut string // file for triplet counts
	Logo    string // file for a png frequency logo
	Flat    bool   // input is flat, one sequence per line, no names
	Time    bool   // do we want to print out run time ?
}

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// openOut gives us a writer for a filename. An empty name or "-"
// means standard output.
func openOut(fname string) (io.WriteCloser, func(), error) {
	if fname == "" || fname == "-" {
		return os.Stdout, func() {}, nil
	}
	warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	return fp, func() { fp.Close() }, nil
}

// writeSingle writes the single counts as a csv file, one row per
// site, one column per symbol. The heading line makes excel happy.
// gnuplot is less keen, but gnuplot users know what to do.
func writeSingle(fp io.Writer, single []float64, ncol int) error {
	heading := `"site"`
	for a := uint8(0); a < alphabet.NSym; a++ {
		c, _ := alphabet.Sym(a)
		heading += fmt.Sprintf(`,"%c"`, c)
	}
	fmt.Fprintln(fp, heading)
	for i := 0; i < ncol; i++ {
		fmt.Fprintf(fp, "%d", i+1)
		for a := uint8(0); a < alphabet.NSym; a++ {
			fmt.Fprintf(fp, ",%.6g", single[counts.SingleNdx(i, a)])
		}
		if _, err := fmt.Fprintln(fp); err != nil {
			return err
		}
	}
	return nil
}

// writePairs writes the non-zero entries of the pair count tensor,
// one per line. With 441 symbol pairs per column pair, most entries
// are zero for any real alignment, so this is far smaller than the
// dense tensor.
func writePairs(fp io.Writer, pair []float64, ncol int) error {
	n := 0
	for _, v := range pair {
		if v != 0 {
			n++
		}
	}
	if _, err := fmt.Fprintf(fp, "# %d\n", n); err != nil {
		return err
	}
	for i := 0; i < ncol; i++ {
		for j := 0; j < ncol; j++ {
			for a := uint8(0); a < alphabet.NSym; a++ {
				for b := uint8(0); b < alphabet.NSym; b++ {
					v := pair[counts.PairNdx(ncol, i, j, a, b)]
					if v == 0 {
						continue
					}
					ca, _ := alphabet.Sym(a)
					cb, _ := alphabet.Sym(b)
					_, err := fmt.Fprintf(fp, "%d\t%d\t%c\t%c\t%.8e\n", i, j, ca, cb, v)
					if err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// Mymain reads an alignment, tallies the weighted counts and writes
// whatever the flags asked for. The single counts always go to
// outfile as csv. Pair and triplet counts and the logo are optional.
func Mymain(flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Println("finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	if flags.TripOut != "" && flags.TripIn == "" {
		return fmt.Errorf("triplet output wanted, but no triplet list given")
	}

	m, err := msa.Readfile(infile, flags.Flat)
	if err != nil {
		return fmt.Errorf("fail reading alignment: %w", err)
	}

	weights := msa.Uniform(m.Nrow())
	if flags.Wgts != "" {
		if weights, err = msa.ReadWeights(flags.Wgts, m.Nrow()); err != nil {
			return err
		}
	}
	m.Encode()

	single := make([]float64, counts.SingleSize(m.Ncol()))
	if err := counts.Single(single, m, weights); err != nil {
		return err
	}
	fp, done, err := openOut(outfile)
	if err != nil {
		return err
	}
	err = writeSingle(fp, single, m.Ncol())
	done()
	if err != nil {
		return err
	}

	if flags.Pairs != "" {
		pair := make([]float64, counts.PairSize(m.Ncol()))
		if err := counts.Pair(pair, m, weights); err != nil {
			return err
		}
		fp, done, err := openOut(flags.Pairs)
		if err != nil {
			return err
		}
		err = writePairs(fp, pair, m.Ncol())
		done()
		if err != nil {
			return err
		}
	}

	if flags.TripIn != "" {
		trps, err := triplets.ReadList(flags.TripIn)
		if err != nil {
			return err
		}
		cnts := make([]float64, counts.TripletSize(len(trps)))
		if err := counts.Triplet(cnts, m, weights, trps); err != nil {
			return err
		}
		fp, done, err := openOut(flags.TripOut)
		if err != nil {
			return err
		}
		err = triplets.WriteCounts(fp, trps, cnts)
		done()
		if err != nil {
			return err
		}
	}

	if flags.Logo != "" {
		warnExists(flags.Logo)
		if err := logo.WriteFile(flags.Logo, single, m.Ncol()); err != nil {
			return err
		}
	}
	return nil
}
