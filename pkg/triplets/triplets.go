// 20 May 2021

// Package triplets reads the caller's list of column triples and
// writes triplet counts back out. The file format is the simple one
// used by the ccmpred family. On input, one "i j k" triple per line.
// On output, a "# n" header, then one tab separated line per
// non-zero tensor entry, biggest counts first.
package triplets

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/andrew-torda/msastats/pkg/alphabet"
	"github.com/andrew-torda/msastats/pkg/counts"
)

// ReadList reads column triples, one per line, whitespace separated.
// Blank lines and lines starting with "#" are ignored. The columns
// are not checked against any alignment here. That happens in
// counts.Triplet, which knows the alignment.
func ReadList(fname string) ([]counts.Triple, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	var trps []counts.Triple
	scanner := bufio.NewScanner(fp)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return nil, fmt.Errorf(
				"%s line %d: want three columns, got %d", fname, nline, len(f))
		}
		var t counts.Triple
		for n, dst := range []*int{&t.I, &t.J, &t.K} {
			if *dst, err = strconv.Atoi(f[n]); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", fname, nline, err)
			}
		}
		trps = append(trps, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(trps) == 0 {
		return nil, fmt.Errorf("no triplets found in %s", fname)
	}
	return trps, nil
}

// entry is one non-zero tensor cell, flattened out for sorting.
type entry struct {
	i, j, k int
	a, b, c byte // residue characters, not codes
	w       float64
}

// WriteCounts writes the non-zero entries of a triplet count tensor.
// cnts must be the output of counts.Triplet for the same triplet
// list.
func WriteCounts(fp io.Writer, trps []counts.Triple, cnts []float64) error {
	if len(cnts) != counts.TripletSize(len(trps)) {
		return fmt.Errorf("counts slice has %d entries, need %d",
			len(cnts), counts.TripletSize(len(trps)))
	}
	var out []entry
	for t, trp := range trps {
		for a := uint8(0); a < alphabet.NSym; a++ {
			for b := uint8(0); b < alphabet.NSym; b++ {
				for c := uint8(0); c < alphabet.NSym; c++ {
					w := cnts[counts.TripletNdx(t, a, b, c)]
					if w == 0 {
						continue
					}
					ca, _ := alphabet.Sym(a)
					cb, _ := alphabet.Sym(b)
					cc, _ := alphabet.Sym(c)
					out = append(out,
						entry{trp.I, trp.J, trp.K, ca, cb, cc, w})
				}
			}
		}
	}
	sort.Slice(out, func(x, y int) bool { return out[x].w > out[y].w })

	if _, err := fmt.Fprintf(fp, "# %d\n", len(out)); err != nil {
		return err
	}
	for _, e := range out {
		_, err := fmt.Fprintf(fp, "%d\t%d\t%d\t%c\t%c\t%c\t%.8e\n",
			e.i, e.j, e.k, e.a, e.b, e.c, e.w)
		if err != nil {
			return err
		}
	}
	return nil
}
