// 3 Aug 2020
// Readers for the flat alignment format and for weight files.
// Both formats are trivial, so we do not bother with a buffered
// reader. We map the file, walk it and copy out what we need before
// unmapping. Alignments can be hundreds of MB, which is where the
// mapping pays off.

package msa

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/edsrzf/mmap-go"
)

// slurp gives us the contents of a file, mapped if we have a real
// file, read conventionally if the name is empty and we are working
// from standard input. The caller gets the bytes and a function to
// call when finished with them.
func slurp(fname string) ([]byte, func(), error) {
	if fname == "" {
		b, err := io.ReadAll(os.Stdin)
		return b, func() {}, err
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	done := func() { mm.Unmap(); fp.Close() }
	return mm, done, nil
}

// ReadFlat reads the flat alignment format, one sequence per line,
// no names, no comments. This is what ccmpred-style programs call
// psicov format. Blank lines are ignored. All rows must have the
// same length.
func ReadFlat(fname string) (*MSA, error) {
	buf, done, err := slurp(fname)
	if err != nil {
		return nil, err
	}
	defer done()

	var rows [][]byte
	for _, line := range bytes.Split(buf, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r \t")
		if len(line) == 0 {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no sequences found in %s", fname)
	}
	ncol := len(rows[0])
	for i, r := range rows {
		if len(r) != ncol {
			return nil, fmt.Errorf(
				"%s line %d has %d sites, first line has %d", fname, i+1, len(r), ncol)
		}
	}
	m := New(len(rows), ncol)
	for i, r := range rows { // copy before the mapping goes away
		copy(m.Mat.Mat[i], r)
	}
	return m, nil
}

// ReadWeights reads one weight per sequence, whitespace separated.
// The number of weights must match the number of rows in the
// alignment and weights may not be negative. There is no
// normalisation. The weights mean whatever the program that wrote
// them wanted them to mean.
func ReadWeights(fname string, nrow int) ([]float64, error) {
	buf, done, err := slurp(fname)
	if err != nil {
		return nil, err
	}
	defer done()

	fields := bytes.Fields(buf)
	if len(fields) != nrow {
		return nil, fmt.Errorf(
			"weights file %s has %d entries, alignment has %d sequences",
			fname, len(fields), nrow)
	}
	w := make([]float64, nrow)
	for i, f := range fields {
		if w[i], err = strconv.ParseFloat(string(f), 64); err != nil {
			return nil, fmt.Errorf("weights file %s entry %d: %w", fname, i+1, err)
		}
		if w[i] < 0 {
			return nil, fmt.Errorf(
				"weights file %s entry %d is negative (%g)", fname, i+1, w[i])
		}
	}
	return w, nil
}

// Uniform gives every sequence a weight of one. It is what you get
// if you do not have a weights file.
func Uniform(nrow int) []float64 {
	w := make([]float64, nrow)
	for i := range w {
		w[i] = 1
	}
	return w
}
