// 14 May 2021

// Package msa holds a multiple sequence alignment as a dense,
// row-major byte matrix, one sequence per row, one aligned site per
// column. The cells hold residue characters when an alignment comes
// in from a file and codes from pkg/alphabet once it has been
// encoded. The counting routines in pkg/counts work on the coded
// form.
package msa

import (
	"fmt"
	"io"
	"os"

	"github.com/andrew-torda/matrix"

	"github.com/andrew-torda/msastats/pkg/alphabet"
)

// MSA is an alignment. Mat.Mat[n][i] is the cell for sequence n at
// column i. The backing store is one flat allocation, so a row is a
// contiguous slice and walking a row is cache friendly.
type MSA struct {
	Mat  *matrix.BMatrix2d
	cmmt []string // fasta comments, nil if the input had none
}

// New gives us an empty alignment of nrow sequences and ncol sites.
func New(nrow, ncol int) *MSA {
	return &MSA{Mat: matrix.NewBMatrix2d(nrow, ncol)}
}

// Nrow returns the number of sequences.
func (m *MSA) Nrow() int { nr, _ := m.Mat.Size(); return nr }

// Ncol returns the number of aligned sites.
func (m *MSA) Ncol() int { _, nc := m.Mat.Size(); return nc }

// Row returns one sequence as a slice into the backing store.
func (m *MSA) Row(n int) []byte { return m.Mat.Mat[n] }

// Cmmt returns the comment for sequence n, or "" if there is none.
func (m *MSA) Cmmt(n int) string {
	if m.cmmt == nil {
		return ""
	}
	return m.cmmt[n]
}

// Encode converts the alignment from characters to codes, in place.
func (m *MSA) Encode() { alphabet.Encode(m.Mat) }

// Decode converts the alignment from codes back to characters.
func (m *MSA) Decode() error { return alphabet.Decode(m.Mat) }

// FromStrings builds an alignment from a slice of strings. It is
// mostly for testing, like Str2SeqGrp used to be.
func FromStrings(rows []string) (*MSA, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no sequences given")
	}
	ncol := len(rows[0])
	m := New(len(rows), ncol)
	for i, r := range rows {
		if len(r) != ncol {
			return nil, fmt.Errorf(
				"sequence %d has %d sites, first has %d", i, len(r), ncol)
		}
		copy(m.Mat.Mat[i], r)
	}
	return m, nil
}

// Readfile reads an alignment from a file, or standard input if the
// name is empty. If flat is set, the file is one row of characters
// per line. Otherwise it is fasta.
func Readfile(fname string, flat bool) (*MSA, error) {
	if flat {
		return ReadFlat(fname)
	}
	var fp io.ReadCloser = os.Stdin
	if fname != "" {
		var err error
		if fp, err = os.Open(fname); err != nil {
			return nil, err
		}
		defer fp.Close()
	}
	return ReadFasta(fp)
}
