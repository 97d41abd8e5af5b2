// 12 May 2021

// Package alphabet maps residue characters to the dense codes used
// by the counting routines and back again. The alphabet is fixed:
// twenty amino acids and the gap character, coded 0 to 20.
// The mapping is a little closed hash. Take the upper case character,
// reduce it modulo 29 and look in a 29 entry table. The table is
// filled for exactly the 21 characters we care about. Every other
// bucket holds the gap code, so an X, a B or any other junk quietly
// becomes a gap. That is not an accident. A symbol we do not know is
// treated as the absence of a residue.
package alphabet

import (
	"fmt"

	"github.com/andrew-torda/matrix"

	. "github.com/andrew-torda/msastats/pkg/seq/common"
)

const (
	NSym   = 21 // twenty amino acids plus the gap
	GapNdx = 20 // code for the gap character

	nBucket = 29 // size of the closed hash table
)

// symbols holds the character for each code, so symbols[3] is the
// character whose code is 3.
var symbols = [NSym]byte{
	'A', 'R', 'N', 'D', 'C', 'Q', 'E', 'G', 'H', 'I',
	'L', 'K', 'M', 'F', 'P', 'S', 'T', 'W', 'Y', 'V', GapChar}

// ndxTab is the closed hash table. ndxTab[c % 29] gives the code for
// an upper case character c. The 21 characters above land in distinct
// buckets, which one can check by hand, or by running the tests.
var ndxTab [nBucket]uint8

func init() {
	for i := range ndxTab {
		ndxTab[i] = GapNdx
	}
	for i, c := range symbols {
		ndxTab[c%nBucket] = uint8(i)
	}
}

// upper folds a lower case letter to upper case. It only knows about
// ascii letters, which is all that can appear in a sequence.
func upper(c byte) byte {
	const diff = 'a' - 'A'
	if 'a' <= c && c <= 'z' {
		return c - diff
	}
	return c
}

// Ndx returns the code for a residue character. Anything outside the
// canonical set comes back as the gap code.
func Ndx(c byte) uint8 { return ndxTab[upper(c)%nBucket] }

// Sym returns the character for a code. Codes outside [0,20] are a
// caller error.
func Sym(code uint8) (byte, error) {
	if code >= NSym {
		return 0, fmt.Errorf("symbol code %d out of range, max is %d", code, NSym-1)
	}
	return symbols[code], nil
}

// Encode converts a matrix of residue characters to codes, in place.
// It cannot fail. Unrecognised characters degrade to the gap code.
func Encode(msa *matrix.BMatrix2d) {
	for _, row := range msa.Mat {
		for i, c := range row {
			row[i] = ndxTab[upper(c)%nBucket]
		}
	}
}

// Decode converts a matrix of codes back to characters, in place.
// It is the inverse of Encode for the canonical alphabet, but lossy
// for anything that was folded to a gap on the way in.
// A code outside [0,20] means the matrix was never encoded, or has
// been trampled on, so we stop at the first one we see.
func Decode(msa *matrix.BMatrix2d) error {
	for n, row := range msa.Mat {
		for i, code := range row {
			if code >= NSym {
				return fmt.Errorf(
					"decode: code %d at row %d col %d out of range", code, n, i)
			}
			row[i] = symbols[code]
		}
	}
	return nil
}
