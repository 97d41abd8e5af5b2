// 2 Aug 2020
// Package white removes white space from byte slices, in place.
// It exists so the fasta reader does not allocate while cleaning
// up sequence data.

package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// Remove acts on a byte slice, in place, and removes all the white
// space. The slice is shortened, but the capacity is unchanged, so
// the caller keeps his buffer.
func Remove(s *[]byte) {
	t := *s
	n := 0
	for _, c := range t {
		if !asciiSpace[c] {
			t[n] = c
			n++
		}
	}
	*s = t[:n]
}
