// Reader for fasta format alignments.
// The machinery is a little lexer. One goroutine reads the input and
// sends lumps of text on a channel. An item is terminated by a
// newline if we are in a comment, or a comment character ">" if we
// are in a sequence. The consumer is a state machine with one
// function for comments and one for sequence data.

package msa

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/andrew-torda/msastats/pkg/white"
)

const (
	nl       = '\n'
	cmmtChar = '>'
)

type item struct {
	data     []byte
	complete bool
}

type lexer struct {
	input    []byte
	ichan    chan *item
	rdr      io.Reader
	itempool sync.Pool
	cmmts    []string
	seqs     [][]byte
	cmmt     string // partial comment
	seq      []byte // partial sequence
	term     byte
	err      error
}

const defaultRdSize = 4 * 1024

var rdsize int = defaultRdSize

// setFastaRdSize is only used during benchmarking and testing, to
// force sequences to span buffers.
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

func newItem() interface{} { return new(item) }

// next reads from the input and sends items to ichan. An item is
// terminated by l.term, the end of the buffer, or the end of input.
// On end of input we send one last, empty, complete item so the
// consumer flushes whatever it was collecting.
func (l *lexer) next() {
	l.itempool.New = newItem
	for {
		item := l.itempool.Get().(*item)
		if len(l.input) == 0 {
			buf := make([]byte, rdsize)
			n, err := l.rdr.Read(buf)
			if n == 0 {
				if err != nil && err != io.EOF {
					l.err = err // a real error, not just end of input
				}
				item.data = nil
				item.complete = true
				l.ichan <- item
				close(l.ichan)
				return
			}
			l.input = buf[:n]
		}

		if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
			item.data = l.input // no terminator found, so just send
			l.input = nil       // back whatever we have in the buffer
			item.complete = false
		} else { //                We did find a terminator
			item.data = l.input[:ndx]
			item.complete = true
			l.input = l.input[ndx+1:]
			if l.term == nl { // comment and sequence terminators
				l.term = cmmtChar // alternate
			} else {
				l.term = nl
			}
		}
		l.ichan <- item
	}
}

type stateFn func(*lexer) stateFn

// gseq collects sequence data until the next comment starts.
func gseq(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil { // nil means the channel closed
		return nil
	}
	defer l.itempool.Put(item)

	white.Remove(&item.data)
	l.seq = append(l.seq, item.data...)
	if item.complete {
		if len(l.seq) == 0 {
			l.err = errors.New("zero length sequence after " + l.cmmt)
			return nil
		}
		l.cmmts = append(l.cmmts, l.cmmt)
		l.seqs = append(l.seqs, l.seq)
		l.cmmt = ""
		l.seq = nil
		return gcmmt
	}
	return gseq
}

// gcmmt collects a comment line.
func gcmmt(l *lexer) stateFn {
	item := <-l.ichan
	if item == nil || l.err != nil {
		return nil
	}
	defer l.itempool.Put(item)
	if item.complete && item.data == nil && l.cmmt == "" && l.seq == nil {
		return nil // clean end of input between sequences
	}

	l.cmmt = l.cmmt + string(item.data)
	if item.complete {
		l.cmmt = strings.TrimLeft(l.cmmt, " >\t")
		item.complete = false
		return gseq
	}
	return gcmmt
}

// ReadFasta reads a fasta formatted alignment. All sequences must
// have the same length. Gaps are kept, since an alignment without
// its gaps is not an alignment.
func ReadFasta(rdr io.Reader) (*MSA, error) {
	l := lexer{rdr: rdr, ichan: make(chan *item, 2), term: nl}

	go l.next()
	for state := gcmmt; state != nil; {
		state = state(&l)
	}
	for range l.ichan { // drain, so the reader goroutine can finish
	}
	if l.err != nil {
		return nil, l.err
	}
	if len(l.seqs) == 0 {
		return nil, errors.New("no sequences found")
	}

	ncol := len(l.seqs[0])
	for i, s := range l.seqs {
		if len(s) != ncol {
			return nil, fmt.Errorf(
				"sequence %d (%s) has %d sites, first sequence has %d",
				i+1, trimStr(l.cmmts[i], 40), len(s), ncol)
		}
	}
	m := New(len(l.seqs), ncol)
	m.cmmt = l.cmmts
	for i, s := range l.seqs {
		copy(m.Mat.Mat[i], s)
	}
	return m, nil
}

// trimStr trims a string to n bytes if it is longer.
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
