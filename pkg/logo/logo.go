// 2 Jun 2021

// Package logo draws a little frequency logo from single column
// counts. Each column of the alignment becomes a stack of letters,
// most frequent at the top, letter height proportional to the
// weighted frequency. Gaps are not drawn, so a column full of gaps
// comes out as a short stack, which is what you want to see.
// The result is a png. It will not win prizes, but it is handy for
// eyeballing an alignment before feeding the counts to something
// more serious.
package logo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"

	"github.com/golang/freetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/msastats/pkg/alphabet"
	"github.com/andrew-torda/msastats/pkg/counts"
)

const (
	colWdth = 24  // pixels per alignment column
	colHght = 120 // pixels for a frequency of one
	minHght = 2.0 // do not bother drawing anything smaller
)

// colorFor groups residues roughly by chemistry. Acidic red, basic
// blue, polar green, the rest black.
func colorFor(c byte) color.Color {
	switch c {
	case 'D', 'E':
		return color.RGBA{0xc0, 0x20, 0x20, 0xff}
	case 'K', 'R', 'H':
		return color.RGBA{0x20, 0x20, 0xc0, 0xff}
	case 'S', 'T', 'N', 'Q':
		return color.RGBA{0x20, 0x80, 0x20, 0xff}
	}
	return color.Black
}

// Write renders the logo for a single-count tensor with ncol
// columns, as produced by counts.Single, and writes a png.
func Write(fp io.Writer, single []float64, ncol int) error {
	if len(single) != counts.SingleSize(ncol) {
		return fmt.Errorf("counts slice has %d entries, need %d",
			len(single), counts.SingleSize(ncol))
	}
	fnt, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing builtin font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, ncol*colWdth, colHght))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	ctxt := freetype.NewContext()
	ctxt.SetDPI(72) // so font sizes are pixels
	ctxt.SetFont(fnt)
	ctxt.SetDst(img)
	ctxt.SetClip(img.Bounds())

	type fq struct {
		sym  byte
		frac float64
	}
	for i := 0; i < ncol; i++ {
		col := single[i*alphabet.NSym : (i+1)*alphabet.NSym]
		var total float64
		for _, v := range col {
			total += v
		}
		if total == 0 {
			continue // no observations, leave the column empty
		}
		var stack []fq
		for a := uint8(0); a < alphabet.GapNdx; a++ { // gap not drawn
			if col[a] == 0 {
				continue
			}
			sym, _ := alphabet.Sym(a)
			stack = append(stack, fq{sym, col[a] / total})
		}
		sort.Slice(stack, func(x, y int) bool {
			return stack[x].frac > stack[y].frac
		})
		y := 0.0
		for _, s := range stack {
			h := s.frac * colHght
			if h < minHght {
				break // the rest are even smaller
			}
			y += h
			ctxt.SetFontSize(h)
			ctxt.SetSrc(image.NewUniform(colorFor(s.sym)))
			pt := freetype.Pt(i*colWdth+2, int(y))
			if _, err := ctxt.DrawString(string(s.sym), pt); err != nil {
				return fmt.Errorf("drawing column %d: %w", i, err)
			}
		}
	}
	return png.Encode(fp, img)
}

// WriteFile is Write, but to a named file.
func WriteFile(fname string, single []float64, ncol int) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("logo file %v: %w", fname, err)
	}
	defer fp.Close()
	return Write(fp, single, ncol)
}
