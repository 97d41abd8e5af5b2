// 2 Aug 2020

package white_test

import (
	"testing"

	"github.com/andrew-torda/msastats/pkg/white"
)

func TestRemove(t *testing.T) {
	pairs := [][2]string{
		{"abc", "abc"},
		{" a b c ", "abc"},
		{"\ta\nb\r c\v\f", "abc"},
		{"", ""},
		{" \n\t ", ""},
	}
	for _, p := range pairs {
		b := []byte(p[0])
		white.Remove(&b)
		if string(b) != p[1] {
			t.Fatalf("given %q got %q want %q", p[0], b, p[1])
		}
	}
}

func TestRemoveKeepsCap(t *testing.T) {
	b := make([]byte, 0, 64)
	b = append(b, " a b "...)
	white.Remove(&b)
	if cap(b) != 64 {
		t.Fatal("capacity changed, got", cap(b))
	}
}
