// 9 Jun 2021
// Read up a multiple sequence alignment and tally the weighted
// symbol counts that contact prediction methods want.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/andrew-torda/msastats/pkg/msastats"
	. "github.com/andrew-torda/msastats/pkg/seq/common"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [infile [outfile]]")
	long := `Do not just type the command name. It will wait on input from stdin.
Given no arguments, read and write from stdin / stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags msastats.CmdFlag
	var infile, outfile string

	flag.StringVar(&flags.Wgts, "w", "", "filename with one weight per sequence")
	flag.StringVar(&flags.Pairs, "p", "", "filename to write pair counts to")
	flag.StringVar(&flags.TripIn, "3", "", "filename with a list of column triples")
	flag.StringVar(&flags.TripOut, "o3", "", "filename to write triplet counts to")
	flag.StringVar(&flags.Logo, "l", "", "filename to write a png frequency logo to")
	flag.BoolVar(&flags.Flat, "f", false, "input is flat, one sequence per line")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
	}

	if err := msastats.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	} else {
		os.Exit(ExitSuccess)
	}
}
