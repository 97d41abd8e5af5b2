// 10 Jun 2021

/*
Msastats reads a multiple sequence alignment and writes the weighted
symbol frequency counts used by contact prediction and
pseudo-likelihood methods.

The alignment can be fasta, or the flat format with one sequence per
line and no names. The alphabet is the twenty amino acids and the gap
character. Lower case is folded to upper case. Anything else, an X,
a B, whatever, is counted as a gap, so do not feed it nucleotides and
expect sense.

Sequence weights come from a file with one number per sequence,
whitespace separated. Without a weights file, every sequence counts
as one. Weights are used as given. Nothing is normalised.

The single counts, one row per site and one column per symbol, are
always written as csv. Pair counts over every ordered pair of
columns, triplet counts over a caller supplied list of column
triples and a png frequency logo are written on request.

Usage:
	msastats [flags] [input [output]]

The flags are:
	-w weightsfile
		Read one weight per sequence from this file.
	-p pairfile
		Tally pair counts and write the non-zero entries here.
	-3 tripletfile
		Read column triples, one "i j k" line each, and tally
		triplet counts for them.
	-o3 tripletcounts
		Write the triplet counts here instead of standard output.
	-l logofile
		Write a png frequency logo.
	-f
		The input is flat format, one sequence per line.
	-t
		Print timing information when finished.
*/
package main
