// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// motifscan-inspect is a read-only auxiliary tool that reports
// per-record IDs and sequence lengths from a FASTA file and echoes a loaded
// catalog in FASTA form, to help a user sanity-check inputs before
// running motifscan. It reads whole records into memory via biogo's
// FASTA reader and is not part of the streaming hot path.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kortschak/motifscan/catalog"
	"github.com/kortschak/motifscan/internal/scanner"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s <fasta_file> [patterns_file]

Reports the ID (header text up to the first space or tab) and
sequence length of every record in fasta_file
(plain or gzip-compressed), and, if patterns_file is given, echoes the
loaded catalog back in FASTA form. This tool is read-only and does not
perform a motif scan.
`, os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(args[0], optionalArg(args, 1)); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func optionalArg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}

func run(fastaPath, patternsPath string) error {
	src, err := scanner.Open(fastaPath)
	if err != nil {
		return err
	}
	defer src.Close()

	sc := seqio.NewScanner(fasta.NewReader(src, linear.NewSeq("", nil, alphabet.DNA)))
	var records, total int
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		fmt.Printf("%s\t%d\n", seq.ID, seq.Len())
		records++
		total += seq.Len()
	}
	if err := sc.Error(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %d records, %d total bases\n", fastaPath, records, total)

	if patternsPath == "" {
		return nil
	}
	set, err := catalog.Load(patternsPath, false)
	if err != nil {
		return err
	}
	for _, p := range set.Patterns {
		fmt.Println(p.Format())
	}
	fmt.Fprintf(os.Stderr, "%s: %d patterns, longest %d bytes\n", patternsPath, len(set.Patterns), set.MaxLength)
	return nil
}
