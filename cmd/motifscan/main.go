// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// motifscan scans a FASTA file, plain or gzip-compressed, for every
// occurrence of a catalog of short DNA patterns on both the forward
// and reverse-complement strands, reporting each hit with its
// coordinate, strand, and surrounding sequence context as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/kortschak/motifscan/automaton"
	"github.com/kortschak/motifscan/catalog"
	"github.com/kortschak/motifscan/internal/scanner"
	"github.com/kortschak/motifscan/internal/sink"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s <fasta_file> <patterns_file> [context] [sequence_only] [ignore_case] >out.csv 2>out.log

Positional arguments:
  fasta_file     FASTA input, plain or gzip-compressed
  patterns_file  two-column (name,sequence) CSV catalog, header discarded
  context        bytes of sequence context on each side of a match (default 0)
  sequence_only  reserved; accepted but currently has no effect (default 0)
  ignore_case    match case-insensitively when non-zero (default 0)

Non-numeric trailing arguments are treated as 0. Matches are written
to standard output as CSV; diagnostics go to standard error.
`, os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}
	fastaPath, patternsPath := args[0], args[1]
	contextSize := intArg(args, 2)
	_ = intArg(args, 3) // sequence_only: reserved, no-op
	ignoreCase := intArg(args, 4) != 0

	if err := run(fastaPath, patternsPath, contextSize, ignoreCase); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

// intArg returns the integer value of args[i], or 0 if i is out of
// range or the argument does not parse as a base-10 integer.
func intArg(args []string, i int) int {
	if i >= len(args) {
		return 0
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0
	}
	return n
}

func run(fastaPath, patternsPath string, contextSize int, ignoreCase bool) error {
	set, err := catalog.Load(patternsPath, ignoreCase)
	if err != nil {
		return err
	}
	log.Printf("loaded %d patterns from %s", len(set.Patterns), patternsPath)

	a := automaton.Build(set.FoldedSequences())
	log.Printf("built automaton with longest pattern %d bytes", a.MaxPatternLen())

	src, err := scanner.Open(fastaPath)
	if err != nil {
		return err
	}
	defer src.Close()

	cfg := scanner.Config{
		FlushThreshold: scanner.DefaultFlushThreshold,
		Context:        contextSize,
		IgnoreCase:     ignoreCase,
	}
	proc := scanner.NewProcessor(a, cfg)
	driver := scanner.NewDriver(proc)

	w := sink.NewWriter(os.Stdout, set)
	if err := w.WriteHeader(); err != nil {
		return err
	}

	var matches int
	err = driver.Drive(context.Background(), src, func(m scanner.Match) {
		matches++
		if werr := w.WriteMatch(m); werr != nil {
			log.Print(werr)
		}
	})
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	log.Printf("scanned %s: %d matches", fastaPath, matches)
	return err
}
