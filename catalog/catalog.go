// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog loads and holds the pattern catalog: the set of DNA
// motifs that a scan searches for.
package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// ErrorKind classifies a catalog loading failure.
type ErrorKind int

const (
	// IOError indicates the catalog file could not be opened or read.
	IOError ErrorKind = iota
	// FormatError indicates a row was missing a required field or
	// carried an empty sequence.
	FormatError
	// OversizedError indicates a row exceeded a configured bound.
	OversizedError
)

func (k ErrorKind) String() string {
	switch k {
	case IOError:
		return "catalog I/O error"
	case FormatError:
		return "catalog format error"
	case OversizedError:
		return "catalog oversized input"
	default:
		return "catalog error"
	}
}

// Error reports a catalog loading failure along with its kind, so
// callers can distinguish the taxonomy from spec (CatalogIoError /
// CatalogFormatError / OversizedInputError) without string matching.
type Error struct {
	Kind ErrorKind
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %v", e.Kind, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Pattern is one entry of the catalog: its name, its sequence as given
// in the catalog (original casing preserved), and the case-folded form
// used for matching when ignore-case is requested.
type Pattern struct {
	Name     string
	Sequence string
	Folded   string

	// seq is a diagnostic-only view of Sequence, used for FASTA-style
	// logging (see Pattern.Format); it never participates in matching.
	seq *linear.Seq
}

// Length returns the byte length of the pattern's sequence.
func (p Pattern) Length() int { return len(p.Sequence) }

// Format renders the pattern as a single FASTA record, 60 columns
// wide.
func (p Pattern) Format() string {
	return fmt.Sprintf("%60a", p.seq)
}

// PatternSet is an immutable, loaded catalog of patterns.
type PatternSet struct {
	Patterns   []Pattern
	IgnoreCase bool
	MaxLength  int
}

// MaxCatalogPatternLength bounds the length of any single catalog
// sequence; rows exceeding it are rejected with OversizedError rather
// than accepted and silently truncated, rather than silently truncating, as a
// dynamic-growth reimplementation of the original's fixed buffers.
const MaxCatalogPatternLength = 1 << 20

// Load reads a two-column (name, sequence) CSV catalog from path,
// discarding the header row. Commas inside a field are not supported
// (the format has no quoting, per spec); rows are split on the first
// comma only, following blast.ParseTabular's manual bufio.Scanner
// field-splitting idiom rather than encoding/csv, whose RFC 4180
// quoting would silently violate that no-quoting contract.
func Load(path string, ignoreCase bool) (*PatternSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: IOError, Path: path, Err: err}
	}
	defer f.Close()

	set := &PatternSet{IgnoreCase: ignoreCase}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), MaxCatalogPatternLength+4096)

	lineNo := 0
	if sc.Scan() {
		lineNo++ // header row, discarded
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		comma := strings.IndexByte(line, ',')
		if comma < 0 {
			return nil, &Error{Kind: FormatError, Path: path, Line: lineNo,
				Err: fmt.Errorf("row missing name,sequence separator: %q", line)}
		}
		name := strings.TrimSpace(line[:comma])
		seq := strings.TrimSpace(line[comma+1:])
		if name == "" || seq == "" {
			return nil, &Error{Kind: FormatError, Path: path, Line: lineNo,
				Err: fmt.Errorf("row missing required field: %q", line)}
		}
		if len(seq) > MaxCatalogPatternLength {
			return nil, &Error{Kind: OversizedError, Path: path, Line: lineNo,
				Err: fmt.Errorf("pattern sequence exceeds %d bytes", MaxCatalogPatternLength)}
		}

		p := Pattern{Name: name, Sequence: seq}
		if ignoreCase {
			p.Folded = strings.ToLower(seq)
		} else {
			p.Folded = seq
		}
		p.seq = linear.NewSeq(name, alphabet.BytesToLetters([]byte(seq)), alphabet.DNAredundant)

		if len(seq) > set.MaxLength {
			set.MaxLength = len(seq)
		}
		set.Patterns = append(set.Patterns, p)
	}
	if err := sc.Err(); err != nil {
		kind := IOError
		if err == bufio.ErrTooLong {
			kind = OversizedError
		}
		return nil, &Error{Kind: kind, Path: path, Err: err}
	}

	return set, nil
}

// FoldedSequences returns the case-folded byte sequence of every
// pattern in catalog order, suitable for automaton.Build.
func (s *PatternSet) FoldedSequences() [][]byte {
	out := make([][]byte, len(s.Patterns))
	for i, p := range s.Patterns {
		out[i] = []byte(p.Folded)
	}
	return out
}

