// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sink

import (
	"bytes"
	"testing"

	"github.com/kortschak/motifscan/catalog"
	"github.com/kortschak/motifscan/internal/scanner"
)

func TestWriteHeaderAndMatch(t *testing.T) {
	set := &catalog.PatternSet{Patterns: []catalog.Pattern{{Name: "EcoRI, site", Sequence: "GAATTC"}}}
	var buf bytes.Buffer
	w := NewWriter(&buf, set)

	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	m := scanner.Match{Header: "chr1, region", Pattern: 0, Position: 42, Strand: scanner.Forward, Context: []byte("AAGAATTCGG")}
	if err := w.WriteMatch(m); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "header,pattern_name,pattern_sequence,position,strand,context\n" +
		"chr1; region,EcoRI; site,GAATTC,42,forward,AAGAATTCGG\n"
	if buf.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteMatchReverseStrand(t *testing.T) {
	set := &catalog.PatternSet{Patterns: []catalog.Pattern{{Name: "p", Sequence: "ACA"}}}
	var buf bytes.Buffer
	w := NewWriter(&buf, set)
	m := scanner.Match{Header: "s", Pattern: 0, Position: 0, Strand: scanner.Reverse, Context: []byte("TGT")}
	if err := w.WriteMatch(m); err != nil {
		t.Fatal(err)
	}
	w.Flush()
	if buf.String() != "s,p,ACA,0,reverse,TGT\n" {
		t.Errorf("got %q", buf.String())
	}
}
