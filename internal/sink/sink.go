// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sink writes scan results as the tool's flat, unquoted CSV
// match report. It is the mirror image of blast.ParseTabular's manual
// field-splitting reader: rows are written directly to a bufio.Writer
// rather than through encoding/csv, because the format's "no quoting" contract means a
// field containing a comma is transliterated rather than escaped, and
// encoding/csv has no way to suppress its own RFC 4180 quoting.
package sink

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/kortschak/motifscan/catalog"
	"github.com/kortschak/motifscan/internal/scanner"
)

// Header names the report's columns, in emission order.
var Header = []string{"header", "pattern_name", "pattern_sequence", "position", "strand", "context"}

// transliterate replaces commas with semicolons, since the report has
// no quoting mechanism to protect an embedded comma.
var transliterate = strings.NewReplacer(",", ";")

// Writer emits match rows to an underlying stream.
type Writer struct {
	w   *bufio.Writer
	set *catalog.PatternSet
}

// NewWriter returns a Writer that resolves Match.Pattern indices
// against set when formatting rows.
func NewWriter(w io.Writer, set *catalog.PatternSet) *Writer {
	return &Writer{w: bufio.NewWriter(w), set: set}
}

// WriteHeader writes the column header row.
func (s *Writer) WriteHeader() error {
	_, err := s.w.WriteString(strings.Join(Header, ",") + "\n")
	return err
}

// WriteMatch writes one result row. Pattern and sequence names are
// transliterated per transliterate before being written, since the
// format affords no quoting.
func (s *Writer) WriteMatch(m scanner.Match) error {
	p := s.set.Patterns[m.Pattern]
	_, err := s.w.WriteString(
		transliterate.Replace(m.Header) + "," +
			transliterate.Replace(p.Name) + "," +
			transliterate.Replace(p.Sequence) + "," +
			strconv.Itoa(m.Position) + "," +
			m.Strand.String() + "," +
			transliterate.Replace(string(m.Context)) + "\n",
	)
	return err
}

// Flush flushes any buffered output to the underlying writer.
func (s *Writer) Flush() error { return s.w.Flush() }
