// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"context"
	"fmt"
	"io"
)

// readBufSize is the size of the raw reads the Driver issues against
// its input stream; it bounds how much sequence can accumulate in a
// single Ingest call and has no effect on which matches are reported,
// only on how often the Processor is given a chance to flush.
const readBufSize = 64 * 1024

// Driver reads a raw FASTA byte stream — one or more ">"-delimited
// records, whitespace interleaved freely within a sequence — and
// drives a Processor one record at a time, reporting every Match to
// the supplied callback. It runs as an incremental byte-at-a-time
// state machine so that records of any size, and reads of any size,
// produce the same set of matches (pattern, position and strand). The
// order of emission, and the clipping of Context at flush-window
// edges, can vary with read size for records longer than the flush
// watermark.
type Driver struct {
	proc *Processor
}

// NewDriver returns a Driver that feeds records to proc.
func NewDriver(proc *Processor) *Driver {
	return &Driver{proc: proc}
}

// Drive reads r to completion, splitting it into FASTA records and
// reporting every match found in any record via emit. It returns early
// if ctx is cancelled between reads.
func (d *Driver) Drive(ctx context.Context, r io.Reader, emit func(Match)) error {
	buf := make([]byte, readBufSize)
	var header []byte
	var seq []byte

	inHeader := false
	atLineStart := true
	started := false

	finalizeRecord := func() {
		if started {
			d.proc.Ingest(seq, true, emit)
			seq = seq[:0]
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			b := buf[i]

			if atLineStart && b == '>' {
				finalizeRecord()
				inHeader = true
				header = header[:0]
				atLineStart = false
				started = true
				continue
			}

			if inHeader {
				if b == '\n' {
					inHeader = false
					atLineStart = true
					d.proc.Reset(trimCR(header))
				} else {
					if len(header) >= MaxHeaderLength {
						return &Error{Kind: OversizedHeaderError, Err: fmt.Errorf("header exceeds %d bytes", MaxHeaderLength)}
					}
					header = append(header, b)
				}
				continue
			}

			if b == '\n' {
				atLineStart = true
				continue
			}
			atLineStart = false

			if !started {
				// Bytes before the first header are not part of any
				// record; ignore them.
				continue
			}
			switch b {
			case ' ', '\t', '\r':
				// whitespace within a sequence is ignored
			default:
				seq = append(seq, b)
			}
		}

		if len(seq) > 0 {
			d.proc.Ingest(seq, false, emit)
			seq = seq[:0]
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return &Error{Kind: InputIOError, Err: readErr}
		}
	}

	finalizeRecord()
	return nil
}

func trimCR(b []byte) string {
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return string(b)
}
