// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
)

// gzipMagic is the two leading bytes of every gzip stream (RFC 1952).
var gzipMagic = [2]byte{0x1f, 0x8b}

// Source is an opened FASTA input, transparently decompressed if it
// was gzip-compressed. Close releases the underlying file and, when
// applicable, the gzip reader.
type Source struct {
	io.Reader
	file *os.File
	gz   *gzip.Reader
}

// Close releases the resources backing the Source.
func (s *Source) Close() error {
	var gzErr error
	if s.gz != nil {
		gzErr = s.gz.Close()
	}
	fileErr := s.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// Open opens path and sniffs its first two bytes to decide whether it
// is gzip-compressed, returning a Source that yields the plain FASTA
// byte stream either way. compress/gzip has no transparent passthrough
// for non-gzip streams, so the sniff-and-wrap happens explicitly here.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: InputIOError, Err: err}
	}

	br := bufio.NewReaderSize(f, 64*1024)
	peek, err := br.Peek(2)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, &Error{Kind: InputIOError, Err: err}
	}

	if len(peek) == 2 && peek[0] == gzipMagic[0] && peek[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, &Error{Kind: DecompressionError, Err: fmt.Errorf("%s: %w", path, err)}
		}
		return &Source{Reader: gz, file: f, gz: gz}, nil
	}

	return &Source{Reader: br, file: f}, nil
}
