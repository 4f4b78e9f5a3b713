// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"github.com/kortschak/motifscan/automaton"
	"github.com/kortschak/motifscan/internal/revcomp"
)

// Processor is a chunked, bounded-memory scanner for one FASTA record
// at a time. It accumulates incoming sequence bytes in a forward
// buffer and a parallel case-folded buffer, flushing a prefix of both
// through the automaton on both strands once the buffered length
// passes a watermark. Each flush re-scans its window from the trie
// root, so the last maxPatternLen-1 bytes of the window it just
// scanned are retained, not discarded, along with the unscanned tail:
// the next flush's window therefore overlaps the previous one by
// maxPatternLen-1 bytes, which is exactly enough window for any
// pattern straddling the cut to be fully contained in one flush or
// the other. A match is reported the first time its span becomes
// fully visible; reported tracks how far that has progressed so a
// match re-discovered in the overlap of a later flush is not reported
// twice.
type Processor struct {
	a   *automaton.Automaton
	cfg Config

	flushAt int // effective watermark, >= a.MaxPatternLen()
	carry   int // a.MaxPatternLen() - 1, clamped to 0

	header       string
	forward      []byte // original-case sequence bytes buffered so far
	folded       []byte // case-folded view of forward, same length
	globalOffset int     // forward[0] corresponds to this 0-based record position
	reported     int     // absolute end coordinate up to which matches have already been reported

	// scratch buffers reused across flushes to avoid reallocating on
	// every call.
	revBuf    []byte
	revFolded []byte
	hits      []automaton.Hit
}

// NewProcessor returns a Processor that matches against a using cfg.
func NewProcessor(a *automaton.Automaton, cfg Config) *Processor {
	maxLen := a.MaxPatternLen()
	carry := maxLen - 1
	if carry < 0 {
		carry = 0
	}
	return &Processor{
		a:       a,
		cfg:     cfg,
		flushAt: clampFlushThreshold(cfg.FlushThreshold, maxLen),
		carry:   carry,
	}
}

// Reset begins a new record with the given header, discarding any
// buffered bytes from the previous record.
func (p *Processor) Reset(header string) {
	p.header = header
	p.forward = p.forward[:0]
	p.folded = p.folded[:0]
	p.globalOffset = 0
	p.reported = 0
}

// Ingest appends data (already whitespace-stripped sequence bytes) to
// the record currently being processed. When final is true, data is
// the last chunk of the record and every buffered byte is flushed,
// regardless of the configured watermark. Matches are reported to
// emit as they are found; each Match.Context is a freshly allocated
// copy of the relevant buffer range, so emit may retain it.
func (p *Processor) Ingest(data []byte, final bool, emit func(Match)) {
	p.forward = append(p.forward, data...)
	p.folded = fold(p.folded, p.forward, p.cfg.IgnoreCase)

	var flushLen int
	if final {
		flushLen = len(p.forward)
	} else if len(p.forward) >= p.flushAt {
		flushLen = len(p.forward) - p.carry
	} else {
		return
	}
	if flushLen <= 0 {
		return
	}

	skipBefore := p.reported
	windowEnd := p.globalOffset + flushLen
	p.scanForward(flushLen, skipBefore, emit)
	p.scanReverse(flushLen, skipBefore, emit)
	p.reported = windowEnd

	if final {
		p.forward = p.forward[:0]
		p.folded = p.folded[:0]
		p.globalOffset = 0
		p.reported = 0
		return
	}

	// Discard only up to flushLen-carry, not flushLen: the last carry
	// bytes of the window just scanned are kept along with the
	// unscanned tail, so the next flush's window overlaps this one by
	// carry bytes and any pattern straddling the cut is fully inside
	// one window or the other.
	discard := flushLen - p.carry
	if discard < 0 {
		discard = 0
	}
	tail := len(p.forward) - discard
	copy(p.forward[:tail], p.forward[discard:])
	p.forward = p.forward[:tail]
	copy(p.folded[:tail], p.folded[discard:])
	p.folded = p.folded[:tail]
	p.globalOffset += discard
}

// scanForward runs the automaton over the folded forward buffer's
// first n bytes and reports hits at their forward-strand coordinates,
// skipping any whose span was already reportable before skipBefore
// (already reported by an earlier, overlapping flush).
func (p *Processor) scanForward(n, skipBefore int, emit func(Match)) {
	st := p.a.Start()
	p.hits = p.hits[:0]
	for i := 0; i < n; i++ {
		p.hits = st.Step(p.folded[i], i, p.hits[:0])
		for _, h := range p.hits {
			patLen := p.a.PatternLen(h.Pattern)
			start := h.End - patLen + 1
			position := p.globalOffset + start
			if position+patLen-1 < skipBefore {
				continue
			}
			lo, hi := contextBounds(start, patLen, n, p.cfg.Context)
			emit(Match{
				Header:   p.header,
				Pattern:  h.Pattern,
				Position: position,
				Strand:   Forward,
				Context:  cloneRange(p.forward, lo, hi),
			})
		}
	}
}

// scanReverse computes the reverse complement of the first n bytes of
// the forward buffer, matches it, and reports hits translated back to
// forward-strand leftmost coordinates, applying the same skipBefore
// filter as scanForward against each hit's forward-strand end
// coordinate.
func (p *Processor) scanReverse(n, skipBefore int, emit func(Match)) {
	if cap(p.revBuf) < n {
		p.revBuf = make([]byte, n)
	}
	p.revBuf = p.revBuf[:n]
	revcomp.ReverseComplement(p.revBuf, p.forward[:n])
	p.revFolded = fold(p.revFolded, p.revBuf, p.cfg.IgnoreCase)

	st := p.a.Start()
	p.hits = p.hits[:0]
	for i := 0; i < n; i++ {
		p.hits = st.Step(p.revFolded[i], i, p.hits[:0])
		for _, h := range p.hits {
			patLen := p.a.PatternLen(h.Pattern)
			start := h.End - patLen + 1
			forwardStart := p.globalOffset + (n - 1 - h.End)
			if forwardStart+patLen-1 < skipBefore {
				continue
			}
			lo, hi := contextBounds(start, patLen, n, p.cfg.Context)
			emit(Match{
				Header:   p.header,
				Pattern:  h.Pattern,
				Position: forwardStart,
				Strand:   Reverse,
				Context:  cloneRange(p.revBuf, lo, hi),
			})
		}
	}
}

// contextBounds computes the clipped [lo, hi) context window around a
// match spanning [start, start+patLen) within a buffer of length n.
func contextBounds(start, patLen, n, context int) (lo, hi int) {
	lo = start - context
	if lo < 0 {
		lo = 0
	}
	hi = start + patLen + context
	if hi > n {
		hi = n
	}
	return lo, hi
}

func cloneRange(buf []byte, lo, hi int) []byte {
	out := make([]byte, hi-lo)
	copy(out, buf[lo:hi])
	return out
}
