// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package automaton

import (
	"reflect"
	"testing"
)

func collect(a *Automaton, input []byte) []Hit {
	var got []Hit
	a.Match(input, func(end, pattern int) {
		got = append(got, Hit{Pattern: pattern, End: end})
	})
	return got
}

func TestOverlapSupport(t *testing.T) {
	// Patterns "AA" (0) and "AAA" (1) against "AAAA" should give three
	// "AA" matches at positions 0,1,2 and two "AAA" matches at 0,1.
	a := Build([][]byte{[]byte("AA"), []byte("AAA")})
	got := collect(a, []byte("AAAA"))

	wantStarts := map[int][]int{0: nil, 1: nil}
	for _, h := range got {
		start := h.End - a.PatternLen(h.Pattern) + 1
		wantStarts[h.Pattern] = append(wantStarts[h.Pattern], start)
	}
	if !reflect.DeepEqual(wantStarts[0], []int{0, 1, 2}) {
		t.Errorf("AA starts = %v, want [0 1 2]", wantStarts[0])
	}
	if !reflect.DeepEqual(wantStarts[1], []int{0, 1}) {
		t.Errorf("AAA starts = %v, want [0 1]", wantStarts[1])
	}
}

func TestSuffixPattern(t *testing.T) {
	// "ATGC" (0) and "TGC" (1), TGC is a suffix of ATGC. Scanning
	// "xATGCy" must yield both at positions 1 and 2.
	a := Build([][]byte{[]byte("ATGC"), []byte("TGC")})
	got := collect(a, []byte("xATGCy"))

	var starts []int
	for _, h := range got {
		starts = append(starts, h.End-a.PatternLen(h.Pattern)+1)
	}
	if len(got) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(got), got)
	}
	seen := map[int]bool{}
	for _, s := range starts {
		seen[s] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("starts = %v, want 1 and 2 present", starts)
	}
}

func TestDeterministicOrder(t *testing.T) {
	a := Build([][]byte{[]byte("A"), []byte("AA")})
	for i := 0; i < 5; i++ {
		got := collect(a, []byte("AAA"))
		if len(got) != 5 { // A at 0,1,2 and AA at 1,2 (end-indices)
			t.Fatalf("run %d: got %d hits, want 5: %v", i, len(got), got)
		}
		for j := 1; j < len(got); j++ {
			if got[j].End < got[j-1].End {
				t.Fatalf("run %d: hits not end-index ascending: %v", i, got)
			}
		}
	}
}

func TestEmptyPattern(t *testing.T) {
	a := Build([][]byte{[]byte(""), []byte("A")})
	got := collect(a, []byte("AA"))
	if len(got) != 2 {
		t.Fatalf("got %d hits, want 2: %v", len(got), got)
	}
	for _, h := range got {
		if h.Pattern != 1 {
			t.Errorf("unexpected hit for empty pattern: %v", h)
		}
	}
}

func TestNoMatch(t *testing.T) {
	a := Build([][]byte{[]byte("GATTACA")})
	got := collect(a, []byte("ACGTACGTACGT"))
	if len(got) != 0 {
		t.Errorf("got %v, want no hits", got)
	}
}

func TestMaxPatternLen(t *testing.T) {
	a := Build([][]byte{[]byte("AT"), []byte("GAATTC"), []byte("A")})
	if a.MaxPatternLen() != 6 {
		t.Errorf("MaxPatternLen() = %d, want 6", a.MaxPatternLen())
	}
}
