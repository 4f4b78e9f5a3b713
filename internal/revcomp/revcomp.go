// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package revcomp computes the reverse complement of a nucleotide
// sequence under the simple A↔T, G↔C, else N mapping specified for
// this tool; it intentionally does not expand IUPAC ambiguity codes.
package revcomp

// Complement returns the complementary base of b, applied
// case-insensitively: A and a map to T, T and t map to A, G and g map
// to C, C and c map to G, and every other byte maps to N.
func Complement(b byte) byte {
	switch b {
	case 'A', 'a':
		return 'T'
	case 'T', 't':
		return 'A'
	case 'G', 'g':
		return 'C'
	case 'C', 'c':
		return 'G'
	default:
		return 'N'
	}
}

// ReverseComplement writes the reverse complement of src into dst,
// which must have len(dst) == len(src). It is safe to call with dst
// and src referring to the same underlying array only if they are
// identical slices (in-place reversal is not supported otherwise).
func ReverseComplement(dst, src []byte) {
	if len(dst) != len(src) {
		panic("revcomp: dst and src length mismatch")
	}
	for i, j := 0, len(src)-1; i <= j; i, j = i+1, j-1 {
		dst[i], dst[j] = Complement(src[j]), Complement(src[i])
	}
}

// ReverseComplementOf returns a newly allocated reverse complement of
// src, equal in length to src.
func ReverseComplementOf(src []byte) []byte {
	dst := make([]byte, len(src))
	ReverseComplement(dst, src)
	return dst
}
