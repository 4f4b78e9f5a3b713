// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeTemp(t, "name,sequence\nEcoRI,GAATTC\np,aca\n")
	set, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Patterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(set.Patterns))
	}
	if set.Patterns[0].Name != "EcoRI" || set.Patterns[0].Sequence != "GAATTC" {
		t.Errorf("got %+v", set.Patterns[0])
	}
	if set.Patterns[0].Folded != "GAATTC" {
		t.Errorf("Folded = %q, want unchanged casing", set.Patterns[0].Folded)
	}
	if set.MaxLength != 6 {
		t.Errorf("MaxLength = %d, want 6", set.MaxLength)
	}
}

func TestLoadIgnoreCase(t *testing.T) {
	path := writeTemp(t, "name,sequence\np,aCa\n")
	set, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if set.Patterns[0].Sequence != "aCa" {
		t.Errorf("Sequence = %q, want original casing preserved", set.Patterns[0].Sequence)
	}
	if set.Patterns[0].Folded != "aca" {
		t.Errorf("Folded = %q, want lowercased", set.Patterns[0].Folded)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := writeTemp(t, "name,sequence\np,ACA\n\n\nq,TTT\n")
	set, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Patterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(set.Patterns))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), false)
	var e *Error
	if !errors.As(err, &e) || e.Kind != IOError {
		t.Fatalf("got %v, want IOError", err)
	}
}

func TestLoadMissingField(t *testing.T) {
	path := writeTemp(t, "name,sequence\nonlyname\n")
	_, err := Load(path, false)
	var e *Error
	if !errors.As(err, &e) || e.Kind != FormatError {
		t.Fatalf("got %v, want FormatError", err)
	}
}

func TestLoadEmptySequenceRejected(t *testing.T) {
	path := writeTemp(t, "name,sequence\np,\n")
	_, err := Load(path, false)
	var e *Error
	if !errors.As(err, &e) || e.Kind != FormatError {
		t.Fatalf("got %v, want FormatError for empty sequence", err)
	}
}

func TestFoldedSequences(t *testing.T) {
	path := writeTemp(t, "name,sequence\np,ACA\nq,TTT\n")
	set, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	got := set.FoldedSequences()
	if string(got[0]) != "ACA" || string(got[1]) != "TTT" {
		t.Errorf("got %q", got)
	}
}
