// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package automaton implements an Aho–Corasick multi-pattern matcher
// over byte sequences. Nodes are held in a flat arena and addressed by
// index rather than pointer, so the trie's failure links cannot form
// reference cycles and the whole structure can be discarded in one
// step once built.
package automaton

// rootID is the index of the trie root in every Automaton's arena.
const rootID int32 = 0

// node is a single trie state: a sparse set of byte-keyed child edges,
// a failure link back into the arena, and the union of pattern indices
// that are reported when this state is entered.
type node struct {
	children map[byte]int32
	fail     int32
	output   []int32
}

// Automaton is a read-only Aho–Corasick trie built over a set of byte
// patterns. The zero value is not usable; construct one with Build.
type Automaton struct {
	nodes  []node
	maxLen int
	lenOf  []int
}

// Build constructs an Automaton over patterns. Patterns is indexed by
// pattern ID: the IDs reported by Match correspond to positions in
// this slice. An empty pattern is not inserted into the trie (it can
// never be discovered at a finite position) but its length is still
// recorded so callers indexing lenOf by pattern ID stay in bounds.
func Build(patterns [][]byte) *Automaton {
	a := &Automaton{
		nodes: []node{{}},
		lenOf: make([]int, len(patterns)),
	}

	for i, p := range patterns {
		a.lenOf[i] = len(p)
		if len(p) > a.maxLen {
			a.maxLen = len(p)
		}
		if len(p) == 0 {
			continue
		}
		a.insert(p, i)
	}

	a.linkFailures()

	return a
}

// insert walks/creates the trie path for pattern and records its index
// in the terminal node's output set.
func (a *Automaton) insert(pattern []byte, id int) {
	cur := rootID
	for _, b := range pattern {
		n := &a.nodes[cur]
		if n.children == nil {
			n.children = make(map[byte]int32, 4)
		}
		next, ok := n.children[b]
		if !ok {
			next = int32(len(a.nodes))
			a.nodes = append(a.nodes, node{})
			a.nodes[cur].children[b] = next
		}
		cur = next
	}
	a.nodes[cur].output = append(a.nodes[cur].output, int32(id))
}

// linkFailures computes the failure link of every non-root node by
// breadth-first traversal from the root, and immediately extends each
// node's output set with its failure node's output set so matching
// never has to walk the failure chain at query time.
func (a *Automaton) linkFailures() {
	root := &a.nodes[rootID]
	queue := make([]int32, 0, len(a.nodes))
	for _, child := range sortedValues(root.children) {
		a.nodes[child].fail = rootID
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, b := range sortedKeys(a.nodes[cur].children) {
			child := a.nodes[cur].children[b]

			s := a.nodes[cur].fail
			for s != rootID {
				if _, ok := a.nodes[s].children[b]; ok {
					break
				}
				s = a.nodes[s].fail
			}
			if next, ok := a.nodes[s].children[b]; ok {
				a.nodes[child].fail = next
			} else {
				a.nodes[child].fail = rootID
			}

			a.nodes[child].output = append(a.nodes[child].output, a.nodes[a.nodes[child].fail].output...)

			queue = append(queue, child)
		}
	}
}

// sortedValues returns the values of m in ascending key order, giving
// the BFS a deterministic traversal order independent of Go's random
// map iteration.
func sortedValues(m map[byte]int32) []int32 {
	if len(m) == 0 {
		return nil
	}
	out := make([]int32, 0, len(m))
	for b := 0; b < 256; b++ {
		if v, ok := m[byte(b)]; ok {
			out = append(out, v)
		}
	}
	return out
}

// sortedKeys returns the keys of m in ascending order, giving the BFS
// a deterministic traversal order independent of Go's random map
// iteration.
func sortedKeys(m map[byte]int32) []byte {
	if len(m) == 0 {
		return nil
	}
	out := make([]byte, 0, len(m))
	for b := 0; b < 256; b++ {
		if _, ok := m[byte(b)]; ok {
			out = append(out, byte(b))
		}
	}
	return out
}

// PatternLen returns the byte length of the pattern with the given ID.
func (a *Automaton) PatternLen(id int) int { return a.lenOf[id] }

// MaxPatternLen returns the length of the longest pattern the
// Automaton was built from.
func (a *Automaton) MaxPatternLen() int { return a.maxLen }

// State is a cursor into an Automaton, used to resume matching across
// chunk boundaries or to scan more than one independent stream
// concurrently with a single built Automaton.
type State struct {
	a   *Automaton
	cur int32
}

// Start returns a fresh matching cursor positioned at the root.
func (a *Automaton) Start() State { return State{a: a, cur: rootID} }

// Hit reports one pattern occurrence: the pattern's index as given to
// Build, and the inclusive end offset of the match in the scanned
// input.
type Hit struct {
	Pattern int
	End     int
}

// Step advances the cursor by one input byte at absolute offset i and
// appends to dst every Hit ending at i, in output-set order. It
// returns the (possibly grown) dst slice.
func (s *State) Step(b byte, i int, dst []Hit) []Hit {
	a := s.a
	for s.cur != rootID {
		if _, ok := a.nodes[s.cur].children[b]; ok {
			break
		}
		s.cur = a.nodes[s.cur].fail
	}
	if next, ok := a.nodes[s.cur].children[b]; ok {
		s.cur = next
	} else {
		s.cur = rootID
	}

	for _, p := range a.nodes[s.cur].output {
		dst = append(dst, Hit{Pattern: int(p), End: i})
	}
	return dst
}

// Match runs the Automaton over input from scratch (a fresh State) and
// invokes callback(i, p) for every pattern p ending at inclusive
// offset i, in (end-index ascending, then output-set order) — the
// order Step naturally produces.
func (a *Automaton) Match(input []byte, callback func(end, pattern int)) {
	st := a.Start()
	var hits []Hit
	for i, b := range input {
		hits = st.Step(b, i, hits[:0])
		for _, h := range hits {
			callback(h.End, h.Pattern)
		}
	}
}
