// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"iter"
	"slices"

	"github.com/cockroachdb/arbor/internal/invariants"
	"github.com/cockroachdb/swiss"
)

// Index answers id-based questions (parents, ancestors, depths, siblings,
// common ancestors) about one or more trees. It is built once, in linear time,
// and every lookup afterwards is O(1); walks up the tree cost O(depth).
//
// An Index is a snapshot: it must be rebuilt after the trees are mutated. It
// is safe for concurrent use by multiple readers as long as nobody mutates
// the trees.
//
// Parent relationships come from the nodes' parent ids, not from the
// children lists. A parent id that names no indexed node is treated as if the
// node had no parent: ancestor walks stop there.
type Index[ID comparable, N Node[ID, N]] struct {
	roots []N
	// entries holds every indexed node in breadth-first order, tree by tree.
	// Entries refer to each other by position.
	entries []indexEntry[N]
	ids     swiss.Map[ID, int]
}

type indexEntry[N any] struct {
	node N
	// parent is the position of the node named by the parent id, or -1.
	parent int
	depth  int
}

// NewIndex indexes the trees under the given roots. The ID type parameter
// must be supplied, e.g. NewIndex[int](root).
//
// It returns an error marked ErrDuplicateID if an id occurs twice (including a
// node reachable through two paths, or a cycle in the children lists), and one
// marked ErrCycle if following parent ids loops.
func NewIndex[ID comparable, N Node[ID, N]](roots ...N) (*Index[ID, N], error) {
	idx := &Index[ID, N]{roots: roots}
	idx.ids.Init(16)
	for _, root := range roots {
		checkRoot(root)
		// The children lists are walked here rather than through BreadthFirst
		// so that a cycle shows up as a repeated id instead of an endless walk.
		start := len(idx.entries)
		idx.entries = append(idx.entries, indexEntry[N]{node: root})
		for i := start; i < len(idx.entries); i++ {
			n := idx.entries[i].node
			id := n.ID()
			if _, ok := idx.ids.Get(id); ok {
				return nil, duplicateIDError(id)
			}
			idx.ids.Put(id, i)
			for _, c := range n.Children() {
				idx.entries = append(idx.entries, indexEntry[N]{node: c})
			}
		}
	}

	parents := make([]int, len(idx.entries))
	for i := range idx.entries {
		parents[i] = idx.lookupParent(idx.entries[i].node)
		idx.entries[i].parent = parents[i]
	}
	depths, cycleAt := depthsOf(parents)
	if cycleAt >= 0 {
		return nil, cycleError(idx.entries[cycleAt].node.ID())
	}
	for i := range idx.entries {
		idx.entries[i].depth = depths[i]
	}
	return idx, nil
}

// depthsOf computes, for every position, the number of parent links between it
// and a position without a parent (-1). If the links loop, it returns the
// position of a node on the loop instead.
func depthsOf(parents []int) (depths []int, cycleAt int) {
	const unresolved, resolving = -1, -2
	depths = make([]int, len(parents))
	for i := range depths {
		depths[i] = unresolved
	}
	var chain []int
	for i := range parents {
		chain = chain[:0]
		d := -1
		for j := i; j >= 0; j = parents[j] {
			if depths[j] >= 0 {
				d = depths[j]
				break
			}
			if depths[j] == resolving {
				return nil, j
			}
			depths[j] = resolving
			chain = append(chain, j)
		}
		for k := len(chain) - 1; k >= 0; k-- {
			d++
			depths[chain[k]] = d
		}
	}
	return depths, -1
}

// lookupParent returns the position of the node named by n's parent id, or -1.
func (idx *Index[ID, N]) lookupParent(n N) int {
	if pid, ok := n.ParentID(); ok {
		if p, ok := idx.ids.Get(pid); ok {
			return p
		}
	}
	return -1
}

// parentOf is lookupParent with the result precomputed for indexed nodes.
func (idx *Index[ID, N]) parentOf(n N) int {
	if i, ok := idx.ids.Get(n.ID()); ok {
		return idx.entries[i].parent
	}
	return idx.lookupParent(n)
}

// Roots returns the roots the index was built from.
func (idx *Index[ID, N]) Roots() []N {
	return idx.roots
}

// Len returns the number of indexed nodes.
func (idx *Index[ID, N]) Len() int {
	return len(idx.entries)
}

// Lookup returns the node with the given id.
func (idx *Index[ID, N]) Lookup(id ID) (N, bool) {
	if i, ok := idx.ids.Get(id); ok {
		return idx.entries[i].node, true
	}
	var zero N
	return zero, false
}

// Contains returns true if a node with the given id is indexed.
func (idx *Index[ID, N]) Contains(id ID) bool {
	_, ok := idx.ids.Get(id)
	return ok
}

// All returns the indexed nodes in breadth-first order, tree by tree.
func (idx *Index[ID, N]) All() iter.Seq[N] {
	return func(yield func(N) bool) {
		for i := range idx.entries {
			if !yield(idx.entries[i].node) {
				return
			}
		}
	}
}

// IsRoot returns true if n has no parent id.
func (idx *Index[ID, N]) IsRoot(n N) bool {
	_, ok := n.ParentID()
	return !ok
}

// Parent returns the node named by n's parent id.
func (idx *Index[ID, N]) Parent(n N) (N, bool) {
	if p := idx.parentOf(n); p >= 0 {
		return idx.entries[p].node, true
	}
	var zero N
	return zero, false
}

// Ancestors returns n's ancestors, nearest first. The walk stops at a node
// without a parent id or one whose parent id names no indexed node.
func (idx *Index[ID, N]) Ancestors(n N) iter.Seq[N] {
	return func(yield func(N) bool) {
		steps := 0
		for p := idx.parentOf(n); p >= 0; p = idx.entries[p].parent {
			if invariants.Enabled {
				steps++
				invariants.CheckDepth(steps, len(idx.entries))
			}
			if !yield(idx.entries[p].node) {
				return
			}
		}
	}
}

// Depth returns the number of ancestors of n. Roots have depth 0.
func (idx *Index[ID, N]) Depth(n N) int {
	if i, ok := idx.ids.Get(n.ID()); ok {
		return idx.entries[i].depth
	}
	if p := idx.lookupParent(n); p >= 0 {
		return idx.entries[p].depth + 1
	}
	return 0
}

// Level is an alias for Depth.
func (idx *Index[ID, N]) Level(n N) int {
	return idx.Depth(n)
}

// Path returns the chain from the topmost reachable ancestor down to n,
// inclusive.
func (idx *Index[ID, N]) Path(n N) []N {
	path := append(slices.Collect(idx.Ancestors(n)), n)
	slices.Reverse(path)
	return path
}

// Siblings returns the children of n's parent other than n itself (compared
// by id), in stored order. It returns nil for roots and for nodes whose parent
// id names no indexed node.
func (idx *Index[ID, N]) Siblings(n N) []N {
	p := idx.parentOf(n)
	if p < 0 {
		return nil
	}
	id := n.ID()
	var siblings []N
	for _, c := range idx.entries[p].node.Children() {
		if c.ID() != id {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

// IsAncestorOf returns true if a is a (strict) ancestor of b.
func (idx *Index[ID, N]) IsAncestorOf(a, b N) bool {
	id := a.ID()
	for p := idx.parentOf(b); p >= 0; p = idx.entries[p].parent {
		if idx.entries[p].node.ID() == id {
			return true
		}
	}
	return false
}

// IsDescendantOf returns true if b is a (strict) descendant of a. It is
// IsAncestorOf with the arguments swapped.
func (idx *Index[ID, N]) IsDescendantOf(b, a N) bool {
	return idx.IsAncestorOf(a, b)
}

// LowestCommonAncestor returns the nearest node that is a strict ancestor of
// both a and b. Neither a nor b is ever the answer, even when one is an
// ancestor of the other: for a parent and its child the result is the
// parent's parent. Returns false if the nodes share no ancestor (for example
// because they belong to different trees).
func (idx *Index[ID, N]) LowestCommonAncestor(a, b N) (N, bool) {
	ancestors := make(map[int]struct{})
	for p := idx.parentOf(a); p >= 0; p = idx.entries[p].parent {
		ancestors[p] = struct{}{}
	}
	for p := idx.parentOf(b); p >= 0; p = idx.entries[p].parent {
		if _, ok := ancestors[p]; ok {
			return idx.entries[p].node, true
		}
	}
	var zero N
	return zero, false
}
