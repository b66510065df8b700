// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package arbor implements a generic in-memory hierarchy: traversals,
// structural queries, classification, and reconstruction of trees from flat
// collections of nodes that only know their parent's id.
//
// # Nodes
//
// Any node type can take part by implementing small capability interfaces
// rather than embedding a base type:
//
//   - Branch (Children) is all that traversals and structural predicates
//     need;
//   - Node adds ID and ParentID, for id-based queries (Index) and Validate;
//   - MutableNode adds SetParentID and SetChildren, for Build and the
//     mutation helpers.
//
// Record is a ready-made MutableNode with a name and an opaque value.
//
//	root := arbor.NewRecord[int, string](1).AddChildren(
//	    arbor.NewRecord[int, string](2).AddChildren(
//	        arbor.NewRecord[int, string](4),
//	    ),
//	    arbor.NewRecord[int, string](3),
//	)
//	for n := range arbor.BreadthFirst(root) {
//	    fmt.Println(n.ID()) // 1 2 3 4
//	}
//
// Functions that need the id type take it as an explicit type argument, the
// node type is inferred: arbor.NewIndex[int](root), arbor.Build[int](nodes).
//
// # Preconditions
//
// Ids must be unique within a tree and the children lists must not form a
// cycle. The traversal functions do not check this (except in invariants
// builds) and would not terminate on a cycle. NewIndex, Build and Validate
// do check and return errors marked ErrDuplicateID or ErrCycle.
//
// A node's parent id and its position in a children list are independent
// pieces of data. Traversals follow children lists; Index follows parent ids.
// Build derives the former from the latter, Validate reports disagreements.
//
// # Concurrency
//
// Nothing here synchronizes. Concurrent readers are fine; a mutation must not
// run concurrently with anything else touching the same tree.
package arbor
