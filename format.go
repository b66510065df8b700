// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/arbor/internal/invariants"
	"github.com/cockroachdb/arbor/internal/treeprinter"
)

// Format renders the tree one node per line with box-drawing connectors,
// children indented under their parent:
//
//	1
//	├── 2
//	│   └── 4
//	└── 3
//
// label produces the text for each node; nil uses fmt's %v.
func Format[N Branch[N]](root N, label func(N) string) string {
	checkRoot(root)
	if label == nil {
		label = func(n N) string { return fmt.Sprint(n) }
	}
	var visited invariants.Visited
	tp := treeprinter.New()
	var add func(n N, parent treeprinter.Node)
	add = func(n N, parent treeprinter.Node) {
		if invariants.Enabled {
			visited.Add(n)
		}
		child := parent.Child(label(n))
		for _, c := range n.Children() {
			add(c, child)
		}
	}
	add(root, tp)
	return tp.String()
}

// Fingerprint returns a 64-bit hash of the tree's shape and of key(n) for
// every node. Two trees with the same keys arranged the same way (same
// parent/child edges, same sibling order) have the same fingerprint; any
// other difference changes it with overwhelming probability.
func Fingerprint[N Branch[N]](root N, key func(N) []byte) uint64 {
	h := xxhash.New()
	var buf [binary.MaxVarintLen64]byte
	for n := range PreOrder(root) {
		k := key(n)
		_, _ = h.Write(binary.AppendUvarint(buf[:0], uint64(len(k))))
		_, _ = h.Write(k)
		_, _ = h.Write(binary.AppendUvarint(buf[:0], uint64(len(n.Children()))))
	}
	return h.Sum64()
}
