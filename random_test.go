// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"encoding/binary"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/arbor/internal/testutils"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type intRecord = Record[int, string]

// randomTree returns a tree of n nodes with ids 0..n-1, each node attached to
// a uniformly chosen earlier node. fanout, if positive, caps the number of
// children per node.
func randomTree(rng *rand.Rand, n, fanout int) (*intRecord, []*intRecord) {
	nodes := make([]*intRecord, n)
	nodes[0] = NewRecord[int, string](0)
	for i := 1; i < n; i++ {
		nodes[i] = NewRecord[int, string](i)
		for {
			p := nodes[rng.Intn(i)]
			if fanout <= 0 || len(p.Children()) < fanout {
				p.AddChildren(nodes[i])
				break
			}
		}
	}
	return nodes[0], nodes
}

// perfectTree returns a perfect binary tree with the given height.
func perfectTree(height int) *intRecord {
	next := 0
	var build func(h int) *intRecord
	build = func(h int) *intRecord {
		r := NewRecord[int, string](next)
		next++
		if h > 0 {
			r.AddChildren(build(h-1), build(h-1))
		}
		return r
	}
	return build(height)
}

func idKey(n *intRecord) []byte {
	return binary.AppendUvarint(nil, uint64(n.ID()))
}

func recordIDs(nodes []*intRecord) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

func TestRandomTrees(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewSource(seed))

	for iter := 0; iter < 50; iter++ {
		n := 1 + rng.Intn(200)
		fanout := rng.Intn(4)
		root, nodes := randomTree(rng, n, fanout)
		require.NoError(t, Validate[int](root))

		bfs := slices.Collect(BreadthFirst(root))
		dfs := slices.Collect(DepthFirst(root))
		pre := slices.Collect(PreOrder(root))
		post := slices.Collect(PostOrder(root))
		in := slices.Collect(InOrder(root))
		for _, order := range [][]*intRecord{bfs, dfs, pre, post, in} {
			require.Len(t, order, n)
			require.ElementsMatch(t, recordIDs(nodes), recordIDs(order))
		}
		require.Equal(t, n, Count(root))
		require.Equal(t, recordIDs(pre), recordIDs(dfs))
		require.Equal(t, recordIDs(bfs), recordIDs(Flatten(root)))

		leaves := 0
		for _, nd := range nodes {
			if nd.IsLeaf() {
				leaves++
			}
		}
		require.Equal(t, leaves, CountLeaves(root))
		require.Equal(t, n-leaves, CountInternal(root))

		idx := testutils.CheckErr(NewIndex[int](root))
		require.Equal(t, n, idx.Len())

		// Depths never decrease in level order, and levels agree with them.
		for i := 1; i < len(bfs); i++ {
			require.LessOrEqual(t, idx.Depth(bfs[i-1]), idx.Depth(bfs[i]))
		}
		maxDepth := 0
		for depth, level := range Levels(root) {
			for _, nd := range level {
				require.Equal(t, depth, idx.Depth(nd))
			}
			require.Equal(t, recordIDs(level), recordIDs(slices.Collect(NodesAtDepth(root, depth))))
			maxDepth = depth
		}
		require.Equal(t, maxDepth, MaxDepth(root))

		// A node comes after all of its descendants in post-order and before
		// them in pre-order.
		prePos := make(map[int]int, n)
		postPos := make(map[int]int, n)
		for i := range pre {
			prePos[pre[i].ID()] = i
			postPos[post[i].ID()] = i
		}
		for _, nd := range nodes {
			for d := range Descendants(nd) {
				require.Less(t, prePos[nd.ID()], prePos[d.ID()])
				require.Greater(t, postPos[nd.ID()], postPos[d.ID()])
			}
		}

		for k := 0; k < 20; k++ {
			a, b := nodes[rng.Intn(n)], nodes[rng.Intn(n)]
			require.Equal(t, idx.IsAncestorOf(a, b), idx.IsDescendantOf(b, a))
			if idx.IsAncestorOf(a, b) {
				require.Less(t, idx.Depth(a), idx.Depth(b))
				require.False(t, idx.IsAncestorOf(b, a))
			}
			path := idx.Path(b)
			require.Len(t, path, idx.Depth(b)+1)
			require.Same(t, root, path[0])
			require.Same(t, b, path[len(path)-1])

			if lca, ok := idx.LowestCommonAncestor(a, b); ok {
				require.True(t, idx.IsAncestorOf(lca, a))
				require.True(t, idx.IsAncestorOf(lca, b))
				// No child of the common ancestor is also a strict ancestor
				// of both.
				for _, c := range lca.Children() {
					require.False(t, idx.IsAncestorOf(c, a) && idx.IsAncestorOf(c, b))
				}
			} else {
				require.True(t, a == root || b == root)
			}

			for _, s := range idx.Siblings(a) {
				require.Contains(t, recordIDs(idx.Siblings(s)), a.ID())
			}
		}

		// Flattening into parent-id records and rebuilding gives back the same
		// tree, as long as siblings keep their relative order.
		flat := make([]*intRecord, 0, n)
		for _, nd := range bfs {
			r := NewRecord[int, string](nd.ID())
			if p, ok := nd.ParentID(); ok {
				r.SetParentID(p, true)
			}
			flat = append(flat, r)
		}
		want := Fingerprint(root, idKey)
		rebuilt, err := BuildTree[int](flat)
		require.NoError(t, err)
		require.Equal(t, want, Fingerprint(rebuilt, idKey))
		require.Equal(t, Format(root, nil), Format(rebuilt, nil))

		// In any order, the rebuilt tree is valid and has the same nodes.
		rng.Shuffle(len(flat), func(i, j int) { flat[i], flat[j] = flat[j], flat[i] })
		rebuilt = testutils.CheckErr(BuildTree[int](flat))
		require.NoError(t, Validate[int](rebuilt))
		require.Equal(t, n, Count(rebuilt))
	}
}

func TestPerfectTrees(t *testing.T) {
	for h := 0; h <= 6; h++ {
		root := perfectTree(h)
		require.True(t, IsPerfect(root))
		require.True(t, IsComplete(root))
		require.True(t, IsBalanced(root))
		require.True(t, IsBinary(root))
		require.Equal(t, 1<<(h+1)-1, Count(root))
		require.Equal(t, CountLeaves(root)-1, CountInternal(root))
		require.Equal(t, h, MaxDepth(root))
	}
}

func TestFingerprint(t *testing.T) {
	a := perfectTree(3)
	b := perfectTree(3)
	require.Equal(t, Fingerprint(a, idKey), Fingerprint(b, idKey))

	// Swapping two siblings changes the fingerprint.
	children := b.Children()
	children[0], children[1] = children[1], children[0]
	require.NotEqual(t, Fingerprint(a, idKey), Fingerprint(b, idKey))

	// So does moving a leaf to another parent, even though pre-order is
	// unchanged.
	c := NewRecord[int, string](0).AddChildren(
		NewRecord[int, string](1).AddChildren(NewRecord[int, string](2)),
	)
	d := NewRecord[int, string](0).AddChildren(
		NewRecord[int, string](1), NewRecord[int, string](2),
	)
	require.Equal(t, recordIDs(slices.Collect(PreOrder(c))), recordIDs(slices.Collect(PreOrder(d))))
	require.NotEqual(t, Fingerprint(c, idKey), Fingerprint(d, idKey))
}
