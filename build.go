// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"github.com/cockroachdb/arbor/internal/base"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/swiss"
)

// Forest is the result of Build.
type Forest[ID comparable, N any] struct {
	// Roots are the nodes without a parent id, in input order.
	Roots []N
	// Orphans are the nodes whose parent id names no node in the input, in
	// input order. Each still carries its own subtree but is not reachable
	// from any root.
	Orphans []N
}

// BuildOption configures Build and BuildTree.
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger  Logger
	metrics *BuildMetrics
}

// WithLogger makes Build log the nodes it cannot attach at info level and the
// inputs it rejects at error level.
func WithLogger(logger Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = logger
	}
}

// WithMetrics makes Build update the given metrics.
func WithMetrics(m *BuildMetrics) BuildOption {
	return func(o *buildOptions) {
		o.metrics = m
	}
}

// Build reconstructs the children lists of a flat collection of nodes from
// their parent ids. The ID type parameter must be supplied, e.g.
// Build[int](nodes).
//
// Every node's children list is replaced: a node ends up with exactly the
// input nodes that name it as parent, in input order. Nodes without a parent
// id are returned as roots; nodes whose parent id names no input node are
// returned as orphans and are not attached anywhere. Nothing is dropped.
//
// Duplicate ids are rejected with an error marked ErrDuplicateID, and parent
// ids that loop (including a node naming itself) with one marked ErrCycle.
// Both are detected before any children list is modified.
func Build[ID comparable, N MutableNode[ID, N]](
	nodes []N, opts ...BuildOption,
) (Forest[ID, N], error) {
	o := buildOptions{logger: base.NoopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	start := crtime.NowMono()

	var ids swiss.Map[ID, int]
	ids.Init(len(nodes))
	for i, n := range nodes {
		if isNil(n) {
			return Forest[ID, N]{}, errors.AssertionFailedf("arbor: nil node at position %d", i)
		}
		id := n.ID()
		if _, ok := ids.Get(id); ok {
			err := duplicateIDError(id)
			o.logger.Errorf("%v", err)
			return Forest[ID, N]{}, err
		}
		ids.Put(id, i)
	}

	const root, orphan = -1, -2
	parents := make([]int, len(nodes))
	for i, n := range nodes {
		pid, ok := n.ParentID()
		if !ok {
			parents[i] = root
			continue
		}
		p, ok := ids.Get(pid)
		if !ok {
			parents[i] = orphan
			o.logger.Infof("arbor: node %v names missing parent %v; leaving it out of the tree", n.ID(), pid)
			continue
		}
		parents[i] = p
	}
	links := make([]int, len(parents))
	for i, p := range parents {
		links[i] = max(p, -1)
	}
	if _, cycleAt := depthsOf(links); cycleAt >= 0 {
		err := cycleError(nodes[cycleAt].ID())
		o.logger.Errorf("%v", err)
		return Forest[ID, N]{}, err
	}

	for _, n := range nodes {
		n.SetChildren(nil)
	}
	var f Forest[ID, N]
	for i, n := range nodes {
		switch p := parents[i]; p {
		case root:
			f.Roots = append(f.Roots, n)
		case orphan:
			f.Orphans = append(f.Orphans, n)
		default:
			parent := nodes[p]
			parent.SetChildren(append(parent.Children(), n))
		}
	}
	if o.metrics != nil {
		o.metrics.record(len(nodes), len(f.Roots), len(f.Orphans), start.Elapsed())
	}
	return f, nil
}

// BuildTree is Build for input that must form exactly one tree. It returns an
// error marked ErrNoRoot if no node lacks a parent id and one marked
// ErrAmbiguousRoot if several do. Orphans are not an error; they are logged
// when a logger is configured.
func BuildTree[ID comparable, N MutableNode[ID, N]](nodes []N, opts ...BuildOption) (N, error) {
	var zero N
	f, err := Build[ID](nodes, opts...)
	if err != nil {
		return zero, err
	}
	switch len(f.Roots) {
	case 0:
		return zero, errors.Mark(
			errors.Newf("arbor: none of %d nodes lacks a parent id", len(nodes)), ErrNoRoot)
	case 1:
		return f.Roots[0], nil
	default:
		ids := make([]ID, len(f.Roots))
		for i, r := range f.Roots {
			ids[i] = r.ID()
		}
		return zero, errors.Mark(
			errors.Newf("arbor: %d nodes lack a parent id: %v", len(ids), redact.Safe(ids)), ErrAmbiguousRoot)
	}
}
