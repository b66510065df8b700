// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"fmt"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/arbor"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// forestStats summarizes the structure of one input file. The shape
// predicates hold when they hold for every tree.
type forestStats struct {
	path     string
	trees    int
	orphans  int
	nodes    int
	leaves   int
	maxDepth int
	binary   bool
	balanced bool
	complete bool
	perfect  bool
	// widths[d] is the number of nodes at depth d, over all trees.
	widths     []int
	leafDepths *hdrhistogram.Histogram
}

func computeStats(f *forest) *forestStats {
	s := &forestStats{
		path:       f.path,
		trees:      len(f.roots),
		orphans:    len(f.orphans),
		binary:     true,
		balanced:   true,
		complete:   true,
		perfect:    true,
		leafDepths: hdrhistogram.New(1, 1<<20, 3),
	}
	for _, r := range f.trees() {
		s.nodes += arbor.Count(r)
		s.maxDepth = max(s.maxDepth, arbor.MaxDepth(r))
		s.binary = s.binary && arbor.IsBinary(r)
		s.balanced = s.balanced && arbor.IsBalanced(r)
		s.complete = s.complete && arbor.IsComplete(r)
		s.perfect = s.perfect && arbor.IsPerfect(r)
		for depth, level := range arbor.Levels(r) {
			if depth == len(s.widths) {
				s.widths = append(s.widths, 0)
			}
			s.widths[depth] += len(level)
			for _, n := range level {
				if arbor.IsLeaf(n) {
					s.leaves++
					_ = s.leafDepths.RecordValue(int64(depth))
				}
			}
		}
	}
	return s
}

func (t *treeT) runStats(cmd *cobra.Command, args []string) {
	l := t.loader()
	results := make([]*forestStats, len(args))
	g, ctx := errgroup.WithContext(commandContext(cmd))
	g.SetLimit(max(t.concurrency, 1))
	for i, path := range args {
		g.Go(func() error {
			f, err := l.load(ctx, path)
			if err != nil {
				return err
			}
			results[i] = computeStats(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return
	}

	tw := tablewriter.NewWriter(stdout)
	tw.SetHeader([]string{
		"File", "Trees", "Orphans", "Nodes", "Leaves", "Internal", "Depth",
		"Binary", "Balanced", "Complete", "Perfect",
	})
	for _, s := range results {
		tw.Append([]string{
			s.path,
			fmt.Sprint(s.trees),
			fmt.Sprint(s.orphans),
			fmt.Sprint(s.nodes),
			fmt.Sprint(s.leaves),
			fmt.Sprint(s.nodes - s.leaves),
			fmt.Sprint(s.maxDepth),
			formatBool(s.binary),
			formatBool(s.balanced),
			formatBool(s.complete),
			formatBool(s.perfect),
		})
	}
	tw.Render()

	for _, s := range results {
		if t.percentiles {
			h := s.leafDepths
			fmt.Fprintf(stdout, "%s: leaf depth mean: %.2f p50: %d p90: %d p99: %d max: %d\n",
				s.path, h.Mean(), h.ValueAtPercentile(50), h.ValueAtPercentile(90),
				h.ValueAtPercentile(99), h.Max())
		}
		if t.plot && len(s.widths) > 1 {
			values := make([]float64, len(s.widths))
			for i, w := range s.widths {
				values[i] = float64(w)
			}
			fmt.Fprintf(stdout, "%s\n", asciigraph.Plot(values,
				asciigraph.Height(10), asciigraph.Caption(s.path+": nodes per depth")))
		}
	}
}
