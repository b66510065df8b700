// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/arbor"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// treeT implements tree-level introspection tools.
type treeT struct {
	Root     *cobra.Command
	Show     *cobra.Command
	Walk     *cobra.Command
	Inspect  *cobra.Command
	LCA      *cobra.Command
	Validate *cobra.Command
	Build    *cobra.Command
	Stats    *cobra.Command
	Diff     *cobra.Command

	// Configuration.
	opts *options

	// Flags.
	table       string
	strict      bool
	verbose     bool
	values      bool
	order       order
	concurrency int
	plot        bool
	percentiles bool
	context     int
}

func newTree(opts *options) *treeT {
	t := &treeT{opts: opts}
	t.order.mustSet("bfs")

	t.Root = &cobra.Command{
		Use:   "tree",
		Short: "tree introspection tools",
	}
	t.Show = &cobra.Command{
		Use:   "show <file>",
		Short: "render the trees in a file",
		Long: `
Render the trees in a file, one node per line. Records naming a parent that is
not in the file are shown separately, as orphans.
`,
		Args: cobra.ExactArgs(1),
		Run:  t.runShow,
	}
	t.Walk = &cobra.Command{
		Use:   "walk <file>",
		Short: "print the node ids of each tree in traversal order",
		Args:  cobra.ExactArgs(1),
		Run:   t.runWalk,
	}
	t.Inspect = &cobra.Command{
		Use:   "inspect <file> <id>",
		Short: "print the position of a node within its tree",
		Args:  cobra.ExactArgs(2),
		Run:   t.runInspect,
	}
	t.LCA = &cobra.Command{
		Use:   "lca <file> <id> <id>",
		Short: "print the lowest common ancestor of two nodes",
		Long: `
Print the nearest node that is a strict ancestor of both nodes. A node is never
its own ancestor: the result for a parent and its child is the grandparent.
`,
		Args: cobra.ExactArgs(3),
		Run:  t.runLCA,
	}
	t.Validate = &cobra.Command{
		Use:   "validate <file>",
		Short: "check that ids are unique and parent ids match the structure",
		Args:  cobra.ExactArgs(1),
		Run:   t.runValidate,
	}
	t.Build = &cobra.Command{
		Use:   "build <file>",
		Short: "reconstruct trees from parent ids and report what was found",
		Args:  cobra.ExactArgs(1),
		Run:   t.runBuild,
	}
	t.Stats = &cobra.Command{
		Use:   "stats <file>...",
		Short: "print structural statistics for each file",
		Long: `
Print structural statistics for each file. Files are loaded concurrently.
`,
		Args: cobra.MinimumNArgs(1),
		Run:  t.runStats,
	}
	t.Diff = &cobra.Command{
		Use:   "diff <file> <file>",
		Short: "compare the trees in two files",
		Long: `
Compare the trees in two files by fingerprint. If they differ, print a unified
diff of their renderings.
`,
		Args: cobra.ExactArgs(2),
		Run:  t.runDiff,
	}

	t.Root.AddCommand(t.Show, t.Walk, t.Inspect, t.LCA, t.Validate, t.Build, t.Stats, t.Diff)

	for _, cmd := range t.Root.Commands() {
		cmd.Flags().StringVar(
			&t.table, "table", opts.table, "table to read from SQLite inputs")
		cmd.Flags().BoolVar(
			&t.strict, "strict", false, "require each file to hold exactly one tree")
		cmd.Flags().BoolVarP(
			&t.verbose, "verbose", "v", false, "log records that cannot be attached")
	}
	for _, cmd := range []*cobra.Command{t.Show, t.Inspect} {
		cmd.Flags().BoolVar(
			&t.values, "values", false, "include node values")
	}
	t.Walk.Flags().Var(
		&t.order, "order", "traversal order: bfs, dfs, pre, post or in")
	t.Stats.Flags().IntVarP(
		&t.concurrency, "concurrency", "c", opts.concurrency, "number of files loaded in parallel")
	t.Stats.Flags().BoolVar(
		&t.plot, "plot", false, "plot the number of nodes at each depth")
	t.Stats.Flags().BoolVar(
		&t.percentiles, "percentiles", false, "print the distribution of leaf depths")
	t.Diff.Flags().IntVar(
		&t.context, "context", 3, "lines of context in the diff")
	return t
}

func (t *treeT) loader() *loader {
	logger := t.opts.logger
	if t.verbose && !logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.SetLevel(logrus.InfoLevel)
	}
	return &loader{table: t.table, logger: logger, strict: t.strict}
}

func (t *treeT) load(cmd *cobra.Command, path string) (*forest, bool) {
	f, err := t.loader().load(commandContext(cmd), path)
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return nil, false
	}
	return f, true
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func (t *treeT) render(f *forest, values bool) string {
	var b strings.Builder
	labelFn := func(n *node) string { return label(n, values) }
	for _, r := range f.roots {
		b.WriteString(arbor.Format(r, labelFn))
	}
	if len(f.orphans) > 0 {
		b.WriteString("orphans:\n")
		for _, r := range f.orphans {
			b.WriteString(arbor.Format(r, labelFn))
		}
	}
	return b.String()
}

func (t *treeT) runShow(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	fmt.Fprint(stdout, t.render(f, t.values))
}

func (t *treeT) runWalk(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	for _, r := range f.trees() {
		fmt.Fprintf(stdout, "%s\n", joinIDs(t.order.fn(r)))
	}
}

func (t *treeT) runInspect(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	idx, err := f.index()
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return
	}
	n, ok := idx.Lookup(args[1])
	if !ok {
		fmt.Fprintf(stderr, "%s: no node with id %q\n", f.path, args[1])
		osExit(1)
		return
	}

	parent := "-"
	if p, ok := idx.Parent(n); ok {
		parent = p.ID()
	} else if pid, ok := n.ParentID(); ok {
		parent = pid + " (missing)"
	}
	fmt.Fprintf(stdout, "node:        %s\n", label(n, t.values))
	fmt.Fprintf(stdout, "parent:      %s\n", parent)
	fmt.Fprintf(stdout, "depth:       %d\n", idx.Depth(n))
	fmt.Fprintf(stdout, "path:        %s\n", orDash(joinIDs(slices.Values(idx.Path(n)))))
	fmt.Fprintf(stdout, "siblings:    %s\n", orDash(joinIDs(slices.Values(idx.Siblings(n)))))
	fmt.Fprintf(stdout, "children:    %s\n", orDash(joinIDs(slices.Values(n.Children()))))
	fmt.Fprintf(stdout, "descendants: %d\n", arbor.Count(n)-1)
	fmt.Fprintf(stdout, "leaves:      %s\n", orDash(joinIDs(arbor.Leaves(n))))
	fmt.Fprintf(stdout, "height:      %d\n", arbor.MaxDepth(n))
}

func (t *treeT) runLCA(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	idx, err := f.index()
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return
	}
	var nodes [2]*node
	for i, id := range args[1:] {
		n, ok := idx.Lookup(id)
		if !ok {
			fmt.Fprintf(stderr, "%s: no node with id %q\n", f.path, id)
			osExit(1)
			return
		}
		nodes[i] = n
	}
	if lca, ok := idx.LowestCommonAncestor(nodes[0], nodes[1]); ok {
		fmt.Fprintf(stdout, "%s\n", lca)
		return
	}
	fmt.Fprintf(stdout, "none\n")
}

func (t *treeT) runValidate(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	failed := false
	for _, r := range f.trees() {
		if err := arbor.Validate[string](r); err != nil {
			failed = true
			fmt.Fprintf(stdout, "%s:\n", r.ID())
			errs := []error{err}
			if j, ok := err.(interface{ Unwrap() []error }); ok {
				errs = j.Unwrap()
			}
			for _, e := range errs {
				fmt.Fprintf(stdout, "  %s\n", e)
			}
		}
	}
	if _, err := f.index(); err != nil {
		failed = true
		fmt.Fprintf(stdout, "%s\n", err)
	}
	if failed {
		osExit(1)
		return
	}
	fmt.Fprintf(stdout, "ok\n")
}

func (t *treeT) runBuild(cmd *cobra.Command, args []string) {
	f, ok := t.load(cmd, args[0])
	if !ok {
		return
	}
	trees := f.trees()

	// Flatten every tree into records that only carry their parent id and
	// assemble them again.
	var flat []*node
	for _, r := range trees {
		for n := range arbor.BreadthFirst(r) {
			var pid *string
			if p, ok := n.ParentID(); ok {
				pid = &p
			}
			flat = append(flat, recordNode(n.ID(), pid, n.Name, n.Value))
		}
	}
	metrics := arbor.NewBuildMetrics("arbor")
	rebuilt, err := arbor.Build[string](flat,
		arbor.WithMetrics(metrics), arbor.WithLogger(t.opts.logger.WithField("file", f.path)))
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return
	}
	result := append(slices.Clone(rebuilt.Roots), rebuilt.Orphans...)

	tw := tablewriter.NewWriter(stdout)
	tw.SetHeader([]string{"Tree", "Nodes", "Depth", "Leaves", "Round trip"})
	for i, r := range result {
		roundTrip := i < len(trees) &&
			arbor.Fingerprint(trees[i], nodeKey) == arbor.Fingerprint(r, nodeKey)
		tw.Append([]string{
			label(r, false),
			fmt.Sprint(arbor.Count(r)),
			fmt.Sprint(arbor.MaxDepth(r)),
			fmt.Sprint(arbor.CountLeaves(r)),
			formatBool(roundTrip),
		})
	}
	tw.Render()
	fmt.Fprintf(stdout, "records: %d  roots: %d  orphans: %d\n",
		int(counterValue(metrics.Nodes)), int(counterValue(metrics.Roots)), int(counterValue(metrics.Orphans)))
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
