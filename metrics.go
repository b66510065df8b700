// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BuildMetrics holds Prometheus collectors updated by every Build that is
// given them through WithMetrics. Nil fields are skipped, so callers can opt
// into a subset.
type BuildMetrics struct {
	// Nodes counts input nodes.
	Nodes prometheus.Counter
	// Roots counts nodes without a parent id.
	Roots prometheus.Counter
	// Orphans counts nodes whose parent id named no input node.
	Orphans prometheus.Counter
	// Duration observes the time taken by each Build, in seconds.
	Duration prometheus.Histogram
}

// NewBuildMetrics returns BuildMetrics with every collector set, named under
// the given namespace. The caller is responsible for registering them (see
// Collectors).
func NewBuildMetrics(namespace string) *BuildMetrics {
	return &BuildMetrics{
		Nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_nodes_total",
			Help:      "Number of nodes passed to Build.",
		}),
		Roots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_roots_total",
			Help:      "Number of nodes without a parent id seen by Build.",
		}),
		Orphans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "build_orphans_total",
			Help:      "Number of nodes whose parent id named a missing node.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time taken by Build.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}

// Collectors returns the non-nil collectors.
func (m *BuildMetrics) Collectors() []prometheus.Collector {
	var cs []prometheus.Collector
	for _, c := range []prometheus.Collector{m.Nodes, m.Roots, m.Orphans, m.Duration} {
		if c != nil {
			cs = append(cs, c)
		}
	}
	return cs
}

func (m *BuildMetrics) record(nodes, roots, orphans int, d time.Duration) {
	if m.Nodes != nil {
		m.Nodes.Add(float64(nodes))
	}
	if m.Roots != nil {
		m.Roots.Add(float64(roots))
	}
	if m.Orphans != nil {
		m.Orphans.Add(float64(orphans))
	}
	if m.Duration != nil {
		m.Duration.Observe(d.Seconds())
	}
}
