// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package tool implements the arbor command line tools: rendering, walking,
// inspecting, comparing and summarizing hierarchies stored in files.
package tool

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// T is the container for all of the tree tools.
type T struct {
	Commands []*cobra.Command
	tree     *treeT
	opts     options
}

type options struct {
	table       string
	concurrency int
	logger      *logrus.Logger
}

// Option configures the tools.
type Option func(*options)

// DefaultTable sets the default name of the table read from SQLite inputs.
func DefaultTable(name string) Option {
	return func(o *options) {
		o.table = name
	}
}

// Concurrency sets the default number of files loaded in parallel by the
// commands that accept several.
func Concurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// Logger sets the logger used to report problems found while loading input,
// such as records naming a missing parent. By default messages at warning
// level and above go to stderr.
func Logger(l *logrus.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a new set of tree tools.
func New(opts ...Option) *T {
	t := &T{
		opts: options{
			table:       "nodes",
			concurrency: 4,
		},
	}
	for _, opt := range opts {
		opt(&t.opts)
	}
	if t.opts.logger == nil {
		t.opts.logger = newLogger()
	}

	t.tree = newTree(&t.opts)
	t.Commands = []*cobra.Command{
		t.tree.Root,
	}
	return t
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return l
}
