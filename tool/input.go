// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/arbor/internal/indenttree"
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// node is the node type used by all the tools: string ids, a name and a
// string value.
type node = arbor.Record[string, string]

// forest is the content of an input file.
type forest struct {
	path    string
	roots   []*node
	orphans []*node
}

// trees returns the roots followed by the orphans.
func (f *forest) trees() []*node {
	return append(slices.Clone(f.roots), f.orphans...)
}

// index indexes every tree of the forest, orphans included.
func (f *forest) index() (*arbor.Index[string, *node], error) {
	return arbor.NewIndex[string](f.trees()...)
}

// loader reads input files. The format is chosen by extension:
//
//   - .tree, .txt: one "<id> [name...]" line per node, children indented
//     below their parent;
//   - .yaml, .yml, .json: a list of {id, parent, name, value} records;
//   - .db, .sqlite: rows of (id, parent_id, name, value) from a table.
//
// Tree, YAML and JSON files may additionally be compressed with zstd (.zst)
// or framed snappy (.sz).
type loader struct {
	table  string
	logger *logrus.Logger
	// strict makes record inputs that do not form exactly one tree an error.
	strict bool
}

var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (l *loader) load(ctx context.Context, path string) (*forest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		records, err := l.readSQLite(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return l.assemble(path, records)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	inner := path
	switch ext {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		defer dec.Close()
		r = dec
		inner = strings.TrimSuffix(path, filepath.Ext(path))
	case ".sz":
		r = snappy.NewReader(f)
		inner = strings.TrimSuffix(path, filepath.Ext(path))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return l.parse(path, strings.ToLower(filepath.Ext(inner)), data)
}

func (l *loader) parse(path, ext string, data []byte) (*forest, error) {
	switch ext {
	case ".tree", ".txt":
		roots, err := parseIndented(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		if l.strict && len(roots) != 1 {
			return nil, errors.Mark(
				errors.Newf("%s: %d trees, expected one", path, len(roots)), arbor.ErrAmbiguousRoot)
		}
		return &forest{path: path, roots: roots}, nil
	case ".yaml", ".yml", ".json":
		records, err := parseRecords(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return l.assemble(path, records)
	default:
		return nil, errors.Newf("%s: unknown input format %q", path, ext)
	}
}

// assemble links flat records into trees.
func (l *loader) assemble(path string, records []*node) (*forest, error) {
	opts := []arbor.BuildOption{arbor.WithLogger(l.logger.WithField("file", path))}
	if l.strict {
		root, err := arbor.BuildTree[string](records, opts...)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		return &forest{path: path, roots: []*node{root}}, nil
	}
	f, err := arbor.Build[string](records, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return &forest{path: path, roots: f.Roots, orphans: f.Orphans}, nil
}

// parseIndented reads one "<id> [name...]" line per node.
func parseIndented(input string) ([]*node, error) {
	parsed, err := indenttree.Parse(input)
	if err != nil {
		return nil, err
	}
	var build func(p *indenttree.Node) *node
	build = func(p *indenttree.Node) *node {
		id, name, _ := strings.Cut(p.Value(), " ")
		n := arbor.NewRecord[string, string](id)
		n.Name = strings.TrimSpace(name)
		for _, c := range p.Children() {
			n.AddChildren(build(c))
		}
		return n
	}
	roots := make([]*node, len(parsed))
	for i := range parsed {
		roots[i] = build(&parsed[i])
	}
	return roots, nil
}

// record is the serialized form of a node in YAML and JSON inputs. JSON is
// read with the YAML decoder.
type record struct {
	ID     string  `yaml:"id"`
	Parent *string `yaml:"parent"`
	Name   string  `yaml:"name"`
	Value  string  `yaml:"value"`
}

func parseRecords(data []byte) ([]*node, error) {
	var records []record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil && err != io.EOF {
		return nil, err
	}
	nodes := make([]*node, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, errors.Newf("record %d: missing id", i)
		}
		nodes[i] = recordNode(r.ID, r.Parent, r.Name, r.Value)
	}
	return nodes, nil
}

func recordNode(id string, parent *string, name, value string) *node {
	var n *node
	if parent != nil {
		n = arbor.NewChildRecord[string, string](id, *parent)
	} else {
		n = arbor.NewRecord[string, string](id)
	}
	n.Name = name
	n.Value = value
	return n
}

func (l *loader) readSQLite(ctx context.Context, path string) ([]*node, error) {
	if !tableNameRE.MatchString(l.table) {
		return nil, errors.Newf("invalid table name %q", l.table)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, parent_id, name, value FROM "`+l.table+`"`)
	if err != nil {
		return nil, errors.Wrapf(err, "reading table %s", l.table)
	}
	defer rows.Close()

	var nodes []*node
	for rows.Next() {
		var id string
		var parent, name, value sql.NullString
		if err := rows.Scan(&id, &parent, &name, &value); err != nil {
			return nil, errors.Wrapf(err, "reading table %s", l.table)
		}
		var pid *string
		if parent.Valid {
			pid = &parent.String
		}
		nodes = append(nodes, recordNode(id, pid, name.String, value.String))
	}
	return nodes, rows.Err()
}
