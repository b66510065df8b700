// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/arbor"
	"github.com/cockroachdb/errors"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const basicTree = `1 root
 2 left
  4 leaf
 3 right
`

func testLoader() (*loader, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	return &loader{table: "nodes", logger: logger}, hook
}

func loadFile(t *testing.T, l *loader, path string) *forest {
	t.Helper()
	f, err := l.load(context.Background(), path)
	require.NoError(t, err)
	return f
}

func renderForest(f *forest) string {
	return (&treeT{}).render(f, true)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	l, _ := testLoader()
	want := renderForest(loadFile(t, l, "testdata/inputs/basic.tree"))
	require.Equal(t, "1(root)\n├── 2(left)\n│   └── 4(leaf)\n└── 3(right)\n", want)

	t.Run("zstd", func(t *testing.T) {
		var buf bytes.Buffer
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(basicTree))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := writeFile(t, "basic.tree.zst", buf.Bytes())
		require.Equal(t, want, renderForest(loadFile(t, l, path)))
	})

	t.Run("snappy", func(t *testing.T) {
		var buf bytes.Buffer
		w := snappy.NewBufferedWriter(&buf)
		_, err := w.Write([]byte(basicTree))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		path := writeFile(t, "basic.tree.sz", buf.Bytes())
		require.Equal(t, want, renderForest(loadFile(t, l, path)))
	})

	t.Run("txt", func(t *testing.T) {
		path := writeFile(t, "basic.txt", []byte(basicTree))
		require.Equal(t, want, renderForest(loadFile(t, l, path)))
	})

	t.Run("unknown", func(t *testing.T) {
		path := writeFile(t, "basic.csv", []byte(basicTree))
		_, err := l.load(context.Background(), path)
		require.ErrorContains(t, err, `unknown input format ".csv"`)
	})
}

func TestLoadRecords(t *testing.T) {
	l, hook := testLoader()
	f := loadFile(t, l, "testdata/inputs/records.yaml")
	require.Len(t, f.roots, 1)
	require.Len(t, f.orphans, 1)
	require.Equal(t, "9", f.orphans[0].ID())

	// The orphan is logged, tagged with the file it came from.
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "testdata/inputs/records.yaml", entry.Data["file"])
	require.Contains(t, entry.Message, "missing parent 7")

	// JSON uses the same schema; children follow record order.
	f = loadFile(t, l, "testdata/inputs/records.json")
	require.Equal(t, "3 2", joinIDs(slices.Values(f.roots[0].Children())))

	for _, c := range []struct {
		name, data, err string
	}{
		{"noid.yaml", "- name: x\n", "record 0: missing id"},
		{"extra.yaml", "- id: a\n  colour: red\n", "field colour not found"},
		{"scalar.yaml", "id: a\n", "cannot unmarshal"},
	} {
		t.Run(c.name, func(t *testing.T) {
			_, err := l.load(context.Background(), writeFile(t, c.name, []byte(c.data)))
			require.ErrorContains(t, err, c.err)
		})
	}

	// Numeric ids decode as strings.
	path := writeFile(t, "numeric.yaml", []byte("- id: 10\n- id: 11\n  parent: 10\n"))
	f = loadFile(t, l, path)
	require.Equal(t, "10 11", joinIDs(arbor.BreadthFirst(f.roots[0])))
}

func TestLoadStrict(t *testing.T) {
	l, hook := testLoader()
	l.strict = true

	_, err := l.load(context.Background(), "testdata/inputs/two.yaml")
	require.True(t, errors.Is(err, arbor.ErrAmbiguousRoot), "%v", err)

	path := writeFile(t, "two.tree", []byte("a\nb\n"))
	_, err = l.load(context.Background(), path)
	require.True(t, errors.Is(err, arbor.ErrAmbiguousRoot), "%v", err)
	require.ErrorContains(t, err, "2 trees, expected one")

	_, err = l.load(context.Background(), "testdata/inputs/cycle.yaml")
	require.True(t, errors.Is(err, arbor.ErrCycle), "%v", err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	require.Equal(t, "arbor: node b is its own ancestor", entry.Message)

	f := loadFile(t, l, "testdata/inputs/basic.tree")
	require.Len(t, f.roots, 1)
}

func createDB(t *testing.T, table string, rows [][4]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodes.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE "` + table + `" (
		id TEXT PRIMARY KEY,
		parent_id TEXT,
		name TEXT,
		value TEXT
	)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO "`+table+`" VALUES (?, ?, ?, ?)`, r[0], r[1], r[2], r[3])
		require.NoError(t, err)
	}
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createDB(t, "nodes", [][4]any{
		{"1", nil, "root", nil},
		{"2", "1", "left", "L"},
		{"3", "1", "right", nil},
		{"4", "2", "leaf", "x"},
		{"9", "7", "lost", nil},
	})
	l, hook := testLoader()
	f := loadFile(t, l, path)
	require.Equal(t, strings.Join([]string{
		"1(root)",
		"├── 2(left)=L",
		"│   └── 4(leaf)=x",
		"└── 3(right)",
		"orphans:",
		"9(lost)",
		"",
	}, "\n"), renderForest(f))
	require.Len(t, hook.AllEntries(), 1)

	l.table = "missing"
	_, err := l.load(context.Background(), path)
	require.ErrorContains(t, err, "reading table missing")

	l.table = `nodes"; DROP TABLE nodes; --`
	_, err = l.load(context.Background(), path)
	require.ErrorContains(t, err, "invalid table name")

	_, err = (&loader{table: "nodes", logger: l.logger}).load(
		context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
}

// runCommand runs a tree subcommand that is expected to succeed and returns
// everything it printed.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	out, code := runCommandExit(t, args...)
	require.Equal(t, 0, code, "%s", out)
	return out
}

// runCommandExit runs a tree subcommand and returns everything it printed and
// the status it exited with.
func runCommandExit(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var buf bytes.Buffer
	code := 0
	stdout, stderr = &buf, &buf
	osExit = func(c int) { code = c }
	defer func() {
		stdout, stderr = os.Stdout, os.Stderr
		osExit = os.Exit
	}()

	c := &cobra.Command{}
	c.AddCommand(New(Concurrency(2)).Commands...)
	c.SetArgs(append([]string{"tree"}, args...))
	c.SetOut(&buf)
	c.SetErr(&buf)
	require.NoError(t, c.Execute())
	return buf.String(), code
}

func TestStats(t *testing.T) {
	out := runCommand(t, "stats",
		"testdata/inputs/basic.tree", "testdata/inputs/perfect.tree", "testdata/inputs/records.yaml")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Header, three rows and four rules.
	require.Len(t, lines, 7)
	require.Contains(t, lines[1], "FILE")
	require.Contains(t, lines[3], "testdata/inputs/basic.tree")
	require.Contains(t, lines[4], "testdata/inputs/perfect.tree")
	require.Contains(t, lines[5], "testdata/inputs/records.yaml")
	require.Regexp(t, `perfect\.tree\s+\|\s+1 \|\s+0 \|\s+7 \|\s+4 \|\s+3 \|\s+2 \| yes\s+\| yes\s+\| yes\s+\| yes`, lines[4])
	require.Regexp(t, `basic\.tree\s+\|\s+1 \|\s+0 \|\s+4 \|\s+2 \|\s+2 \|\s+2 \| yes\s+\| yes\s+\| yes\s+\| no`, lines[3])
	require.Regexp(t, `records\.yaml\s+\|\s+1 \|\s+1 \|\s+5 \|`, lines[5])

	out = runCommand(t, "stats", "--percentiles", "testdata/inputs/basic.tree")
	require.Contains(t, out,
		"testdata/inputs/basic.tree: leaf depth mean: 1.50 p50: 1 p90: 2 p99: 2 max: 2\n")

	out = runCommand(t, "stats", "--plot", "testdata/inputs/perfect.tree")
	require.Contains(t, out, "testdata/inputs/perfect.tree: nodes per depth")

	out, code := runCommandExit(t, "stats", "-c", "1", "testdata/inputs/basic.tree", "testdata/inputs/missing.tree")
	require.Equal(t, "open testdata/inputs/missing.tree: no such file or directory\n", out)
	require.Equal(t, 1, code)
}

func TestDiffCompressed(t *testing.T) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	_, err := w.Write([]byte(basicTree))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	path := writeFile(t, "basic.tree.sz", buf.Bytes())

	require.Equal(t, "no differences\n", runCommand(t, "diff", "testdata/inputs/basic.tree", path))
	out := runCommand(t, "diff", "--context", "0", path, "testdata/inputs/changed.tree")
	require.Contains(t, out, "-│   └── 4(leaf)\n")
	require.NotContains(t, out, " 1(root)\n")
}

func TestExitStatus(t *testing.T) {
	for _, c := range []struct {
		args []string
		code int
		out  string
	}{
		{[]string{"validate", "testdata/inputs/basic.tree"}, 0, "ok\n"},
		{[]string{"validate", "testdata/inputs/dup.tree"}, 1, "arbor: duplicate node id 2\n"},
		{[]string{"show", "testdata/inputs/missing.tree"}, 1, "no such file or directory\n"},
		{[]string{"build", "--strict", "testdata/inputs/two.yaml"}, 1, "arbor: 2 nodes lack a parent id: [x y]\n"},
		{[]string{"inspect", "testdata/inputs/basic.tree", "99"}, 1, `no node with id "99"`},
		{[]string{"inspect", "testdata/inputs/dup.tree", "2"}, 1, "arbor: duplicate node id 2\n"},
		{[]string{"lca", "testdata/inputs/perfect.tree", "a", "q"}, 1, `no node with id "q"`},
		{[]string{"lca", "testdata/inputs/perfect.tree", "a", "d"}, 0, "none\n"},
		{[]string{"walk", "testdata/inputs/cycle.yaml"}, 1, "is its own ancestor\n"},
		{[]string{"diff", "testdata/inputs/basic.tree", "testdata/inputs/missing.tree"}, 1, "no such file or directory\n"},
		{[]string{"diff", "testdata/inputs/basic.tree", "testdata/inputs/changed.tree"}, 0, "+    └── 4(leaf)\n"},
	} {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			out, code := runCommandExit(t, c.args...)
			require.Equal(t, c.code, code, "%s", out)
			require.Contains(t, out, c.out)
		})
	}
}
