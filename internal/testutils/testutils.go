// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package testutils contains helpers shared by tests.
package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// Logger is a logger that writes to a testing.TB and keeps a copy of every
// message so tests can assert on what was logged.
type Logger struct {
	T testing.TB

	mu   sync.Mutex
	msgs []string
}

// Infof implements base.Logger.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.record("I", format, args...)
}

// Errorf implements base.Logger.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.record("E", format, args...)
}

func (l *Logger) record(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.T != nil {
		l.T.Helper()
		l.T.Logf("%s %s", level, msg)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, level+" "+msg)
}

// String returns the logged messages, one per line.
func (l *Logger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.msgs) == 0 {
		return ""
	}
	return strings.Join(l.msgs, "\n") + "\n"
}

// Reset forgets the logged messages.
func (l *Logger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = nil
}

// CheckErr can be used to simplify test code that expects no errors.
// Instead of:
//
//	v, err := SomeFunc()
//	if err != nil { .. }
//
// we can use:
//
//	v := testutils.CheckErr(someFunc())
func CheckErr[V any](v V, err error) V {
	if err != nil {
		panic(err)
	}
	return v
}
