// Package testutil provides shared test utilities and swim fixtures.
//
// It may import only internal/swim/lap and internal/monitoring so that any
// package above lap can use it from its tests.
package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// MuteLogs silences monitoring.Logf for the rest of the test.
func MuteLogs(t testing.TB) {
	t.Helper()
	old := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = old })
}

// LogCapture collects monitoring output.
type LogCapture struct {
	mu    sync.Mutex
	lines []string
}

// CaptureLogs redirects monitoring.Logf into the returned capture for the
// rest of the test.
func CaptureLogs(t testing.TB) *LogCapture {
	t.Helper()
	c := &LogCapture{}
	old := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.lines = append(c.lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = old })
	return c
}

// Lines returns a copy of the captured lines.
func (c *LogCapture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.lines...)
}

// Count returns how many captured lines contain substr.
func (c *LogCapture) Count(substr string) int {
	n := 0
	for _, l := range c.Lines() {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

// Lengths returns n consecutive swim laps of the same stroke, duration and
// stroke count, indexed from 0.
func Lengths(n int, stroke lap.StrokeType, seconds float64, strokes int) []lap.Descriptor {
	laps := make([]lap.Descriptor, n)
	for i := range laps {
		laps[i] = lap.Descriptor{
			Index:           i,
			DurationSeconds: seconds,
			Strokes:         strokes,
			StrokeType:      stroke,
		}
	}
	return laps
}

// WithRest inserts a rest lap of the given duration after position after and
// renumbers the indices.
func WithRest(laps []lap.Descriptor, after int, seconds float64) []lap.Descriptor {
	out := make([]lap.Descriptor, 0, len(laps)+1)
	out = append(out, laps[:after+1]...)
	out = append(out, lap.Descriptor{DurationSeconds: seconds, IsRest: true})
	out = append(out, laps[after+1:]...)
	for i := range out {
		out[i].Index = i
	}
	return out
}
