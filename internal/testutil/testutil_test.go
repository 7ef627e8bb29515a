package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
)

// fakeTB records fatal calls instead of stopping the goroutine.
type fakeTB struct {
	testing.TB
	failed bool
	msg    string
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Fatal(args ...any) {
	f.failed = true
	f.msg = fmt.Sprint(args...)
}

func (f *fakeTB) Fatalf(format string, args ...any) {
	f.failed = true
	f.msg = fmt.Sprintf(format, args...)
}

func TestAssertNoError(t *testing.T) {
	ok := &fakeTB{TB: t}
	AssertNoError(ok, nil)
	if ok.failed {
		t.Error("expected no failure for nil error")
	}

	bad := &fakeTB{TB: t}
	AssertNoError(bad, errors.New("boom"))
	if !bad.failed || bad.msg != "unexpected error: boom" {
		t.Errorf("failed=%v msg=%q", bad.failed, bad.msg)
	}
}

func TestAssertError(t *testing.T) {
	ok := &fakeTB{TB: t}
	AssertError(ok, errors.New("expected"))
	if ok.failed {
		t.Error("expected no failure for non-nil error")
	}

	bad := &fakeTB{TB: t}
	AssertError(bad, nil)
	if !bad.failed {
		t.Error("expected failure for nil error")
	}
}

func TestCaptureLogs(t *testing.T) {
	c := CaptureLogs(t)
	monitoring.Warnf("lane %d", 3)
	monitoring.Logf("plain")

	if got := c.Lines(); len(got) != 2 || got[0] != "warning: lane 3" {
		t.Fatalf("Lines() = %q", got)
	}
	if c.Count("warning:") != 1 {
		t.Errorf("Count(warning:) = %d, want 1", c.Count("warning:"))
	}
}

func TestMuteLogs(t *testing.T) {
	c := CaptureLogs(t)
	t.Run("muted", func(t *testing.T) {
		MuteLogs(t)
		monitoring.Logf("hidden")
	})
	monitoring.Logf("visible")
	if got := c.Lines(); len(got) != 1 || got[0] != "visible" {
		t.Errorf("Lines() = %q, want only the line logged after the muted subtest", got)
	}
}

func TestLengths(t *testing.T) {
	laps := Lengths(3, lap.Backstroke, 30, 14)
	if len(laps) != 3 {
		t.Fatalf("len = %d, want 3", len(laps))
	}
	for i, l := range laps {
		if l.Index != i || l.StrokeType != lap.Backstroke || l.DurationSeconds != 30 || l.Strokes != 14 {
			t.Errorf("lap %d = %+v", i, l)
		}
		if err := l.Validate(); err != nil {
			t.Errorf("lap %d invalid: %v", i, err)
		}
	}
}

func TestWithRest(t *testing.T) {
	laps := WithRest(Lengths(4, lap.Freestyle, 30, 14), 1, 12)
	if len(laps) != 5 {
		t.Fatalf("len = %d, want 5", len(laps))
	}
	if !laps[2].IsRest || laps[2].DurationSeconds != 12 {
		t.Errorf("rest lap = %+v", laps[2])
	}
	for i, l := range laps {
		if l.Index != i {
			t.Errorf("laps[%d].Index = %d", i, l.Index)
		}
	}
}
