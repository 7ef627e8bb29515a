package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestRealClock_NewTicker(t *testing.T) {
	clock := RealClock{}
	ticker := clock.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		// Ticker fired as expected
	case <-time.After(100 * time.Millisecond):
		t.Error("ticker did not fire")
	}
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	clock := NewMockClock(fixedTime)
	now := clock.Now()

	if !now.Equal(fixedTime) {
		t.Errorf("got %v, want %v", now, fixedTime)
	}
}

func TestMockClock_Set(t *testing.T) {
	clock := NewMockClock(time.Time{})
	newTime := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	clock.Set(newTime)

	if !clock.Now().Equal(newTime) {
		t.Errorf("got %v, want %v", clock.Now(), newTime)
	}
}

func TestMockClock_AdvanceAndSince(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(1500 * time.Millisecond)

	if got := clock.Since(start); got != 1500*time.Millisecond {
		t.Errorf("Since() = %v, want 1.5s", got)
	}
}

func TestMockTicker_FiresOnAdvance(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()

	if clock.TickerCount() != 1 {
		t.Fatalf("TickerCount() = %d, want 1", clock.TickerCount())
	}

	clock.Advance(500 * time.Millisecond)
	select {
	case <-ticker.C():
		t.Fatal("ticker fired early")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	select {
	case tick := <-ticker.C():
		if !tick.Equal(time.Unix(1, 0)) {
			t.Errorf("tick = %v, want %v", tick, time.Unix(1, 0))
		}
	default:
		t.Fatal("ticker did not fire")
	}
}

func TestMockTicker_Stop(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()
	clock.Advance(2 * time.Second)

	select {
	case <-ticker.C():
		t.Fatal("stopped ticker fired")
	default:
	}
}

func TestMockTicker_Trigger(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	ticker := clock.NewTicker(time.Hour).(*MockTicker)
	ticker.Trigger(time.Unix(5, 0))

	select {
	case tick := <-ticker.C():
		if !tick.Equal(time.Unix(5, 0)) {
			t.Errorf("tick = %v, want %v", tick, time.Unix(5, 0))
		}
	default:
		t.Fatal("Trigger did not deliver a tick")
	}
}

func TestFrameTimer_Delta(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))
	frames := NewFrameTimer(clock, 100*time.Millisecond)

	clock.Advance(16 * time.Millisecond)
	if got := frames.Delta(); got != 0.016 {
		t.Errorf("Delta() = %v, want 0.016", got)
	}

	clock.Advance(5 * time.Second)
	if got := frames.Delta(); got != 0.1 {
		t.Errorf("Delta() after stall = %v, want capped 0.1", got)
	}

	if got := frames.Delta(); got != 0 {
		t.Errorf("Delta() with no elapsed time = %v, want 0", got)
	}
}
