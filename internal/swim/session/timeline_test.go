package session

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/timing"
)

func testPool() timing.Pool {
	return timing.PoolFromTuning(config.DefaultTuningConfig())
}

// mixedLaps is free, free, rest, back: 97.3 s in total.
func mixedLaps() []lap.Descriptor {
	return []lap.Descriptor{
		{Index: 0, DurationSeconds: 27.3, Strokes: 12, StrokeType: lap.Freestyle},
		{Index: 1, DurationSeconds: 30, Strokes: 14, StrokeType: lap.Freestyle},
		{Index: 2, DurationSeconds: 12, IsRest: true},
		{Index: 3, DurationSeconds: 28, Strokes: 13, StrokeType: lap.Backstroke},
	}
}

func TestNewTimeline(t *testing.T) {
	tl, err := NewTimeline(mixedLaps(), testPool())
	require.NoError(t, err)

	assert.Equal(t, 4, tl.Len())
	assert.InDelta(t, 97.3, tl.Duration(), 1e-9)
	assert.Equal(t, 0.0, tl.Start(0))
	assert.InDelta(t, 27.3, tl.Start(1), 1e-12)
	assert.InDelta(t, 57.3, tl.Start(2), 1e-12)
	assert.InDelta(t, 69.3, tl.Start(3), 1e-12)
	assert.True(t, tl.Lap(3).IsLastLap, "final lap is always the last lap")
	assert.False(t, mixedLaps()[3].IsLastLap, "input is not modified")

	// Orientation alternates walls; the rest lap hands its wall through.
	assert.Equal(t, 0.5, tl.Orientation(0).StartWall)
	assert.Equal(t, 1, tl.Orientation(0).Away)
	assert.Equal(t, 24.5, tl.Orientation(1).StartWall)
	assert.Equal(t, -1, tl.Orientation(1).Away)
	assert.Equal(t, 0.5, tl.Orientation(2).StartWall)
	assert.Equal(t, tl.Orientation(2), tl.Orientation(3))
	assert.InDelta(t, math.Pi, tl.Orientation(2).EntryYaw, 1e-12)
}

func TestTimeline_LapAt(t *testing.T) {
	tl, err := NewTimeline(mixedLaps(), testPool())
	require.NoError(t, err)

	tests := []struct {
		name      string
		seconds   float64
		wantIndex int
		wantLocal float64
	}{
		{"before start", -5, 0, 0},
		{"start", 0, 0, 0},
		{"inside first", 10, 0, 10},
		{"lap boundary", 27.3, 1, 0},
		{"inside rest", 60, 2, 60 - 57.3},
		{"inside last", 80, 3, 80 - 69.3},
		{"end", 97.3, 3, 28},
		{"past end", 500, 3, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, local := tl.LapAt(tt.seconds)
			assert.Equal(t, tt.wantIndex, index)
			assert.InDelta(t, tt.wantLocal, local, 1e-9)
		})
	}
}

func TestNewTimeline_Rejects(t *testing.T) {
	pool := testPool()

	_, err := NewTimeline(nil, pool)
	assert.ErrorIs(t, err, ErrEmptyTimeline)

	tests := []struct {
		name  string
		laps  []lap.Descriptor
		field string
	}{
		{
			name:  "gap in indices",
			laps:  []lap.Descriptor{{Index: 0, DurationSeconds: 20}, {Index: 2, DurationSeconds: 20}},
			field: "index",
		},
		{
			name:  "zero duration",
			laps:  []lap.Descriptor{{Index: 0, DurationSeconds: 20}, {Index: 1, DurationSeconds: 0}},
			field: "duration_seconds",
		},
		{
			name:  "negative strokes",
			laps:  []lap.Descriptor{{Index: 0, DurationSeconds: 20, Strokes: -3}},
			field: "strokes",
		},
		{
			name:  "early last lap",
			laps:  []lap.Descriptor{{Index: 0, DurationSeconds: 20, IsLastLap: true}, {Index: 1, DurationSeconds: 20}},
			field: "is_last_lap",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeline(tt.laps, pool)
			require.Error(t, err)
			assert.True(t, errors.Is(err, lap.ErrInvalidLap))
			var cfgErr *lap.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}

	bad := pool
	bad.LengthM = 0.8
	_, err = NewTimeline(mixedLaps(), bad)
	assert.ErrorIs(t, err, timing.ErrInvalidPool)
}
