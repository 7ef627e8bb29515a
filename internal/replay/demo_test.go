package replay

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
)

func TestDemoLaps(t *testing.T) {
	laps := DemoLaps(rand.New(rand.NewSource(1)), 10, 25)

	// 10 min at 30 s per length is 20 lengths with a rest after every
	// fourth except the last.
	var swims, rests int
	for i, l := range laps {
		require.Equal(t, i, l.Index)
		require.NoError(t, l.Validate())
		if l.IsRest {
			rests++
			assert.GreaterOrEqual(t, l.DurationSeconds, 10.0)
			assert.Less(t, l.DurationSeconds, 15.0)
			continue
		}
		swims++
		assert.Equal(t, lap.Freestyle, l.StrokeType)
		assert.GreaterOrEqual(t, l.DurationSeconds, 27.0)
		assert.Less(t, l.DurationSeconds, 33.0)
		assert.GreaterOrEqual(t, l.Strokes, 12)
		assert.Less(t, l.Strokes, 18)
	}
	assert.Equal(t, 20, swims)
	assert.Equal(t, 4, rests)
	assert.False(t, laps[len(laps)-1].IsRest)
	assert.True(t, laps[4].IsRest)
}

func TestDemoLaps_AtLeastOneLength(t *testing.T) {
	laps := DemoLaps(rand.New(rand.NewSource(1)), 0, 50)
	require.Len(t, laps, 1)
	assert.False(t, laps[0].IsRest)
}

func TestDemoEntries(t *testing.T) {
	a := DemoEntries(7, 5, 25, 0)
	b := DemoEntries(7, 5, 25, 0)
	require.Len(t, a, DefaultLaneCount)
	assert.Empty(t, cmp.Diff(a, b), "same seed, same session")

	ids := map[uuid.UUID]bool{}
	for _, e := range a {
		ids[e.ID] = true
	}
	assert.Len(t, ids, DefaultLaneCount)

	// Adding lanes leaves existing lanes unchanged.
	more := DemoEntries(7, 5, 25, DefaultLaneCount+2)
	assert.Empty(t, cmp.Diff(a, more[:DefaultLaneCount]))

	s, err := session.New(config.DefaultTuningConfig(), a)
	require.NoError(t, err)
	assert.Len(t, s.Swimmers(), DefaultLaneCount)
}
