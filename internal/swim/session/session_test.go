package session

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/debug"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/lap"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/testutil"
)

var playing = Controls{IsPlaying: true, SpeedMultiplier: 1}

func init() { motion.SetStrictFinite(true) }

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := New(config.DefaultTuningConfig(), []Entry{
		{ID: uuid.MustParse("6f1c0f9e-57a4-4d43-9a0c-5f3c1d4b2a10"), Name: "lane one", Laps: mixedLaps()},
	}, opts...)
	require.NoError(t, err)
	return s
}

// runFor ticks the session for the given session seconds in steps of dt.
func runFor(s *Session, seconds, dt float64, c Controls) Frame {
	var f Frame
	n := int(math.Round(seconds / dt))
	for i := 0; i < n; i++ {
		f = s.Tick(dt, c)
	}
	return f
}

func ptr(v float64) *float64 { return &v }

func TestSession_TickGranularityIndependence(t *testing.T) {
	fine := newTestSession(t)
	coarse := newTestSession(t)

	a := runFor(fine, 40, 1.0/60, playing).Swimmers[0].State
	b := runFor(coarse, 40, 0.25, playing).Swimmers[0].State

	require.Equal(t, 1, a.LapIndex)
	assert.Equal(t, motion.PhaseSwimming, a.Phase)
	assert.Equal(t, a.Phase, b.Phase)
	assert.Equal(t, a.LapIndex, b.LapIndex)
	assert.Equal(t, a.StrokeCount, b.StrokeCount)
	assert.InDelta(t, a.Position, b.Position, 1e-6)
	assert.InDelta(t, 40-27.3, b.Elapsed, 1e-9, "lap-end leftover is carried into the next lap")
}

func TestSession_RendezvousEntersTurn(t *testing.T) {
	s := newTestSession(t)

	var st motion.State
	for i := 0; i < 1000; i++ {
		st = s.Tick(0.1, playing).Swimmers[0].State
		if st.LapIndex == 1 {
			break
		}
	}
	require.Equal(t, 1, st.LapIndex)
	assert.Equal(t, motion.PhaseTurning, st.Phase)
	assert.Equal(t, 24.5, st.Position)
	assert.Equal(t, 1, st.Direction, "direction flips only when the turn completes")
}

func TestSession_RunsToFinish(t *testing.T) {
	s := newTestSession(t)
	capacity := config.DefaultTuningConfig().GetParticleCapacity()

	var f Frame
	var spawned int
	for i := 0; i < 100000 && !s.Finished(); i++ {
		f = s.Tick(1.0/30, Controls{IsPlaying: true, SpeedMultiplier: 4})
		sw := f.Swimmers[0]
		require.LessOrEqual(t, len(sw.Particles), capacity)
		if len(sw.Spawns) > 0 {
			require.Equal(t, motion.PhaseSwimming, sw.State.Phase, "spawns only while swimming")
			spawned += len(sw.Spawns)
		}
	}
	require.True(t, s.Finished())
	st := f.Swimmers[0].State
	assert.Equal(t, 3, st.LapIndex)
	assert.Equal(t, motion.PhaseFinished, st.Phase)
	assert.Equal(t, 24.5, st.Position)
	assert.Equal(t, 13, st.StrokeCount)
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
	assert.Positive(t, spawned)
}

func TestSession_PauseFreezesEverythingButTurns(t *testing.T) {
	s := newTestSession(t)
	before := runFor(s, 10, 1.0/60, playing).Swimmers[0]
	require.Equal(t, motion.PhaseSwimming, before.State.Phase)

	paused := runFor(s, 2, 1.0/60, Controls{IsPlaying: false, SpeedMultiplier: 1}).Swimmers[0]
	assert.Empty(t, cmp.Diff(before.State, paused.State))
	assert.Empty(t, cmp.Diff(before.Particles, paused.Particles))
	assert.Empty(t, paused.Spawns)
	assert.True(t, paused.Command.Paused)

	// Play into the first turn, then pause: the turn still completes.
	var st motion.State
	for i := 0; i < 10000 && st.Phase != motion.PhaseTurning; i++ {
		st = s.Tick(1.0/60, playing).Swimmers[0].State
	}
	require.Equal(t, motion.PhaseTurning, st.Phase)
	st = runFor(s, 2, 1.0/60, Controls{IsPlaying: false}).Swimmers[0].State
	assert.Equal(t, motion.PhaseStartGlide, st.Phase)
	assert.Equal(t, -1, st.Direction)
}

func TestSession_ScrubMatchesPlayback(t *testing.T) {
	played := newTestSession(t)
	want := runFor(played, 45, 0.25, playing).Swimmers[0].State

	scrubbed := newTestSession(t)
	runFor(scrubbed, 5, 0.25, playing)
	f := scrubbed.Tick(0, Controls{TimelineProgress: ptr(45 / scrubbed.Duration())})
	got := f.Swimmers[0]

	assert.Equal(t, want.LapIndex, got.State.LapIndex)
	assert.Equal(t, want.Phase, got.State.Phase)
	assert.Equal(t, want.StrokeCount, got.State.StrokeCount)
	assert.Equal(t, want.Direction, got.State.Direction)
	assert.InDelta(t, want.Position, got.State.Position, 1e-6)
	assert.InDelta(t, want.Yaw, got.State.Yaw, 1e-12)
	assert.Empty(t, got.Particles, "scrub clears particles")
	assert.Empty(t, got.Spawns)
	assert.Equal(t, motion.ModeTime, got.Command.Mode)
}

func TestSession_ScrubIntoTurnIsRejected(t *testing.T) {
	s := newTestSession(t)
	runFor(s, 5, 0.25, playing)
	sw := s.Swimmers()[0]
	before := sw.State()
	live := sw.LiveParticles()
	require.Equal(t, 0, before.LapIndex)

	// 27.5 s is inside lap 1's turn (27.3 s .. 28.2 s).
	rejected := s.Seek(27.5 / s.Duration())
	assert.Equal(t, 1, rejected)
	assert.Empty(t, cmp.Diff(before, sw.State()), "rejected scrub changes nothing")
	assert.Equal(t, live, sw.LiveParticles())
	assert.InDelta(t, 5, sw.SessionTime(), 1e-9)

	// Scrubbing into lap 1 past its turn is accepted.
	assert.Zero(t, s.Seek(45/s.Duration()))
	st := sw.State()
	assert.Equal(t, 1, st.LapIndex)
	assert.Equal(t, -1, st.Direction)
	assert.Zero(t, sw.LiveParticles())

	// And back to the first lap.
	assert.Zero(t, s.Seek(10/s.Duration()))
	assert.Equal(t, 0, sw.State().LapIndex)
}

func TestSession_TrailingRestFinishes(t *testing.T) {
	s, err := New(config.DefaultTuningConfig(), []Entry{{
		Name: "rest last",
		Laps: []lap.Descriptor{
			{Index: 0, DurationSeconds: 25, Strokes: 12, StrokeType: lap.Freestyle},
			{Index: 1, DurationSeconds: 10, IsRest: true},
		},
	}})
	require.NoError(t, err)

	var f Frame
	for i := 0; i < 100000 && !s.Finished(); i++ {
		f = s.Tick(0.25, playing)
	}
	require.True(t, s.Finished())
	st := f.Swimmers[0].State
	assert.Equal(t, 1, st.LapIndex)
	assert.Equal(t, motion.PhaseRest, st.Phase)
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
	assert.InDelta(t, 35, s.Swimmers()[0].SessionTime(), 1e-9)

	// Scrubbing back into the swim un-finishes the session.
	assert.Zero(t, s.Seek(0.5))
	assert.False(t, s.Finished())
}

func TestSession_ScrubToEndFinishes(t *testing.T) {
	s := newTestSession(t)
	assert.Zero(t, s.Seek(1))
	assert.True(t, s.Finished())
	assert.InDelta(t, 1.0, s.Progress(), 1e-9)
}

func TestSession_AnimatorFailureIsOnlyAWarning(t *testing.T) {
	testutil.MuteLogs(t)
	var applied []motion.Command
	recording := motion.AnimatorFunc(func(id uuid.UUID, cmd motion.Command) error {
		applied = append(applied, cmd)
		return motion.DefaultClipSet().Apply(id, cmd)
	})
	failing := newTestSession(t, WithAnimator(motion.ClipSet{}))
	clean := newTestSession(t, WithAnimator(recording))

	for i := 0; i < 600; i++ {
		f := failing.Tick(1.0/60, playing)
		g := clean.Tick(1.0/60, playing)
		require.NotEmpty(t, f.Warnings)
		require.Empty(t, g.Warnings)
		require.Empty(t, cmp.Diff(g.Swimmers, f.Swimmers), "motion is independent of the animator")
	}
	assert.Len(t, applied, 600)
}

func TestSession_MultipleSwimmers(t *testing.T) {
	idA := uuid.MustParse("00000000-0000-4000-8000-00000000000a")
	s, err := New(config.DefaultTuningConfig(), []Entry{
		{ID: idA, Name: "a", Laps: mixedLaps()},
		{Name: "b", Laps: []lap.Descriptor{{Index: 0, DurationSeconds: 20, Strokes: 10, StrokeType: lap.Butterfly}}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 97.3, s.Duration(), 1e-9)
	f := runFor(s, 10, 1.0/60, playing)
	require.Len(t, f.Swimmers, 2)
	assert.Equal(t, idA, f.Swimmers[0].SwimmerID)
	assert.NotEqual(t, uuid.Nil, f.Swimmers[1].SwimmerID)
	assert.Equal(t, 0.0, f.Swimmers[0].State.LaneOffset)
	assert.Equal(t, 2.5, f.Swimmers[1].State.LaneOffset)
	for _, sw := range f.Swimmers {
		for _, ev := range sw.Spawns {
			assert.Equal(t, sw.SwimmerID, ev.SwimmerID)
		}
	}

	// The shorter swimmer finishes and stays put while the other continues.
	f = runFor(s, 15, 1.0/60, playing)
	assert.Equal(t, motion.PhaseFinished, f.Swimmers[1].State.Phase)
	assert.False(t, s.Finished())
}

func TestSession_Deterministic(t *testing.T) {
	run := func() []Frame {
		s := newTestSession(t)
		var frames []Frame
		for i := 0; i < 900; i++ {
			frames = append(frames, s.Tick(1.0/60, playing))
		}
		return frames
	}
	assert.Empty(t, cmp.Diff(run(), run()))
}

func TestSession_DebugFrames(t *testing.T) {
	collector := debug.NewDebugCollector()
	collector.SetEnabled(true)
	s := newTestSession(t, WithDebugCollector(collector))

	var transitions []debug.PhaseTransition
	var accepted int
	for i := 0; i < 600; i++ {
		f := s.Tick(1.0/60, playing)
		require.NotNil(t, f.Debug)
		assert.Equal(t, f.ID, f.Debug.FrameID)
		transitions = append(transitions, f.Debug.Transitions...)
		for _, d := range f.Debug.SpawnDecisions {
			if d.Outcome == debug.SpawnAccepted {
				accepted++
			}
		}
	}
	require.NotEmpty(t, transitions)
	assert.Equal(t, "start_glide", transitions[0].From)
	assert.Equal(t, "swimming", transitions[0].To)
	assert.Positive(t, accepted)
}

func TestNew_Rejects(t *testing.T) {
	testutil.MuteLogs(t)
	_, err := New(config.DefaultTuningConfig(), nil)
	assert.Error(t, err)

	_, err = New(config.DefaultTuningConfig(), []Entry{
		{Name: "bad", Laps: []lap.Descriptor{{Index: 0, DurationSeconds: -1}}},
	})
	assert.ErrorIs(t, err, lap.ErrInvalidLap)

	// Unknown strokes only warn.
	s, err := New(config.DefaultTuningConfig(), []Entry{
		{Name: "side", Laps: []lap.Descriptor{{Index: 0, DurationSeconds: 20, Strokes: 10, StrokeType: "sidestroke"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, lap.Freestyle, s.Swimmers()[0].State().StrokeType)
}

func TestSession_InvalidSpeedWarns(t *testing.T) {
	testutil.MuteLogs(t)
	s := newTestSession(t)
	f := s.Tick(0.1, Controls{IsPlaying: true, SpeedMultiplier: -2})
	assert.Len(t, f.Warnings, 1)
	assert.InDelta(t, 0.1, f.Swimmers[0].State.Elapsed, 1e-12)
}

func TestSummarize(t *testing.T) {
	cadence := 40.0
	laps := mixedLaps()
	laps[1].Cadence = &cadence

	sum := Summarize("lane one", laps, 25)
	require.Len(t, sum.Laps, 4)
	assert.Equal(t, 3, sum.Lengths)
	assert.InDelta(t, 75.0, sum.DistanceM, 1e-12)
	assert.InDelta(t, 85.3, sum.SwimSeconds, 1e-9)
	assert.InDelta(t, 12.0, sum.RestSeconds, 1e-12)

	assert.Equal(t, 2*time.Minute, sum.Laps[1].Pace)
	assert.Equal(t, 40.0, sum.Laps[1].StrokeRate, "recorded cadence wins")
	assert.InDelta(t, 12/27.3*60, sum.Laps[0].StrokeRate, 1e-9)
	assert.Zero(t, sum.Laps[2].Pace)

	wantPace := (27.3*4 + 120 + 28*4) / 3
	assert.InDelta(t, wantPace, sum.MeanPace.Seconds(), 1e-6)
	assert.InDelta(t, (12/27.3*60+40+13/28.0*60)/3, sum.MeanStrokeRate, 1e-9)
	assert.Equal(t, 26, sum.StrokesByType[lap.Freestyle])
	assert.Equal(t, 13, sum.StrokesByType[lap.Backstroke])

	empty := Summarize("rest only", []lap.Descriptor{{Index: 0, DurationSeconds: 30, IsRest: true}}, 25)
	assert.Zero(t, empty.MeanPace)
	assert.Zero(t, empty.Lengths)
}

func TestSession_Summaries(t *testing.T) {
	s := newTestSession(t)
	sums := s.Summaries()
	require.Len(t, sums, 1)
	assert.Equal(t, "lane one", sums[0].Name)
	assert.Equal(t, 3, sums[0].Lengths)
}
