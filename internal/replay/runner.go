package replay

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/monitoring"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/session"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/timeutil"
)

const (
	defaultFrameRate = 60.0
	defaultMaxDelta  = 250 * time.Millisecond
)

// Stats summarises a run.
type Stats struct {
	Frames        int
	Spawned       int
	PeakParticles int
	Warnings      int
	SimSeconds    float64
}

func (s *Stats) observe(f session.Frame) {
	s.Frames++
	s.Warnings += len(f.Warnings)
	live := 0
	for _, sw := range f.Swimmers {
		s.Spawned += len(sw.Spawns)
		live += len(sw.Particles)
	}
	if live > s.PeakParticles {
		s.PeakParticles = live
	}
}

// Runner plays a session in real time.
type Runner struct {
	Session *session.Session
	// Clock defaults to timeutil.RealClock.
	Clock timeutil.Clock
	// FrameRate is ticks per second; defaults to 60.
	FrameRate float64
	// Speed is the playback multiplier; zero means 1.
	Speed float64
	// MaxDelta caps the wall time handed to one tick; defaults to 250ms.
	MaxDelta time.Duration
	// OnFrame, when set, receives every frame on the Run goroutine.
	OnFrame func(session.Frame)
}

// Run ticks the session once per frame interval, using the measured wall
// time between ticks as dt. It returns when every swimmer has finished, or
// with ctx.Err() when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	if r.Session == nil {
		return Stats{}, errors.New("runner has no session")
	}
	clock := r.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	fps := r.FrameRate
	if !(fps > 0) || math.IsInf(fps, 0) {
		fps = defaultFrameRate
	}
	maxDelta := r.MaxDelta
	if maxDelta <= 0 {
		maxDelta = defaultMaxDelta
	}
	interval := time.Duration(float64(time.Second) / fps)
	controls := session.Controls{IsPlaying: true, SpeedMultiplier: r.Speed}

	timer := timeutil.NewFrameTimer(clock, maxDelta)
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	monitoring.Logf("replay: %d swimmers, %.1fs session, interval=%v speed=%v",
		len(r.Session.Swimmers()), r.Session.Duration(), interval, controls.SpeedMultiplier)

	var stats Stats
	for {
		select {
		case <-ctx.Done():
			stats.SimSeconds = r.Session.Progress() * r.Session.Duration()
			monitoring.Logf("replay: stopping due to context cancellation after %d frames", stats.Frames)
			return stats, ctx.Err()
		case <-ticker.C():
			frame := r.Session.Tick(timer.Delta(), controls)
			stats.observe(frame)
			if r.OnFrame != nil {
				r.OnFrame(frame)
			}
			if r.Session.Finished() {
				stats.SimSeconds = r.Session.Duration()
				monitoring.Logf("replay: session finished after %d frames", stats.Frames)
				return stats, nil
			}
		}
	}
}

// RunHeadless ticks s with a fixed dt until every swimmer has finished or
// maxFrames frames have run (maxFrames <= 0 means no limit).
func RunHeadless(s *session.Session, dt, speed float64, maxFrames int, onFrame func(session.Frame)) Stats {
	controls := session.Controls{IsPlaying: true, SpeedMultiplier: speed}
	var stats Stats
	for !s.Finished() && (maxFrames <= 0 || stats.Frames < maxFrames) {
		frame := s.Tick(dt, controls)
		stats.observe(frame)
		if onFrame != nil {
			onFrame(frame)
		}
	}
	stats.SimSeconds = s.Progress() * s.Duration()
	return stats
}
