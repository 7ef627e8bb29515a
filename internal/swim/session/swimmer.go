package session

import (
	"math"

	"github.com/google/uuid"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/splash"
)

// Swimmer is one lane of a session. It exclusively owns its controller and
// particle arena.
type Swimmer struct {
	id       uuid.UUID
	name     string
	lane     int
	timeline *Timeline
	ctrl     *motion.Controller
	arena    *splash.Arena
	current  int
}

// ID returns the swimmer's id.
func (s *Swimmer) ID() uuid.UUID { return s.id }

// Name returns the display name.
func (s *Swimmer) Name() string { return s.name }

// Lane returns the zero-based lane number.
func (s *Swimmer) Lane() int { return s.lane }

// Timeline returns the swimmer's lap timeline.
func (s *Swimmer) Timeline() *Timeline { return s.timeline }

// State returns the latest motion snapshot.
func (s *Swimmer) State() motion.State { return s.ctrl.State() }

// LiveParticles returns the number of live splash particles.
func (s *Swimmer) LiveParticles() int { return s.arena.Live() }

// SessionTime returns the swimmer's position on the session clock.
func (s *Swimmer) SessionTime() float64 {
	return s.timeline.Start(s.current) + s.ctrl.Elapsed()
}

// Finished reports whether the swimmer has completed the final lap. A
// timeline ending in a rest is finished once the rest is used up.
func (s *Swimmer) Finished() bool {
	switch s.ctrl.Phase() {
	case motion.PhaseFinished:
		return true
	case motion.PhaseRest:
		return s.current == s.timeline.Len()-1 && s.ctrl.Done()
	}
	return false
}

// atRendezvous reports whether the current lap is over and the swimmer is
// ready for the lap index to be incremented.
func (s *Swimmer) atRendezvous() bool {
	switch s.ctrl.Phase() {
	case motion.PhaseWaiting:
		return true
	case motion.PhaseRest:
		return s.ctrl.Done()
	}
	return false
}

// advance steps the controller. While playing, time left over when a lap
// ends inside the step is carried into the next lap, so lap boundaries do not
// depend on frame size.
func (s *Swimmer) advance(dt, speed float64, playing bool) error {
	if !playing {
		s.ctrl.Advance(dt, speed, false)
		return nil
	}

	remaining := dt * speed
	if !(remaining > 0) || math.IsInf(remaining, 0) {
		remaining = 0
	}
	for {
		before := s.ctrl.Elapsed()
		s.ctrl.Advance(remaining, 1, true)
		remaining -= s.ctrl.Elapsed() - before

		next := s.current + 1
		if !s.atRendezvous() || next >= s.timeline.Len() {
			return nil
		}
		if err := s.ctrl.EnterLap(s.timeline.Lap(next)); err != nil {
			return err
		}
		s.current = next
		if remaining <= 0 {
			return nil
		}
	}
}

// seek jumps to session time t. A target on another lap is resolved against
// that lap before anything changes, so a rejected scrub leaves the swimmer
// where it was. Particles are discarded only when the scrub is accepted.
func (s *Swimmer) seek(t float64) (bool, error) {
	idx, local := s.timeline.LapAt(t)
	l := s.timeline.Lap(idx)
	progress := local / l.DurationSeconds

	var ok bool
	if idx == s.current {
		_, _, ok = s.ctrl.Seek(progress)
	} else {
		var err error
		_, _, ok, err = s.ctrl.JumpTo(l, s.timeline.Orientation(idx), progress)
		if err != nil {
			return false, err
		}
		if ok {
			s.current = idx
		}
	}
	if ok {
		s.arena.Clear()
	}
	return ok, nil
}
