package splash

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/BBWilly69/swim-fit3d-sub000/internal/config"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/debug"
	"github.com/BBWilly69/swim-fit3d-sub000/internal/swim/motion"
)

// DebugCollector interface for splash instrumentation.
type DebugCollector interface {
	IsEnabled() bool
	RecordSpawn(swimmerID uuid.UUID, emitter string, slot int, strokePhase float64, outcome debug.SpawnOutcome)
}

// Config holds the particle physics and spawn parameters.
type Config struct {
	Capacity         int
	Gravity          float64 // m/s^2, applied along -Y
	Cooldown         float64 // seconds between spawns of one emitter
	LifetimeMin      float64 // seconds
	LifetimeMax      float64 // seconds
	Jitter           float64 // metres, spawn position noise
	HorizontalSpread float64 // m/s
	VerticalImpulse  float64 // m/s at intensity 1
	SurfaceHeight    float64 // metres above the water plane particles start at
	Seed             int64
}

// ConfigFromTuning builds a Config from a tuning config.
func ConfigFromTuning(cfg *config.SwimTuning) Config {
	return Config{
		Capacity:         cfg.GetParticleCapacity(),
		Gravity:          cfg.GetGravityMps2(),
		Cooldown:         seconds(cfg.GetSpawnCooldown()),
		LifetimeMin:      seconds(cfg.GetParticleLifetimeMin()),
		LifetimeMax:      seconds(cfg.GetParticleLifetimeMax()),
		Jitter:           cfg.GetSpawnJitterM(),
		HorizontalSpread: cfg.GetHorizontalSpreadMps(),
		VerticalImpulse:  cfg.GetVerticalImpulseMps(),
		SurfaceHeight:    cfg.GetSurfaceHeightM(),
		Seed:             cfg.GetRandomSeed(),
	}
}

func seconds(d time.Duration) float64 { return d.Seconds() }

// Particle is one spray droplet. X runs along the lane, Y is up (the water
// plane is Y=0) and Z runs across the lanes.
type Particle struct {
	Owner    uuid.UUID // swimmer that emitted the particle
	Position r3.Vec
	Velocity r3.Vec
	Life     float64 // remaining seconds
	Emitter  Emitter
}

// SpawnEvent is raised for every particle created in a frame.
type SpawnEvent struct {
	SwimmerID uuid.UUID
	Emitter   Emitter
	Slot      int
	Particle  Particle
}

// span is a contiguous slot range owned by one emitter.
type span struct {
	start, end int
}

// Arena is a swimmer's fixed-capacity particle pool.
type Arena struct {
	owner uuid.UUID
	cfg   Config
	table Table

	slots    []Particle
	alive    []bool
	spans    [numEmitters]span
	cooldown [numEmitters]float64
	live     int

	rng    *rand.Rand
	events []SpawnEvent

	// DebugCollector captures spawn decisions (optional).
	DebugCollector DebugCollector
}

// NewArena allocates an arena for owner. The capacity is split across the
// emitters once and never changes.
func NewArena(owner uuid.UUID, cfg Config, table Table) (*Arena, error) {
	if cfg.Capacity < numEmitters {
		return nil, fmt.Errorf("particle capacity %d: need at least one slot per emitter", cfg.Capacity)
	}
	if cfg.LifetimeMax < cfg.LifetimeMin {
		return nil, fmt.Errorf("particle lifetime max %g below min %g", cfg.LifetimeMax, cfg.LifetimeMin)
	}
	if table == nil {
		table = DefaultTable()
	}

	a := &Arena{
		owner: owner,
		cfg:   cfg,
		table: table,
		slots: make([]Particle, cfg.Capacity),
		alive: make([]bool, cfg.Capacity),
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}

	var sizes [numEmitters]int
	assigned := 0
	for i, share := range capacityShare {
		sizes[i] = int(float64(cfg.Capacity) * share)
		if sizes[i] < 1 {
			sizes[i] = 1
		}
		assigned += sizes[i]
	}
	for i := 0; assigned < cfg.Capacity; i = (i + 1) % numEmitters {
		sizes[i]++
		assigned++
	}
	start := 0
	for i, n := range sizes {
		a.spans[i] = span{start: start, end: start + n}
		start += n
	}
	return a, nil
}

// Owner returns the swimmer id the arena belongs to.
func (a *Arena) Owner() uuid.UUID { return a.owner }

// Capacity returns the total slot count.
func (a *Arena) Capacity() int { return len(a.slots) }

// Live returns the number of live particles.
func (a *Arena) Live() int { return a.live }

// EmitterCapacity returns the number of slots reserved for e.
func (a *Arena) EmitterCapacity(e Emitter) int {
	s := a.spans[e]
	return s.end - s.start
}

// Integrate advances every live particle and the emitter cooldowns by dt
// seconds. Particles die when they fall below the water plane or their life
// runs out.
func (a *Arena) Integrate(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range a.cooldown {
		if a.cooldown[i] > 0 {
			a.cooldown[i] -= dt
		}
	}

	gravity := r3.Vec{Y: -a.cfg.Gravity * dt}
	for i := range a.slots {
		if !a.alive[i] {
			continue
		}
		p := &a.slots[i]
		p.Position = r3.Add(p.Position, r3.Scale(dt, p.Velocity))
		p.Velocity = r3.Add(p.Velocity, gravity)
		p.Life -= dt
		if p.Position.Y < 0 || p.Life <= 0 {
			a.kill(i)
		}
	}
}

// Spawn evaluates every emitter against the swimmer's (already updated)
// state and fills free slots. Nothing spawns outside SWIMMING. The returned
// events are valid until the next call.
func (a *Arena) Spawn(state motion.State) []SpawnEvent {
	a.events = a.events[:0]
	if state.Phase != motion.PhaseSwimming {
		return a.events
	}

	profile := a.table.For(state.StrokeType)
	for _, e := range Emitters {
		ep := profile[e]
		if !ep.Window.Contains(state.StrokePhase) {
			continue
		}
		slot := a.freeSlot(e)
		switch {
		case a.cooldown[e] > 0:
			a.record(e, slot, state.StrokePhase, debug.SpawnCoolingDown)
			continue
		case slot < 0:
			a.record(e, slot, state.StrokePhase, debug.SpawnArenaFull)
			continue
		case a.rng.Float64() >= ep.Probability:
			a.record(e, slot, state.StrokePhase, debug.SpawnProbability)
			continue
		}

		a.slots[slot] = a.emit(state, e, ep)
		a.alive[slot] = true
		a.live++
		a.cooldown[e] = a.cfg.Cooldown
		a.record(e, slot, state.StrokePhase, debug.SpawnAccepted)
		a.events = append(a.events, SpawnEvent{
			SwimmerID: a.owner,
			Emitter:   e,
			Slot:      slot,
			Particle:  a.slots[slot],
		})
	}
	return a.events
}

// emit builds a fresh particle for emitter e. Offsets follow the swimmer's
// direction so the left hand stays on the swimmer's left after a turn.
func (a *Arena) emit(state motion.State, e Emitter, ep EmitterProfile) Particle {
	dir := float64(state.Direction)
	if dir == 0 {
		dir = 1
	}
	origin := r3.Vec{
		X: state.Position + dir*ep.Longitudinal,
		Y: a.cfg.SurfaceHeight,
		Z: state.LaneOffset + dir*ep.Lateral,
	}
	jitter := r3.Vec{
		X: a.symmetric(a.cfg.Jitter),
		Z: a.symmetric(a.cfg.Jitter),
	}
	velocity := r3.Vec{
		X: a.symmetric(a.cfg.HorizontalSpread),
		Y: a.cfg.VerticalImpulse * ep.Intensity * (0.75 + 0.5*a.rng.Float64()),
		Z: a.symmetric(a.cfg.HorizontalSpread),
	}
	life := a.cfg.LifetimeMin + a.rng.Float64()*(a.cfg.LifetimeMax-a.cfg.LifetimeMin)
	return Particle{
		Owner:    a.owner,
		Position: r3.Add(origin, jitter),
		Velocity: velocity,
		Life:     life,
		Emitter:  e,
	}
}

// symmetric returns a uniform sample in [-r, r].
func (a *Arena) symmetric(r float64) float64 {
	return (a.rng.Float64()*2 - 1) * r
}

// freeSlot returns the lowest dead slot in e's partition, or -1.
func (a *Arena) freeSlot(e Emitter) int {
	s := a.spans[e]
	for i := s.start; i < s.end; i++ {
		if !a.alive[i] {
			return i
		}
	}
	return -1
}

func (a *Arena) kill(i int) {
	a.alive[i] = false
	a.slots[i] = Particle{}
	a.live--
}

// Clear kills every particle and resets the cooldowns. The random source is
// left where it is.
func (a *Arena) Clear() {
	for i := range a.slots {
		if a.alive[i] {
			a.kill(i)
		}
	}
	a.cooldown = [numEmitters]float64{}
}

// AppendLive appends a copy of every live particle to dst.
func (a *Arena) AppendLive(dst []Particle) []Particle {
	for i := range a.slots {
		if a.alive[i] {
			dst = append(dst, a.slots[i])
		}
	}
	return dst
}

func (a *Arena) record(e Emitter, slot int, phase float64, outcome debug.SpawnOutcome) {
	if a.DebugCollector != nil && a.DebugCollector.IsEnabled() {
		a.DebugCollector.RecordSpawn(a.owner, e.String(), slot, phase, outcome)
	}
}
