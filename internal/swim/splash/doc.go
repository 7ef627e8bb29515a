// Package splash simulates the water spray thrown up by a swimmer's hands and
// feet.
//
// Each swimmer owns one Arena: a fixed-capacity particle pool partitioned
// across the four emission points (left hand, right hand, left foot, right
// foot) in a 30/30/20/20 split. Slots are addressed by index and the arena is
// never resized. A frame calls Integrate and then Spawn, in that order, after
// the swimmer's motion state has been updated for the frame.
//
// Spawning is gated by the swimmer's phase (SWIMMING only), the emitter's
// stroke-phase window, a spawn probability and a per-emitter cooldown. All
// randomness comes from the arena's own seeded source, so two arenas built
// with the same seed and fed the same states produce identical particles.
//
// Dependency rule: splash may depend on motion (read-only State snapshots),
// lap, config and debug. It must not depend on session.
package splash
