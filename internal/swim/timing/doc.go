// Package timing owns the lap timing plan: the fixed-ratio partition of a
// lap's recorded duration into turn, start glide, swim and end glide, and the
// pure resolver that maps lap-local elapsed time onto that partition.
//
// Both forward simulation and timeline scrubbing in the motion package call
// Plan.Resolve; neither re-derives phase arithmetic on its own. Keeping one
// function is what makes a scrubbed pose identical to a simulated one.
//
// Dependency rule: timing may depend on lap and config, never on motion,
// splash or session.
package timing
