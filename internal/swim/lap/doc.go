// Package lap owns the externally supplied lap descriptors that drive the
// swim motion core.
//
// Responsibilities: the LapDescriptor value type, the closed set of stroke
// types, and lap-entry validation. A descriptor that fails validation is a
// fatal configuration error for that lap; it is never coerced into motion.
//
// Dependency rule: lap is a leaf. It must not import timing, motion, splash
// or session.
package lap
