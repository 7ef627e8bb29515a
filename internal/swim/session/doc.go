// Package session orchestrates several swimmers replaying recorded lap
// sequences side by side.
//
// Layer responsibilities:
//   - Timeline: validated lap sequence with cumulative start times and the
//     orientation each lap is entered with.
//   - Swimmer: one lane; owns a motion.Controller and a splash.Arena and
//     performs the lap-index rendezvous when its controller reaches a wall.
//   - Session: ticks every swimmer in a fixed order per frame (phase
//     transition, position update, particle integration, spawn) and applies
//     timeline scrubs.
//
// A Session is single-threaded: Tick and Seek must be called from one
// goroutine. Frames hand out copies; nothing a caller does with a Frame
// reaches back into swimmer state.
//
// Dependency rule: session may depend on every swim package, config,
// monitoring and units. Nothing under internal/swim depends on session.
package session
