// Package motion owns the per-swimmer lap motion state machine.
//
// Responsibilities: phase sequencing (START_GLIDE, SWIMMING, END_GLIDE,
// TURNING, WAITING, REST, FINISHED), lane position, direction and rotation,
// stroke counting, and the MotionCommand directives handed to an external
// animation player. A Controller is owned by exactly one swimmer and is
// mutated only through Advance, Seek, EnterLap and JumpTo.
//
// Advance and Seek both resolve the lap through timing.Plan.Resolve; the
// only differences between them are the pause gate, the WAITING/TURNING
// scrub rejection and the command mode.
//
// Dependency rule: motion may depend on lap, timing and config. It must not
// depend on splash or session; debug instrumentation is reached through the
// DebugCollector interface.
package motion
