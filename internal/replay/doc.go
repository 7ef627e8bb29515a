// Package replay feeds sessions into the swim core and collects what comes
// out.
//
// Layer responsibilities:
//   - file.go: session files (swimmers and their recorded laps) read through
//     fsutil with the same extension and size guard as the tuning config.
//   - demo.go: seeded demo sessions at a 2:00/100 m pace with rest intervals
//     every 100 m.
//   - runner.go: a Clock-paced loop that ticks a session at the configured
//     frame rate until it finishes or its context is cancelled, plus a
//     fixed-step headless variant.
//   - export.go: per-swimmer summary documents written under a validated
//     export directory.
//
// Dependency rule: replay sits above internal/swim/session and may import
// it, config, fsutil, security, timeutil, units and monitoring. Nothing in
// internal/swim imports replay.
package replay
