// Package anim provides the cooperative animation loop shared by diagrams.
//
// A [Scheduler] runs three kinds of work on a single logical loop:
//
//   - one-shot timers registered with [Scheduler.After], fired in due order
//   - frame subscribers ([Scheduler.OnFrame]) which advance model state
//   - paint subscribers ([Scheduler.OnPaint]) which observe the advanced state
//
// Each [Scheduler.Step] fires due timers, then every frame subscriber, then
// every paint subscriber, so a paint never sees a half-updated frame. Steps and
// events submitted through [Scheduler.Do] never overlap.
//
// The loop can be driven manually with Step (tests, static snapshots) or by a
// ticker with [Scheduler.Start] and [Scheduler.Stop]. Time comes from a
// [Clock] so tests can substitute a [ManualClock].
package anim
