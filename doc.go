// Package uvwsched computes the work-assignment schedule for a distributed
// radio-interferometric imaging pipeline.
//
// # Reading Guide
//
// Start with these files to understand the schedule kernel:
//   - core/config.go: AntennaConfig, VisSpec, RecombConfig and the derived
//     geometry constants (theta, wstep, lam, sg_step) every other package
//     consumes.
//   - geometry/: per-baseline UVW tables (component A).
//   - bbox/: the bounding-box engine (component B).
//   - binning/: the adaptive chunk counter and the parallel bin collector
//     (components C and D).
//   - schedule/: the splitter, the balancer, the facet-work assignment and
//     the full-redistribute fallback (components E, F, G, H).
//
// # Architecture
//
// core holds the shared configuration and geometry types and has no
// dependencies of its own within this module; geometry, binning and
// schedule depend on core for those types (bbox needs only geometry), never
// on each other outside the dependency order above, and never on this root
// package. uvwsched
// itself depends on core and on every sub-package to wire Run end to end,
// but is never imported back by any of them.
//
// # Determinism
//
// Given identical AntennaConfig/VisSpec/RecombConfig/ScheduleConfig input and
// an identical HAToUVWFunc, Run produces a bit-for-bit identical Schedule.
// The only concurrency in the pipeline (binning's per-cube sweep) writes to
// disjoint output cells, so it never affects the result.
package uvwsched
