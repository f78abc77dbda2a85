// Package placement finds a position for every blip inside its ring and
// quadrant cell.
//
// # Fold
//
// [Engine.Place] is a left fold over the cells in input order. [Engine.Step]
// takes the placements accepted so far and returns them extended by one, so
// the position chosen for cell k constrains every later cell. Cells are never
// reordered.
//
// # Tiers
//
// Each cell is offered to an ordered list of [Strategy] values until one
// yields a point:
//
//   - strict: up to 100 samples that must keep [DefaultMinDistance] from every
//     placed blip and stay out of every label exclusion zone
//   - relaxed: up to 50 samples that only have to avoid exclusion zones
//   - fallback: one sample near the bottom of the chart, always accepted
//
// The fallback tier is appended when a custom list omits it, so placement
// always terminates with a finite point. Overlap under extreme density is the
// accepted degradation.
//
// # Sampling
//
// Radii are drawn from the middle of the ring, between 30% and 70% of its
// width. Angles in the two quadrants adjacent to the 12 o'clock seam are drawn
// from the left or right remainder of the sector once [TopAvoidance] is cut
// away; elsewhere they spread over 80% of the sector around its bisector.
//
// # Randomness
//
// The random source is injected as a [Rand]. Use [NewRand] for a seeded
// generator, [Default] for the process-wide source, and [Sequence] in tests
// to fix every draw.
package placement
