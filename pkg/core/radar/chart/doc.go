// Package chart assembles a complete radar scene for one render pass.
//
// [Build] takes the full input (entries, rings, quadrants, viewport) and
// returns a [Scene]: ring annuli, quadrant wedges and dividers, placed labels
// and one [Blip] per resolvable entry. There is no incremental path; every
// data or viewport change rebuilds the scene from scratch and blip positions
// are not stable between passes.
//
// A zero-sized viewport, or an empty ring or quadrant list, yields an idle
// scene with no layers. Entries naming an unknown ring or quadrant are listed
// in [Scene.Skipped] and do not stop the remaining entries from being placed.
//
// # Layers
//
// [DrawOrder] fixes the stacking order: quadrant backgrounds, ring annuli,
// divider lines, quadrant labels, ring labels, blips. Sinks iterate it so
// labels always sit above the busy background.
//
// # Chart
//
// [Chart] keeps the latest published scene for long-lived surfaces such as
// the HTTP server. Each redraw gets a pass number; a slower pass that
// finishes after a newer one is discarded, so the latest pass wins.
//
// # Interaction
//
// [Interactor] turns a blip's entry into the payloads the presentation shell
// needs: a [Tooltip] on hover, with a vertical flip near the viewport bottom,
// and a [Detail] on click.
package chart
