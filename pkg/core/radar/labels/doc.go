// Package labels sizes and positions quadrant and ring labels.
//
// Labels are placed before any blip and never move afterwards; the blip
// placement engine reads them as fixed obstacles.
//
// # Quadrant Labels
//
// Sizing runs in two passes. The first pass wraps every quadrant name with a
// greedy word wrap ([Wrap]) and measures its box with [BoxSize]. The largest
// width and height across all quadrants, inflated by [SafetyMargin] and
// rounded up, become one shared tile size ([TileSize]) so every quadrant tile
// looks the same. The second pass centers a tile on the quadrant's bisector at
// [LabelDistance] times the chart radius, just outside the outermost ring.
//
// # Ring Labels
//
// Ring labels sit on the vertical axis just above the top of their ring.
// Each carries a circular exclusion zone that grows with the ring index;
// blips are never accepted inside it by the searching placement tiers.
package labels
