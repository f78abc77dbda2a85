// Package radar defines the data model shared by every layer of the tech
// radar: entries, the ordered ring list, the quadrant list, and the fixed
// ring color table.
//
// # Rings and Quadrants
//
// Rings are ordered innermost first. Index 0 is the nearest-term ring and the
// order is never re-sorted. Quadrants keep first-seen order from the data
// source; that order determines which angular sector each quadrant occupies.
//
// # Entries
//
// An [Entry] names its quadrant and ring by identifier. Entries whose
// quadrant or ring does not resolve against the [Dataset] are not an error:
// the layout engine skips them and reports the skip.
//
// # Serialization
//
// All types carry json and bson tags so a dataset can be exchanged as JSON
// or stored in MongoDB without conversion.
package radar
