// Package room provides the maze's room and wall model: a rectangular
// grid of Rooms connected by tri-state Walls (open, closed, carved), with
// support for merging contiguous cells into a single multi-cell Room.
//
// Walls are not owned by individual rooms. Following the design note in
// the maze specification, each wall is a single entry in a map owned by
// the Grid, keyed by the canonical (north- or west-facing) side of the
// cell pair it separates. This avoids doubly-linked bookkeeping between
// adjacent rooms when merges rewrite which cells belong to which Room.
package room
