// Package placement resolves a symbolic placement (one of the nine
// compass anchors, or a random position), a size, and an offset into an
// absolute rectangle of grid cells.
package placement
