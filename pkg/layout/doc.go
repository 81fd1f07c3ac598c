// Package layout turns a physical canvas size into a sized, perimeter-closed
// room.Grid: the first stage of the maze generation pipeline.
package layout
