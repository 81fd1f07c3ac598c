// Package modifier applies Frame, Blank, Closing, and Merge modifiers to a
// room.Grid in the mandated phase order: all blanks (including frames),
// then all closings, then all merges, with center placements resolved
// first within each phase, then corners, then edges, then random.
package modifier
