// Package geom provides the geometric primitives shared by the maze layout
// pipeline: directions, corners, symbolic placements, room locations/sizes/
// offsets, insets, and the small parsing grammars used to turn CLI/YAML
// strings into those types.
package geom
