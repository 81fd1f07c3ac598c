// Package export renders a finished maze.Model as SVG or JSON, the two
// downstream formats spec.md §6's "output to renderer" interface feeds.
//
// The package offers both formatted (indented) and compact JSON export,
// and an SVG renderer that draws in the fixed layer order background,
// rooms, walls, then endpoint marks.
package export
