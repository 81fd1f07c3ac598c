package modifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
)

// ErrBadClosing is returned when a closing type name cannot be parsed.
var ErrBadClosing = errors.New("unrecognized closing type")

// ClosingType selects which walls within a rectangle a Closing modifier
// targets.
type ClosingType int

const (
	ClosingCornerPaths ClosingType = iota
	ClosingCornerNW
	ClosingCornerNE
	ClosingCornerSE
	ClosingCornerSW
	ClosingDirectionN
	ClosingDirectionE
	ClosingDirectionS
	ClosingDirectionW
	ClosingDirectionHorizontal
	ClosingDirectionVertical
	ClosingMiddlePaths
	ClosingMiddleN
	ClosingMiddleE
	ClosingMiddleS
	ClosingMiddleW
)

var closingNames = map[string]ClosingType{
	"corner_paths": ClosingCornerPaths, "cp": ClosingCornerPaths,
	"corner_nw": ClosingCornerNW, "cnw": ClosingCornerNW,
	"corner_ne": ClosingCornerNE, "cne": ClosingCornerNE,
	"corner_se": ClosingCornerSE, "cse": ClosingCornerSE,
	"corner_sw": ClosingCornerSW, "csw": ClosingCornerSW,
	"direction_n": ClosingDirectionN, "dn": ClosingDirectionN,
	"direction_e": ClosingDirectionE, "de": ClosingDirectionE,
	"direction_s": ClosingDirectionS, "ds": ClosingDirectionS,
	"direction_w": ClosingDirectionW, "dw": ClosingDirectionW,
	"direction_horizontal": ClosingDirectionHorizontal, "dh": ClosingDirectionHorizontal,
	"direction_vertical": ClosingDirectionVertical, "dv": ClosingDirectionVertical,
	"middle_paths": ClosingMiddlePaths, "mp": ClosingMiddlePaths,
	"middle_n": ClosingMiddleN, "mn": ClosingMiddleN,
	"middle_e": ClosingMiddleE, "me": ClosingMiddleE,
	"middle_s": ClosingMiddleS, "ms": ClosingMiddleS,
	"middle_w": ClosingMiddleW, "mw": ClosingMiddleW,
}

// ParseClosingType parses a closing type by its full name or short code.
func ParseClosingType(s string) (ClosingType, error) {
	if t, ok := closingNames[strings.ToLower(s)]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadClosing, s)
}

// wallRef names one side of one cell.
type wallRef struct {
	Loc geom.RoomLocation
	Dir geom.Direction
}

var sides = [4]geom.Direction{geom.North, geom.East, geom.South, geom.West}

// canon reduces a wallRef to the canonical (north/west-facing) form that a
// room.Grid uses internally, so two references to the same physical wall
// compare equal.
func canon(w wallRef) wallRef {
	switch w.Dir {
	case geom.South:
		return wallRef{Loc: w.Loc.Neighbor(geom.South), Dir: geom.North}
	case geom.East:
		return wallRef{Loc: w.Loc.Neighbor(geom.East), Dir: geom.West}
	default:
		return w
	}
}

// boundaryWalls returns every wall on the perimeter of rect, i.e. each
// cell's side that faces a neighbor outside the rectangle.
func boundaryWalls(rect geom.Rect) []wallRef {
	var out []wallRef
	for _, loc := range rect.Cells() {
		for _, d := range sides {
			if rect.Contains(loc.Neighbor(d)) {
				continue
			}
			out = append(out, wallRef{Loc: loc, Dir: d})
		}
	}
	return out
}

func midIndex(n int) int {
	return (n - 1) / 2
}

// closingCandidates enumerates the raw wall set a ClosingType targets
// within rect, before any inversion is applied.
func closingCandidates(t ClosingType, rect geom.Rect) []wallRef {
	nwCell := geom.RoomLocation{X: rect.X, Y: rect.Y}
	neCell := geom.RoomLocation{X: rect.X + rect.W - 1, Y: rect.Y}
	seCell := geom.RoomLocation{X: rect.X + rect.W - 1, Y: rect.Y + rect.H - 1}
	swCell := geom.RoomLocation{X: rect.X, Y: rect.Y + rect.H - 1}
	midX := rect.X + midIndex(rect.W)
	midY := rect.Y + midIndex(rect.H)

	switch t {
	case ClosingCornerPaths:
		return []wallRef{
			{Loc: nwCell, Dir: geom.North},
			{Loc: neCell, Dir: geom.East},
			{Loc: seCell, Dir: geom.South},
			{Loc: swCell, Dir: geom.West},
		}
	case ClosingCornerNW:
		return []wallRef{{Loc: nwCell, Dir: geom.North}}
	case ClosingCornerNE:
		return []wallRef{{Loc: neCell, Dir: geom.East}}
	case ClosingCornerSE:
		return []wallRef{{Loc: seCell, Dir: geom.South}}
	case ClosingCornerSW:
		return []wallRef{{Loc: swCell, Dir: geom.West}}
	case ClosingDirectionN, ClosingDirectionE, ClosingDirectionS, ClosingDirectionW:
		d := directionOf(t)
		var out []wallRef
		for _, loc := range rect.Cells() {
			out = append(out, wallRef{Loc: loc, Dir: d})
		}
		return out
	case ClosingDirectionHorizontal:
		var out []wallRef
		for y := rect.Y; y < rect.Y+rect.H-1; y++ {
			for x := rect.X; x < rect.X+rect.W; x++ {
				out = append(out, wallRef{Loc: geom.RoomLocation{X: x, Y: y}, Dir: geom.South})
			}
		}
		return out
	case ClosingDirectionVertical:
		var out []wallRef
		for x := rect.X; x < rect.X+rect.W-1; x++ {
			for y := rect.Y; y < rect.Y+rect.H; y++ {
				out = append(out, wallRef{Loc: geom.RoomLocation{X: x, Y: y}, Dir: geom.East})
			}
		}
		return out
	case ClosingMiddlePaths:
		return []wallRef{
			{Loc: geom.RoomLocation{X: midX, Y: rect.Y}, Dir: geom.North},
			{Loc: geom.RoomLocation{X: rect.X + rect.W - 1, Y: midY}, Dir: geom.East},
			{Loc: geom.RoomLocation{X: midX, Y: rect.Y + rect.H - 1}, Dir: geom.South},
			{Loc: geom.RoomLocation{X: rect.X, Y: midY}, Dir: geom.West},
		}
	case ClosingMiddleN:
		return []wallRef{{Loc: geom.RoomLocation{X: midX, Y: rect.Y}, Dir: geom.North}}
	case ClosingMiddleE:
		return []wallRef{{Loc: geom.RoomLocation{X: rect.X + rect.W - 1, Y: midY}, Dir: geom.East}}
	case ClosingMiddleS:
		return []wallRef{{Loc: geom.RoomLocation{X: midX, Y: rect.Y + rect.H - 1}, Dir: geom.South}}
	case ClosingMiddleW:
		return []wallRef{{Loc: geom.RoomLocation{X: rect.X, Y: midY}, Dir: geom.West}}
	default:
		return nil
	}
}

func directionOf(t ClosingType) geom.Direction {
	switch t {
	case ClosingDirectionN:
		return geom.North
	case ClosingDirectionE:
		return geom.East
	case ClosingDirectionS:
		return geom.South
	default:
		return geom.West
	}
}

// diffWalls returns universe with every wall canonically equal to one in
// subtract removed, deduplicating universe itself in the process.
func diffWalls(universe, subtract []wallRef) []wallRef {
	sub := make(map[wallRef]bool, len(subtract))
	for _, w := range subtract {
		sub[canon(w)] = true
	}
	seen := make(map[wallRef]bool, len(universe))
	out := make([]wallRef, 0, len(universe))
	for _, w := range universe {
		c := canon(w)
		if sub[c] || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, w)
	}
	return out
}
