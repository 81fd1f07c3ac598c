package modifier

import (
	"fmt"
	"sort"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/placement"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// randomBudget is the draw budget passed to placement.ResolveRandom. Since
// resolveRect passes no conflict check, the first in-bounds draw is always
// accepted and no redraw happens.
const randomBudget = 64

// placementClass orders modifiers within a phase: center first, then
// corners, then edges, then random placements last.
type placementClass int

const (
	classFrame placementClass = iota
	classCenter
	classCorner
	classEdge
	classRandom
)

func classOf(p geom.Placement) placementClass {
	switch p {
	case geom.PlacementC:
		return classCenter
	case geom.PlacementNW, geom.PlacementNE, geom.PlacementSE, geom.PlacementSW:
		return classCorner
	case geom.PlacementRandom:
		return classRandom
	default:
		return classEdge
	}
}

// Modifier is one declarative alteration of a room.Grid: Frame, Blank,
// Closing, or Merge. Each variant implements Apply itself rather than
// sharing a base class.
type Modifier interface {
	Apply(g *room.Grid, r *rng.RNG) error
	class() placementClass
}

func sizeOrDefault(s geom.RoomSize) geom.RoomSize {
	if s == (geom.RoomSize{}) {
		return geom.SizeSingle
	}
	return s
}

// resolveRect turns a placement/size/offset into a rectangle ready to
// apply, clipping non-random placements to the grid and drawing random
// ones once; a random rectangle is not checked against earlier modifiers.
func resolveRect(p geom.Placement, size geom.RoomSize, offset geom.RoomOffset, g *room.Grid, r *rng.RNG) (geom.Rect, error) {
	if p == geom.PlacementRandom {
		return placement.ResolveRandom(r, size, g.NX, g.NY, randomBudget, nil)
	}
	rect, err := placement.Resolve(p, size, offset, g.NX, g.NY)
	if err != nil {
		return geom.Rect{}, err
	}
	clipped, ok := placement.Clip(rect, g.NX, g.NY)
	if !ok {
		return geom.Rect{}, fmt.Errorf("%w: placement %s size %+v resolves to %+v", placement.ErrUnplaceable, p, size, rect)
	}
	return clipped, nil
}

// Frame marks the outermost Insets.Top rows, Insets.Bottom rows,
// Insets.Left columns, and Insets.Right columns of the grid as Blank.
type Frame struct {
	Insets geom.RoomInsets
}

func (Frame) class() placementClass { return classFrame }

// Apply blanks the frame's inset bands. It never fails; a thickness that
// would trap an endpoint is only detectable once endpoints are resolved,
// so the generator checks for it after resolving endpoints and fails
// that attempt with ErrEndpointTrapped.
func (f Frame) Apply(g *room.Grid, _ *rng.RNG) error {
	for y := 0; y < f.Insets.Top && y < g.NY; y++ {
		blankRow(g, y)
	}
	for y := g.NY - f.Insets.Bottom; y < g.NY; y++ {
		if y >= 0 {
			blankRow(g, y)
		}
	}
	for x := 0; x < f.Insets.Left && x < g.NX; x++ {
		blankCol(g, x)
	}
	for x := g.NX - f.Insets.Right; x < g.NX; x++ {
		if x >= 0 {
			blankCol(g, x)
		}
	}
	return nil
}

func blankRow(g *room.Grid, y int) {
	for x := 0; x < g.NX; x++ {
		blankCell(g, geom.RoomLocation{X: x, Y: y})
	}
}

func blankCol(g *room.Grid, x int) {
	for y := 0; y < g.NY; y++ {
		blankCell(g, geom.RoomLocation{X: x, Y: y})
	}
}

func blankCell(g *room.Grid, loc geom.RoomLocation) {
	if r := g.RoomAt(loc); r != nil {
		r.Type = room.TypeBlank
	}
}

// Blank marks every cell in the resolved rectangle as Blank. Applying the
// same Blank twice is a no-op the second time.
type Blank struct {
	Placement geom.Placement
	Size      geom.RoomSize
	Offset    geom.RoomOffset
}

func (b Blank) class() placementClass { return classOf(b.Placement) }

func (b Blank) Apply(g *room.Grid, r *rng.RNG) error {
	rect, err := resolveRect(b.Placement, sizeOrDefault(b.Size), b.Offset, g, r)
	if err != nil {
		return err
	}
	for _, loc := range rect.Cells() {
		blankCell(g, loc)
	}
	return nil
}

// Closing closes a type-selected set of walls within the resolved
// rectangle. When Inverted, the closed set is the complement of the
// candidate set within the rectangle's own boundary walls.
type Closing struct {
	Type      ClosingType
	Inverted  bool
	Placement geom.Placement
	Size      geom.RoomSize
	Offset    geom.RoomOffset
}

func (c Closing) class() placementClass { return classOf(c.Placement) }

func (c Closing) Apply(g *room.Grid, r *rng.RNG) error {
	rect, err := resolveRect(c.Placement, sizeOrDefault(c.Size), c.Offset, g, r)
	if err != nil {
		return err
	}
	candidates := closingCandidates(c.Type, rect)
	set := candidates
	if c.Inverted {
		set = diffWalls(boundaryWalls(rect), candidates)
	}
	for _, w := range set {
		g.Close(w.Loc, w.Dir)
	}
	return nil
}

// Merge replaces the Normal 1x1 rooms of the resolved rectangle with a
// single merged Room. It fails with room.ErrInvalidMerge if any cell is
// already occupied by something other than a free Normal 1x1 room, or if
// the merge would leave no connectable exterior wall.
type Merge struct {
	Placement geom.Placement
	Size      geom.RoomSize
	Offset    geom.RoomOffset
}

func (m Merge) class() placementClass { return classOf(m.Placement) }

func (m Merge) Apply(g *room.Grid, r *rng.RNG) error {
	rect, err := resolveRect(m.Placement, sizeOrDefault(m.Size), m.Offset, g, r)
	if err != nil {
		return err
	}
	_, err = g.Merge(rect)
	return err
}

// Result reports non-fatal outcomes from a modifier run.
type Result struct {
	// Skipped holds the errors of modifiers that were skipped because the
	// engine was configured to ignore modifier errors.
	Skipped []error
}

// Engine applies a declared list of Modifiers to a grid in the mandated
// phase and placement-class order.
type Engine struct {
	IgnoreErrors bool
}

// NewEngine creates an Engine. When ignoreErrors is true, a modifier that
// fails is skipped (recorded in Result.Skipped) instead of aborting the run.
func NewEngine(ignoreErrors bool) *Engine {
	return &Engine{IgnoreErrors: ignoreErrors}
}

// Run applies mods to g in three phases — Frame/Blank, Closing, Merge —
// each internally ordered center, corner, edge, random. Declaration order
// is preserved as the tiebreaker within a placement class.
func (e *Engine) Run(g *room.Grid, mods []Modifier, r *rng.RNG) (*Result, error) {
	res := &Result{}
	for _, phase := range [][]Modifier{blanksPhase(mods), closingsPhase(mods), mergesPhase(mods)} {
		for _, m := range orderPhase(phase) {
			if err := m.Apply(g, r); err != nil {
				if e.IgnoreErrors {
					res.Skipped = append(res.Skipped, err)
					continue
				}
				return res, err
			}
		}
	}
	return res, nil
}

func blanksPhase(mods []Modifier) []Modifier {
	var out []Modifier
	for _, m := range mods {
		switch m.(type) {
		case Frame, Blank:
			out = append(out, m)
		}
	}
	return out
}

func closingsPhase(mods []Modifier) []Modifier {
	var out []Modifier
	for _, m := range mods {
		if _, ok := m.(Closing); ok {
			out = append(out, m)
		}
	}
	return out
}

func mergesPhase(mods []Modifier) []Modifier {
	var out []Modifier
	for _, m := range mods {
		if _, ok := m.(Merge); ok {
			out = append(out, m)
		}
	}
	return out
}

func orderPhase(mods []Modifier) []Modifier {
	ordered := make([]Modifier, len(mods))
	copy(ordered, mods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].class() < ordered[j].class()
	})
	return ordered
}
