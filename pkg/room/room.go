package room

import (
	"errors"
	"fmt"
	"sort"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
)

// Sentinel errors for room/grid operations.
var (
	ErrInvalidMerge = errors.New("invalid merge")
	ErrWallClosed   = errors.New("wall is closed")
)

// WallState is the tri-state a Wall can hold.
type WallState int

const (
	WallOpen WallState = iota
	WallClosed
	WallCarved
)

// String returns the string representation of a WallState.
func (s WallState) String() string {
	switch s {
	case WallOpen:
		return "open"
	case WallClosed:
		return "closed"
	case WallCarved:
		return "carved"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Wall is a unit-length barrier between two adjacent cells (or between a
// cell and the outside, at the grid perimeter).
type Wall struct {
	State WallState
}

// RoomType classifies a Room's participation in the maze.
type RoomType int

const (
	TypeNormal RoomType = iota
	TypeBlank
	TypeEndpointAnchor
)

// String returns the string representation of a RoomType.
func (t RoomType) String() string {
	switch t {
	case TypeNormal:
		return "Normal"
	case TypeBlank:
		return "Blank"
	case TypeEndpointAnchor:
		return "EndpointAnchor"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Endpoint is the minimal endpoint back-reference a Room carries. The
// richer endpoint record (placement, offset, declaration order) lives in
// package endpoint, which sets this field when it resolves a declaration.
type Endpoint struct {
	Direction geom.Direction
	DeadEnd   bool
}

// Room is a node in the maze graph: either a single grid cell, or, when
// Size spans more than one cell, a merged super-room that participates as
// a single node despite covering several cells.
type Room struct {
	Location geom.RoomLocation
	Size     geom.RoomSize
	Type     RoomType
	Visited  bool
	PathID   int
	Endpoint *Endpoint
}

// IsMerged reports whether the room covers more than a single grid cell.
func (r *Room) IsMerged() bool {
	return r.Size.IsMerged()
}

// BoundaryCells returns the cells of the room that face the given
// direction, i.e. the outer row or column of its footprint on that side.
func (r *Room) BoundaryCells(d geom.Direction) []geom.RoomLocation {
	cells := make([]geom.RoomLocation, 0, max(r.Size.W, r.Size.H))
	switch d {
	case geom.North:
		y := r.Location.Y
		for x := r.Location.X; x < r.Location.X+r.Size.W; x++ {
			cells = append(cells, geom.RoomLocation{X: x, Y: y})
		}
	case geom.South:
		y := r.Location.Y + r.Size.H - 1
		for x := r.Location.X; x < r.Location.X+r.Size.W; x++ {
			cells = append(cells, geom.RoomLocation{X: x, Y: y})
		}
	case geom.West:
		x := r.Location.X
		for y := r.Location.Y; y < r.Location.Y+r.Size.H; y++ {
			cells = append(cells, geom.RoomLocation{X: x, Y: y})
		}
	case geom.East:
		x := r.Location.X + r.Size.W - 1
		for y := r.Location.Y; y < r.Location.Y+r.Size.H; y++ {
			cells = append(cells, geom.RoomLocation{X: x, Y: y})
		}
	}
	return cells
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// wallKey canonically identifies the wall between a cell and its northern
// or western neighbor; south/east walls resolve to the neighbor's
// north/west key so a shared wall has exactly one entry.
type wallKey struct {
	X, Y int
	Side geom.Direction
}

func canonicalKey(loc geom.RoomLocation, d geom.Direction) wallKey {
	switch d {
	case geom.South:
		return wallKey{X: loc.X, Y: loc.Y + 1, Side: geom.North}
	case geom.East:
		return wallKey{X: loc.X + 1, Y: loc.Y, Side: geom.West}
	default:
		return wallKey{X: loc.X, Y: loc.Y, Side: d}
	}
}

// Grid is a rectangular array of Rooms plus the wall map that connects
// them. Every cell belongs to exactly one Room (invariant 1); a merge
// replaces several cells' Room pointers with one shared pointer.
type Grid struct {
	NX, NY int
	cells  []*Room
	walls  map[wallKey]*Wall
}

// NewGrid creates an nx by ny grid of single-cell Normal rooms with every
// wall defaulted to open. Callers (typically the layout builder) close
// perimeter walls explicitly.
func NewGrid(nx, ny int) *Grid {
	g := &Grid{
		NX:    nx,
		NY:    ny,
		cells: make([]*Room, nx*ny),
		walls: make(map[wallKey]*Wall),
	}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			g.cells[y*nx+x] = &Room{
				Location: geom.RoomLocation{X: x, Y: y},
				Size:     geom.SizeSingle,
				Type:     TypeNormal,
			}
		}
	}
	return g
}

func (g *Grid) inBounds(loc geom.RoomLocation) bool {
	return loc.X >= 0 && loc.X < g.NX && loc.Y >= 0 && loc.Y < g.NY
}

// RoomAt returns the room occupying the given cell, or nil if the
// location is outside the grid.
func (g *Grid) RoomAt(loc geom.RoomLocation) *Room {
	if !g.inBounds(loc) {
		return nil
	}
	return g.cells[loc.Y*g.NX+loc.X]
}

func (g *Grid) setCell(loc geom.RoomLocation, r *Room) {
	g.cells[loc.Y*g.NX+loc.X] = r
}

// NeighborRoom returns the room adjacent to loc in direction d, and
// whether that neighbor cell lies within the grid.
func (g *Grid) NeighborRoom(loc geom.RoomLocation, d geom.Direction) (*Room, bool) {
	n := loc.Neighbor(d)
	if !g.inBounds(n) {
		return nil, false
	}
	return g.RoomAt(n), true
}

// WallState reports the state of the wall on side d of cell loc, and
// whether loc lies within the grid. Walls not yet explicitly touched
// default to open.
func (g *Grid) WallState(loc geom.RoomLocation, d geom.Direction) (WallState, bool) {
	if !g.inBounds(loc) {
		return WallOpen, false
	}
	w, ok := g.walls[canonicalKey(loc, d)]
	if !ok {
		return WallOpen, true
	}
	return w.State, true
}

func (g *Grid) setWallState(loc geom.RoomLocation, d geom.Direction, s WallState) {
	key := canonicalKey(loc, d)
	w, ok := g.walls[key]
	if !ok {
		w = &Wall{}
		g.walls[key] = w
	}
	w.State = s
}

// Open carves the wall on side d of cell loc, mirrored on the neighbor's
// matching side. It fails if the wall is closed; opening an
// already-carved wall is a harmless no-op.
func (g *Grid) Open(loc geom.RoomLocation, d geom.Direction) error {
	st, ok := g.WallState(loc, d)
	if !ok {
		return fmt.Errorf("open: location %v is out of bounds", loc)
	}
	if st == WallClosed {
		return fmt.Errorf("%w: at %v side %s", ErrWallClosed, loc, d)
	}
	g.setWallState(loc, d, WallCarved)
	return nil
}

// Close marks the wall on side d of cell loc closed. Closing is
// idempotent and never changes state during path generation (invariant
// 5): callers must only close walls before the carve phase runs.
func (g *Grid) Close(loc geom.RoomLocation, d geom.Direction) {
	g.setWallState(loc, d, WallClosed)
}

// Carve unconditionally sets the wall on side d of cell loc to carved,
// regardless of its prior state. Unlike Open, it does not fail on a
// closed wall: it is the privileged operation the endpoint placer uses to
// punch an opening through a perimeter wall that the layout builder
// closed by default.
func (g *Grid) Carve(loc geom.RoomLocation, d geom.Direction) {
	g.setWallState(loc, d, WallCarved)
}

// IsClosed reports whether the wall on side d of cell loc is closed.
func (g *Grid) IsClosed(loc geom.RoomLocation, d geom.Direction) bool {
	st, _ := g.WallState(loc, d)
	return st == WallClosed
}

// IsCarved reports whether the wall on side d of cell loc is carved.
func (g *Grid) IsCarved(loc geom.RoomLocation, d geom.Direction) bool {
	st, _ := g.WallState(loc, d)
	return st == WallCarved
}

// Edge is a candidate wall between the owning room and a distinct
// neighbor room, anchored at one boundary cell/side of the owning room.
// A merged room's side can yield several edges to the same neighbor; the
// path generator treats each as an independent candidate crossing.
type Edge struct {
	Neighbor *Room
	Loc      geom.RoomLocation
	Dir      geom.Direction
}

var directions = [4]geom.Direction{geom.North, geom.East, geom.South, geom.West}

// Edges returns every candidate wall crossing from r to a distinct
// neighboring room, regardless of current wall state.
func (g *Grid) Edges(r *Room) []Edge {
	var edges []Edge
	for _, d := range directions {
		for _, loc := range r.BoundaryCells(d) {
			nb, ok := g.NeighborRoom(loc, d)
			if !ok || nb == nil || nb == r {
				continue
			}
			edges = append(edges, Edge{Neighbor: nb, Loc: loc, Dir: d})
		}
	}
	return edges
}

// Rooms returns every distinct Room in the grid (a merged room is
// returned once, not once per covered cell), ordered by location for
// deterministic iteration.
func (g *Grid) Rooms() []*Room {
	seen := make(map[*Room]bool)
	rooms := make([]*Room, 0, len(g.cells))
	for _, r := range g.cells {
		if r != nil && !seen[r] {
			seen[r] = true
			rooms = append(rooms, r)
		}
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Location.Y != rooms[j].Location.Y {
			return rooms[i].Location.Y < rooms[j].Location.Y
		}
		return rooms[i].Location.X < rooms[j].Location.X
	})
	return rooms
}

// ResetTransient clears Visited and PathID on every room, ready for a new
// path-generation attempt. Merged rooms are only reset once since Rooms
// deduplicates them.
func (g *Grid) ResetTransient() {
	for _, r := range g.Rooms() {
		r.Visited = false
		r.PathID = 0
	}
}

// Clone deep-copies g: every Room (merged rooms copied once, shared by all
// their covered cells, as in the original) and every Wall. A generator
// retry attempt clones the post-modifier grid so each attempt's endpoint
// resolution and carve can mutate freely without disturbing the others.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		NX:    g.NX,
		NY:    g.NY,
		cells: make([]*Room, len(g.cells)),
		walls: make(map[wallKey]*Wall, len(g.walls)),
	}
	copied := make(map[*Room]*Room, len(g.cells))
	for i, r := range g.cells {
		if r == nil {
			continue
		}
		rc, ok := copied[r]
		if !ok {
			dup := *r
			if r.Endpoint != nil {
				epDup := *r.Endpoint
				dup.Endpoint = &epDup
			}
			rc = &dup
			copied[r] = rc
		}
		clone.cells[i] = rc
	}
	for k, w := range g.walls {
		wDup := *w
		clone.walls[k] = &wDup
	}
	return clone
}

// Merge replaces the 1x1 Normal rooms covering rect with one merged Room.
// It fails with ErrInvalidMerge if any cell is missing, already merged,
// Blank, or an endpoint anchor, or if every wall bounding the rectangle
// is closed (leaving the merged room unreachable from any neighbor).
func (g *Grid) Merge(rect geom.Rect) (*Room, error) {
	if rect.W < 1 || rect.H < 1 || !rect.InBounds(g.NX, g.NY) {
		return nil, fmt.Errorf("%w: rect %+v is out of bounds", ErrInvalidMerge, rect)
	}
	cells := rect.Cells()
	for _, loc := range cells {
		rm := g.RoomAt(loc)
		if rm == nil || rm.Type != TypeNormal || rm.Size != geom.SizeSingle {
			return nil, fmt.Errorf("%w: cell %v is not a free normal room", ErrInvalidMerge, loc)
		}
	}
	if !g.hasConnectableExterior(rect) {
		return nil, fmt.Errorf("%w: merge at %+v would be fully walled off", ErrInvalidMerge, rect)
	}

	merged := &Room{
		Location: geom.RoomLocation{X: rect.X, Y: rect.Y},
		Size:     geom.RoomSize{W: rect.W, H: rect.H},
		Type:     TypeNormal,
	}
	for _, loc := range cells {
		g.setCell(loc, merged)
	}
	return merged, nil
}

// hasConnectableExterior reports whether at least one wall bounding rect
// (excluding walls interior to the rect itself) is not closed.
func (g *Grid) hasConnectableExterior(rect geom.Rect) bool {
	for _, loc := range rect.Cells() {
		for _, d := range directions {
			n := loc.Neighbor(d)
			if rect.Contains(n) {
				continue
			}
			if st, ok := g.WallState(loc, d); ok && st != WallClosed {
				return true
			}
		}
	}
	return false
}
