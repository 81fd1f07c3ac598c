package endpoint

import (
	"fmt"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/placement"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// randomBudget is the draw budget passed to placement.ResolveRandom for a
// Random endpoint. No conflict check is passed, so the first in-bounds
// draw is always accepted.
const randomBudget = 64

// Declaration is one endpoint as declared in configuration, before
// resolution against a grid.
type Declaration struct {
	Placement geom.Placement
	Offset    geom.RoomOffset
	DeadEnd   bool
}

// Endpoint is a Declaration resolved to a concrete Room.
type Endpoint struct {
	Declaration

	Room *room.Room
	// Loc is the specific boundary cell whose wall was carved to the
	// exterior; it equals Room.Location for an unmerged room.
	Loc geom.RoomLocation
	// Direction is the exterior side the endpoint faces. It is only
	// meaningful (and only carved) when Opens is true.
	Direction geom.Direction
	Opens     bool
}

// perimeterDirection returns the single exterior side a perimeter
// placement forces the endpoint's opening to. Corner placements resolve to
// one side using the same NW→N, NE→E, SE→S, SW→W convention the modifier
// package's CornerPaths closing uses, for internal consistency.
func perimeterDirection(p geom.Placement) (geom.Direction, bool) {
	switch p {
	case geom.PlacementW:
		return geom.West, true
	case geom.PlacementE:
		return geom.East, true
	case geom.PlacementN:
		return geom.North, true
	case geom.PlacementS:
		return geom.South, true
	case geom.PlacementNW:
		return geom.North, true
	case geom.PlacementNE:
		return geom.East, true
	case geom.PlacementSE:
		return geom.South, true
	case geom.PlacementSW:
		return geom.West, true
	default:
		return 0, false
	}
}

// centerDirection picks the facing direction for a Center-placed endpoint
// from its resolved offset: the axis with the smaller absolute magnitude
// wins, ties (including a zero offset) resolve to North, then West.
func centerDirection(dx, dy int) geom.Direction {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax < ay:
		if dx < 0 {
			return geom.West
		}
		return geom.East
	case ay < ax:
		if dy < 0 {
			return geom.North
		}
		return geom.South
	default:
		return geom.North
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func resolveRect(p geom.Placement, offset geom.RoomOffset, g *room.Grid, r *rng.RNG) (geom.Rect, error) {
	if p == geom.PlacementRandom {
		return placement.ResolveRandom(r, geom.SizeSingle, g.NX, g.NY, randomBudget, nil)
	}
	rect, err := placement.Resolve(p, geom.SizeSingle, offset, g.NX, g.NY)
	if err != nil {
		return geom.Rect{}, err
	}
	clipped, ok := placement.Clip(rect, g.NX, g.NY)
	if !ok {
		return geom.Rect{}, fmt.Errorf("%w: endpoint placement %s resolves to %+v", placement.ErrUnplaceable, p, rect)
	}
	return clipped, nil
}

// nearestBoundaryCell returns the cell of r's boundary on side d closest
// (Manhattan distance) to origin, breaking ties toward the lower
// coordinate for determinism.
func nearestBoundaryCell(r *room.Room, d geom.Direction, origin geom.RoomLocation) geom.RoomLocation {
	cells := r.BoundaryCells(d)
	best := cells[0]
	bestDist := manhattan(best, origin)
	for _, c := range cells[1:] {
		dist := manhattan(c, origin)
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	return best
}

func manhattan(a, b geom.RoomLocation) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Resolve turns decls into concrete Endpoints anchored to g, carving each
// one's exterior wall. An empty decls defaults to one endpoint on W and
// one on E, both non-dead-end, at the grid's mid-Y row.
func Resolve(g *room.Grid, decls []Declaration, r *rng.RNG) ([]*Endpoint, error) {
	if len(decls) == 0 {
		decls = []Declaration{
			{Placement: geom.PlacementW},
			{Placement: geom.PlacementE},
		}
	}

	endpoints := make([]*Endpoint, 0, len(decls))
	for _, decl := range decls {
		rect, err := resolveRect(decl.Placement, decl.Offset, g, r)
		if err != nil {
			return nil, err
		}
		origin := geom.RoomLocation{X: rect.X, Y: rect.Y}
		target := g.RoomAt(origin)
		if target == nil {
			return nil, fmt.Errorf("%w: endpoint placement %s resolved outside the grid", placement.ErrUnplaceable, decl.Placement)
		}
		if target.Type == room.TypeBlank {
			target.Type = room.TypeNormal
		}

		ep := &Endpoint{Declaration: decl, Room: target, Loc: origin}

		if decl.Placement == geom.PlacementC {
			dx, dy := decl.Offset.Resolve(geom.PlacementC)
			ep.Direction = centerDirection(dx, dy)
			ep.Opens = false
		} else if dir, ok := perimeterDirection(decl.Placement); ok {
			ep.Direction = dir
			ep.Opens = true
			if target.IsMerged() {
				ep.Loc = nearestBoundaryCell(target, dir, origin)
			}
			g.Carve(ep.Loc, dir)
		}

		target.Type = room.TypeEndpointAnchor
		target.Endpoint = &room.Endpoint{Direction: ep.Direction, DeadEnd: decl.DeadEnd}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}
