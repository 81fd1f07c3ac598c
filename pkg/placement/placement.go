package placement

import (
	"errors"
	"fmt"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
)

// Sentinel errors for placement resolution.
var (
	ErrUnplaceable          = errors.New("no in-bounds rectangle for this placement")
	ErrConflictAfterRetries = errors.New("random placement search exhausted its retry budget")
)

// centered returns the top-left coordinate that centers a span of length n
// within a run of length total, rounding toward the lower (north/west)
// coordinate when the remainder can't be split evenly.
func centered(total, n int) int {
	return (total - n) / 2
}

// align returns the rectangle's top-left corner for placement p, before any
// offset is applied. Corner placements flush the rectangle against the
// grid's edge; edge placements center the rectangle along that edge; the
// center placement centers it in both dimensions, rounding toward the
// north-west on an odd remainder.
func align(p geom.Placement, size geom.RoomSize, nx, ny int) (x, y int) {
	w, h := size.W, size.H
	switch p {
	case geom.PlacementNW:
		return 0, 0
	case geom.PlacementNE:
		return nx - w, 0
	case geom.PlacementSE:
		return nx - w, ny - h
	case geom.PlacementSW:
		return 0, ny - h
	case geom.PlacementN:
		return centered(nx, w), 0
	case geom.PlacementS:
		return centered(nx, w), ny - h
	case geom.PlacementW:
		return 0, centered(ny, h)
	case geom.PlacementE:
		return nx - w, centered(ny, h)
	default: // PlacementC
		return centered(nx, w), centered(ny, h)
	}
}

// Resolve turns a symbolic placement, size, and offset into an absolute
// rectangle of grid cells. The returned rectangle is not guaranteed to lie
// within the grid; callers decide, per their own policy, whether to clip it
// with Clip or to treat an out-of-bounds result as ErrUnplaceable.
//
// Resolve does not accept geom.PlacementRandom; use ResolveRandom instead.
func Resolve(p geom.Placement, size geom.RoomSize, offset geom.RoomOffset, nx, ny int) (geom.Rect, error) {
	if p == geom.PlacementRandom {
		return geom.Rect{}, fmt.Errorf("placement: Resolve does not accept PlacementRandom, use ResolveRandom")
	}
	x, y := align(p, size, nx, ny)
	dx, dy := offset.Resolve(p)
	return geom.Rect{X: x + dx, Y: y + dy, W: size.W, H: size.H}, nil
}

// Clip intersects rect with the 0,0..nx,ny grid. ok is false if the
// intersection is empty or does not preserve rect's full width and height,
// i.e. rect only partially overlaps the grid.
func Clip(rect geom.Rect, nx, ny int) (geom.Rect, bool) {
	if rect.X < 0 || rect.Y < 0 || rect.X+rect.W > nx || rect.Y+rect.H > ny {
		return geom.Rect{}, false
	}
	return rect, true
}

// ResolveRandom draws a uniformly random in-bounds rectangle of the given
// size, redrawing up to budget times whenever conflict reports the drawn
// rectangle unusable (e.g. it overlaps an already-placed modifier). conflict
// may be nil, in which case the first draw is accepted unconditionally.
//
// It fails with ErrUnplaceable if the size cannot fit in the grid at all,
// and with ErrConflictAfterRetries if every draw within budget conflicts.
func ResolveRandom(r *rng.RNG, size geom.RoomSize, nx, ny, budget int, conflict func(geom.Rect) bool) (geom.Rect, error) {
	if size.W > nx || size.H > ny {
		return geom.Rect{}, fmt.Errorf("%w: size %+v does not fit in a %dx%d grid", ErrUnplaceable, size, nx, ny)
	}
	if budget < 1 {
		budget = 1
	}
	maxX := nx - size.W
	maxY := ny - size.H
	for i := 0; i < budget; i++ {
		x := r.IntRange(0, maxX)
		y := r.IntRange(0, maxY)
		rect := geom.Rect{X: x, Y: y, W: size.W, H: size.H}
		if conflict == nil || !conflict(rect) {
			return rect, nil
		}
	}
	return geom.Rect{}, fmt.Errorf("%w: after %d attempts", ErrConflictAfterRetries, budget)
}
