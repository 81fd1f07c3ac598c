package modifier

import (
	"testing"

	"github.com/erbsland-dev/erbsland-maze/pkg/carve"
	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
	"pgregory.net/rapid"
)

func randomRect(t *rapid.T, nx, ny int) geom.Rect {
	w := rapid.IntRange(1, nx).Draw(t, "w")
	h := rapid.IntRange(1, ny).Draw(t, "h")
	x := rapid.IntRange(0, nx-w).Draw(t, "x")
	y := rapid.IntRange(0, ny-h).Draw(t, "y")
	return geom.Rect{X: x, Y: y, W: w, H: h}
}

// Property 3: every wall a Closing modifier closes is closed in the
// output, and stays closed after carving (carve.Run never opens a
// closed wall).
func TestProperty_ClosedWallsUntouched(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nx := rapid.IntRange(3, 10).Draw(t, "nx")
		ny := rapid.IntRange(3, 10).Draw(t, "ny")
		rect := randomRect(t, nx, ny)
		ct := ClosingType(rapid.IntRange(0, int(ClosingMiddleW)).Draw(t, "closingType"))
		inverted := rapid.Bool().Draw(t, "inverted")

		g := room.NewGrid(nx, ny)
		candidates := closingCandidates(ct, rect)
		set := candidates
		if inverted {
			set = diffWalls(boundaryWalls(rect), candidates)
		}
		for _, w := range set {
			g.Close(w.Loc, w.Dir)
		}

		for _, w := range set {
			if !g.IsClosed(w.Loc, w.Dir) {
				t.Fatalf("wall %+v not closed after Closing apply", w)
			}
		}

		eps, err := endpoint.Resolve(g, nil, rng.NewRNG(1, "prop-test-endpoint", nil))
		if err != nil {
			t.Skip("endpoints unplaceable on this grid shape")
		}
		_ = carve.Run(g, eps, rng.NewRNG(1, "prop-test-carve", nil), carve.Config{})

		for _, w := range set {
			if !g.IsClosed(w.Loc, w.Dir) {
				t.Fatalf("wall %+v no longer closed after carving", w)
			}
		}
	})
}

// Property 4: no Blank room ever ends up with a carved wall, even after
// a full carve pass.
func TestProperty_BlankIsolation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nx := rapid.IntRange(4, 10).Draw(t, "nx")
		ny := rapid.IntRange(4, 10).Draw(t, "ny")
		rect := randomRect(t, nx, ny)

		g := room.NewGrid(nx, ny)
		for _, loc := range rect.Cells() {
			blankCell(g, loc)
		}

		eps, err := endpoint.Resolve(g, nil, rng.NewRNG(2, "prop-test-endpoint", nil))
		if err != nil {
			t.Skip("endpoints unplaceable on this grid shape")
		}
		_ = carve.Run(g, eps, rng.NewRNG(2, "prop-test-carve", nil), carve.Config{AllowIslands: true})

		for _, rm := range g.Rooms() {
			if rm.Type != room.TypeBlank {
				continue
			}
			for _, e := range g.Edges(rm) {
				if g.IsCarved(e.Loc, e.Dir) {
					t.Fatalf("blank room %v has a carved wall toward %v", rm.Location, e.Neighbor.Location)
				}
			}
		}
	})
}

// Property 5: every cell of a merged room shares the same room identity,
// so the merged room acts as a single node.
func TestProperty_MergeAtomicity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nx := rapid.IntRange(3, 8).Draw(t, "nx")
		ny := rapid.IntRange(3, 8).Draw(t, "ny")
		w := rapid.IntRange(2, nx).Draw(t, "w")
		h := rapid.IntRange(2, ny).Draw(t, "h")
		x := rapid.IntRange(0, nx-w).Draw(t, "x")
		y := rapid.IntRange(0, ny-h).Draw(t, "y")
		rect := geom.Rect{X: x, Y: y, W: w, H: h}

		g := room.NewGrid(nx, ny)
		merged, err := g.Merge(rect)
		if err != nil {
			t.Skip("merge rejected on this rectangle")
		}

		for _, loc := range rect.Cells() {
			if g.RoomAt(loc) != merged {
				t.Fatalf("cell %v does not share the merged room's identity", loc)
			}
		}
	})
}

// Property 8: applying the same Blank modifier twice leaves the grid
// identical to applying it once.
func TestProperty_BlankIdempotence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nx := rapid.IntRange(3, 10).Draw(t, "nx")
		ny := rapid.IntRange(3, 10).Draw(t, "ny")
		rect := randomRect(t, nx, ny)

		once := room.NewGrid(nx, ny)
		for _, loc := range rect.Cells() {
			blankCell(once, loc)
		}
		twice := room.NewGrid(nx, ny)
		for _, loc := range rect.Cells() {
			blankCell(twice, loc)
		}
		for _, loc := range rect.Cells() {
			blankCell(twice, loc)
		}

		for _, loc := range rect.Cells() {
			if once.RoomAt(loc).Type != twice.RoomAt(loc).Type {
				t.Fatalf("cell %v type diverged between one and two Blank applications", loc)
			}
		}
	})
}

// Property 9: a Closing with ^type in an area is the set-complement of
// Closing with type in that area, over the area's own boundary wall set.
func TestProperty_ClosingInversionLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nx := rapid.IntRange(3, 10).Draw(t, "nx")
		ny := rapid.IntRange(3, 10).Draw(t, "ny")
		rect := randomRect(t, nx, ny)
		ct := ClosingType(rapid.IntRange(0, int(ClosingMiddleW)).Draw(t, "closingType"))

		universe := boundaryWalls(rect)
		direct := closingCandidates(ct, rect)
		inverse := diffWalls(universe, direct)

		directSet := map[wallRef]bool{}
		for _, w := range direct {
			directSet[w] = true
		}
		inverseSet := map[wallRef]bool{}
		for _, w := range inverse {
			inverseSet[w] = true
		}

		for _, w := range universe {
			if directSet[w] == inverseSet[w] {
				t.Fatalf("wall %+v must belong to exactly one of direct/inverse sets", w)
			}
		}
	})
}
