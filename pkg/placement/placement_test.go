package placement

import (
	"testing"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
)

func TestResolveCorners(t *testing.T) {
	cases := []struct {
		name string
		p    geom.Placement
		want geom.Rect
	}{
		{"NW", geom.PlacementNW, geom.Rect{X: 0, Y: 0, W: 2, H: 2}},
		{"NE", geom.PlacementNE, geom.Rect{X: 7, Y: 0, W: 2, H: 2}},
		{"SE", geom.PlacementSE, geom.Rect{X: 7, Y: 7, W: 2, H: 2}},
		{"SW", geom.PlacementSW, geom.Rect{X: 0, Y: 7, W: 2, H: 2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Resolve(c.p, geom.SizeSmall, geom.RoomOffset{}, 9, 9)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != c.want {
				t.Errorf("Resolve(%v) = %+v, want %+v", c.p, got, c.want)
			}
		})
	}
}

func TestResolveCenterRoundsNW(t *testing.T) {
	// A 2-wide room cannot be split evenly around the center of a 9-wide
	// grid; the remainder must round toward the north-west.
	got, err := Resolve(geom.PlacementC, geom.SizeSmall, geom.RoomOffset{}, 9, 9)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := geom.Rect{X: 3, Y: 3, W: 2, H: 2}
	if got != want {
		t.Errorf("Resolve(C) = %+v, want %+v", got, want)
	}
}

func TestResolveEdgeMidpoints(t *testing.T) {
	got, err := Resolve(geom.PlacementN, geom.SizeSingle, geom.RoomOffset{}, 9, 9)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := geom.Rect{X: 4, Y: 0, W: 1, H: 1}
	if got != want {
		t.Errorf("Resolve(N) = %+v, want %+v", got, want)
	}

	got, err = Resolve(geom.PlacementW, geom.SizeSingle, geom.RoomOffset{}, 9, 9)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want = geom.Rect{X: 0, Y: 4, W: 1, H: 1}
	if got != want {
		t.Errorf("Resolve(W) = %+v, want %+v", got, want)
	}
}

func TestResolveWithOffset(t *testing.T) {
	offset := geom.RoomOffset{Diagonal: true, Magnitude: 2}
	got, err := Resolve(geom.PlacementNW, geom.SizeSingle, offset, 9, 9)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := geom.Rect{X: 2, Y: 2, W: 1, H: 1}
	if got != want {
		t.Errorf("Resolve(NW)+offset = %+v, want %+v", got, want)
	}
}

func TestResolveRejectsRandom(t *testing.T) {
	if _, err := Resolve(geom.PlacementRandom, geom.SizeSingle, geom.RoomOffset{}, 9, 9); err == nil {
		t.Error("expected error resolving PlacementRandom via Resolve")
	}
}

func TestClip(t *testing.T) {
	t.Run("in bounds", func(t *testing.T) {
		rect, ok := Clip(geom.Rect{X: 1, Y: 1, W: 2, H: 2}, 5, 5)
		if !ok {
			t.Fatal("expected in-bounds rectangle to clip successfully")
		}
		if rect != (geom.Rect{X: 1, Y: 1, W: 2, H: 2}) {
			t.Errorf("Clip() = %+v, want unchanged", rect)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		if _, ok := Clip(geom.Rect{X: 4, Y: 4, W: 2, H: 2}, 5, 5); ok {
			t.Error("expected out-of-bounds rectangle to fail clipping")
		}
	})
}

func TestResolveRandomFitsInGrid(t *testing.T) {
	r := rng.NewRNG(1, "test", []byte("cfg"))
	for i := 0; i < 50; i++ {
		rect, err := ResolveRandom(r, geom.SizeSmall, 9, 9, 8, nil)
		if err != nil {
			t.Fatalf("ResolveRandom() error = %v", err)
		}
		if !rect.InBounds(9, 9) {
			t.Errorf("ResolveRandom() = %+v, not in bounds", rect)
		}
	}
}

func TestResolveRandomTooLargeFails(t *testing.T) {
	r := rng.NewRNG(1, "test", []byte("cfg"))
	if _, err := ResolveRandom(r, geom.RoomSize{W: 20, H: 20}, 9, 9, 8, nil); err == nil {
		t.Error("expected ErrUnplaceable for an oversized room")
	}
}

func TestResolveRandomExhaustsBudget(t *testing.T) {
	r := rng.NewRNG(1, "test", []byte("cfg"))
	alwaysConflict := func(geom.Rect) bool { return true }
	if _, err := ResolveRandom(r, geom.SizeSingle, 9, 9, 5, alwaysConflict); err == nil {
		t.Error("expected ErrConflictAfterRetries when every draw conflicts")
	}
}
