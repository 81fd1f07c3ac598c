package verify

import (
	"testing"

	"github.com/erbsland-dev/erbsland-maze/pkg/carve"
	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/layout"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

func testRNG(seed uint64, stage string) *rng.RNG {
	return rng.NewRNG(seed, stage, nil)
}

func buildGrid(t *testing.T, nx, ny int) *room.Grid {
	t.Helper()
	g, err := layout.Build(layout.Config{WidthMM: float64(nx) * 4, HeightMM: float64(ny) * 4, SideLenMM: 4})
	if err != nil {
		t.Fatalf("layout.Build() error = %v", err)
	}
	return g
}

func TestVerifyPassesOnFullyCarvedGrid(t *testing.T) {
	g := buildGrid(t, 7, 5)
	eps, err := endpoint.Resolve(g, nil, testRNG(1, "verify-test-endpoint"))
	if err != nil {
		t.Fatalf("endpoint.Resolve() error = %v", err)
	}
	if err := carve.Run(g, eps, testRNG(2, "verify-test-carve"), carve.Config{}); err != nil {
		t.Fatalf("carve.Run() error = %v", err)
	}
	report := Verify(g, eps, false)
	if !report.Passed {
		t.Errorf("Verify() report = %+v, want Passed", report)
	}
}

func TestVerifyCatchesDisconnectedEndpoints(t *testing.T) {
	g := buildGrid(t, 6, 3)
	for y := 0; y < g.NY; y++ {
		g.Close(geom.RoomLocation{X: 2, Y: y}, geom.East)
	}
	eps, err := endpoint.Resolve(g, []endpoint.Declaration{
		{Placement: geom.PlacementW},
		{Placement: geom.PlacementE},
	}, testRNG(3, "verify-test-endpoint"))
	if err != nil {
		t.Fatalf("endpoint.Resolve() error = %v", err)
	}
	_ = carve.Run(g, eps, testRNG(4, "verify-test-carve"), carve.Config{AllowIslands: true})
	report := Verify(g, eps, true)
	if report.Passed {
		t.Error("expected Verify() to catch the disconnected endpoints")
	}
}

func TestVerifyCatchesBlankWithCarvedWall(t *testing.T) {
	g := buildGrid(t, 5, 5)
	loc := geom.RoomLocation{X: 2, Y: 2}
	g.RoomAt(loc).Type = room.TypeBlank
	if err := g.Open(loc, geom.East); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	report := Verify(g, nil, true)
	if report.Passed {
		t.Error("expected Verify() to catch the blank room with a carved wall")
	}
}

func TestVerifyCatchesUnvisitedRoomWhenIslandsDisallowed(t *testing.T) {
	g := buildGrid(t, 5, 5)
	report := Verify(g, nil, false)
	if report.Passed {
		t.Error("expected Verify() to catch unvisited normal rooms")
	}
}

func TestVerifyAllowsUnvisitedRoomWhenIslandsAllowed(t *testing.T) {
	g := buildGrid(t, 5, 5)
	report := Verify(g, nil, true)
	if !report.Passed {
		t.Errorf("Verify() report = %+v, want Passed", report)
	}
}

func TestEventStringsAreHumanReadable(t *testing.T) {
	events := []Event{
		LayoutComputed(9, 9, 4),
		AttemptStarted(1),
		PathsCarved(),
		IslandsFilled(3),
		Joined(1, 2),
		VerifyOk(),
		VerifyFailed("endpoint disconnected"),
		Aborted("CannotJoin"),
		Completed(),
	}
	for _, e := range events {
		if e.String() == "" {
			t.Errorf("Event{Kind: %v}.String() is empty", e.Kind)
		}
	}
}

func TestNullSinkDiscardsEvents(t *testing.T) {
	var sink StatusSink = NullSink{}
	sink.Emit(Completed())
}
