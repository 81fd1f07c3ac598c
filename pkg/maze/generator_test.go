package maze

import (
	"testing"

	"github.com/erbsland-dev/erbsland-maze/pkg/verify"
)

func smallConfig(seed uint64) *Config {
	return &Config{Width: 60, Height: 60, SideLength: 4, Seed: seed}
}

func TestGenerateProducesAVerifiedMaze(t *testing.T) {
	gen := NewGenerator()
	model, err := gen.Generate(smallConfig(1))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	report := verify.Verify(model.Grid, model.Endpoints, true)
	if !report.Passed {
		t.Errorf("expected a passing verification, got errors: %v", report.Errors)
	}
	if len(model.Endpoints) != 2 {
		t.Errorf("expected the default W/E endpoints, got %d", len(model.Endpoints))
	}
}

func TestGenerateIsDeterministicForTheSameSeed(t *testing.T) {
	gen := NewGenerator()
	a, err := gen.Generate(smallConfig(123))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := gen.Generate(smallConfig(123))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, rm := range a.Grid.Rooms() {
		other := b.Grid.RoomAt(rm.Location)
		if other == nil || other.PathID != rm.PathID {
			t.Fatalf("non-deterministic carve at %v: %d vs %d", rm.Location, rm.PathID, other.PathID)
		}
	}
}

func TestGenerateRejectsNilConfig(t *testing.T) {
	gen := NewGenerator()
	if _, err := gen.Generate(nil); err == nil {
		t.Error("expected ErrNoConfig for a nil config")
	}
}

func TestGenerateLayoutOnlySkipsCarving(t *testing.T) {
	cfg := smallConfig(1)
	cfg.LayoutOnly = true
	gen := NewGenerator()
	model, err := gen.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(model.Endpoints) != 2 {
		t.Errorf("layout_only must still resolve endpoints (phase 2), got %d", len(model.Endpoints))
	}
	for _, rm := range model.Grid.Rooms() {
		if rm.Visited {
			t.Error("layout_only must not carve any room")
			break
		}
	}
}

type recordingSink struct {
	events []verify.Event
}

func (s *recordingSink) Emit(e verify.Event) {
	s.events = append(s.events, e)
}

func TestGenerateEmitsStatusEvents(t *testing.T) {
	sink := &recordingSink{}
	gen := NewGeneratorWithStatus(sink)
	if _, err := gen.Generate(smallConfig(1)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(sink.events) == 0 {
		t.Fatal("expected status events to be emitted")
	}
	if sink.events[0].Kind != verify.EventLayoutComputed {
		t.Errorf("first event = %v, want LayoutComputed", sink.events[0].Kind)
	}
	last := sink.events[len(sink.events)-1]
	if last.Kind != verify.EventCompleted {
		t.Errorf("last event = %v, want Completed", last.Kind)
	}
}

func TestGenerateSucceedsWithSmallCenterClosing(t *testing.T) {
	cfg := smallConfig(1)
	cfg.Modifiers = []ModifierCfg{{Kind: "closing", Closing: "direction_vertical", Placement: "c", Size: "1x1"}}
	gen := NewGenerator()
	// A single interior closing cannot disconnect a whole grid; this just
	// exercises the path where modifiers run before the retry loop without
	// expecting failure.
	if _, err := gen.Generate(cfg); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
}
