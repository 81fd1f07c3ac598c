package maze

import "testing"

func TestLoadConfigFromBytesAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte("width: 100\nheight: 80\nseed: 42\n"))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error = %v", err)
	}
	if !cfg.allowIslands() {
		t.Error("allow_islands should default to true")
	}
	if cfg.maximumAttempts() != 20 {
		t.Errorf("maximum_attempts default = %d, want 20", cfg.maximumAttempts())
	}
	if cfg.widthParity() != "odd" || cfg.heightParity() != "odd" {
		t.Error("width/height parity should default to odd")
	}
	if cfg.fillMode() != "stretch_edge" {
		t.Errorf("fill_mode default = %q, want stretch_edge", cfg.fillMode())
	}
}

func TestLoadConfigFromBytesAssignsSeedWhenMissing(t *testing.T) {
	cfg, err := LoadConfigFromBytes([]byte("width: 100\nheight: 80\n"))
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error = %v", err)
	}
	if cfg.Seed == 0 {
		t.Error("expected a non-zero generated seed")
	}
}

func TestValidateRejectsBadDimension(t *testing.T) {
	cfg := &Config{Width: 0, Height: 80}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a zero width")
	}
}

func TestValidateRejectsBadEndpointPlacement(t *testing.T) {
	cfg := &Config{Width: 100, Height: 80, Endpoints: []EndpointCfg{{Placement: "nowhere"}}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unrecognized endpoint placement")
	}
}

func TestValidateRejectsBadModifierKind(t *testing.T) {
	cfg := &Config{Width: 100, Height: 80, Modifiers: []ModifierCfg{{Kind: "bogus"}}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unrecognized modifier kind")
	}
}

func TestHashIsDeterministicForEqualConfigs(t *testing.T) {
	a := &Config{Width: 100, Height: 80, Seed: 7}
	b := &Config{Width: 100, Height: 80, Seed: 7}
	ha, hb := a.Hash(), b.Hash()
	if len(ha) != len(hb) {
		t.Fatalf("hash lengths differ: %d vs %d", len(ha), len(hb))
	}
	for i := range ha {
		if ha[i] != hb[i] {
			t.Fatalf("Hash() differs for identical configs at byte %d", i)
		}
	}
}

func TestHashDiffersForDifferentConfigs(t *testing.T) {
	a := &Config{Width: 100, Height: 80, Seed: 7}
	b := &Config{Width: 120, Height: 80, Seed: 7}
	ha, hb := a.Hash(), b.Hash()
	same := len(ha) == len(hb)
	if same {
		for i := range ha {
			if ha[i] != hb[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("expected different hashes for different configs")
	}
}

func TestAllowIslandsExplicitFalse(t *testing.T) {
	no := false
	cfg := &Config{Width: 100, Height: 80, AllowIslands: &no}
	if cfg.allowIslands() {
		t.Error("explicit allow_islands: false must not be overridden by the default")
	}
}

func TestToYAMLRoundTrips(t *testing.T) {
	cfg := &Config{Width: 100, Height: 80, Seed: 99, Endpoints: []EndpointCfg{{Placement: "w"}, {Placement: "e", DeadEnd: true}}}
	data, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	loaded, err := LoadConfigFromBytes(data)
	if err != nil {
		t.Fatalf("LoadConfigFromBytes() error = %v", err)
	}
	if loaded.Width != cfg.Width || loaded.Height != cfg.Height || loaded.Seed != cfg.Seed {
		t.Errorf("round-tripped config = %+v, want width/height/seed to match %+v", loaded, cfg)
	}
	if len(loaded.Endpoints) != 2 || !loaded.Endpoints[1].DeadEnd {
		t.Errorf("round-tripped endpoints = %+v, want 2 entries with the second a dead end", loaded.Endpoints)
	}
}
