package maze

import (
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/layout"
	"github.com/erbsland-dev/erbsland-maze/pkg/modifier"
)

// EndpointCfg is the YAML shape of one endpoint declaration.
type EndpointCfg struct {
	Placement string `yaml:"placement"`
	Offset    string `yaml:"offset,omitempty"`
	DeadEnd   bool   `yaml:"dead_end,omitempty"`
}

func (c EndpointCfg) resolve() (endpoint.Declaration, error) {
	p, err := geom.ParsePlacement(c.Placement)
	if err != nil {
		return endpoint.Declaration{}, err
	}
	off, err := geom.ParseOffset(c.Offset)
	if err != nil {
		return endpoint.Declaration{}, err
	}
	return endpoint.Declaration{Placement: p, Offset: off, DeadEnd: c.DeadEnd}, nil
}

// ModifierCfg is the YAML shape of one modifier declaration. Kind selects
// which fields apply: "frame", "blank", "closing", or "merge".
type ModifierCfg struct {
	Kind      string `yaml:"kind"`
	Insets    string `yaml:"insets,omitempty"`    // frame
	Closing   string `yaml:"closing,omitempty"`   // closing
	Inverted  bool   `yaml:"inverted,omitempty"`  // closing
	Placement string `yaml:"placement,omitempty"` // blank, closing, merge
	Size      string `yaml:"size,omitempty"`      // blank, closing, merge
	Offset    string `yaml:"offset,omitempty"`    // blank, closing, merge
}

func (c ModifierCfg) resolve() (modifier.Modifier, error) {
	switch c.Kind {
	case "frame":
		insets, err := geom.ParseInsets(c.Insets)
		if err != nil {
			return nil, err
		}
		return modifier.Frame{Insets: insets}, nil
	case "blank":
		p, size, off, err := c.resolvePlacementSizeOffset()
		if err != nil {
			return nil, err
		}
		return modifier.Blank{Placement: p, Size: size, Offset: off}, nil
	case "closing":
		p, size, off, err := c.resolvePlacementSizeOffset()
		if err != nil {
			return nil, err
		}
		ct, err := modifier.ParseClosingType(c.Closing)
		if err != nil {
			return nil, err
		}
		return modifier.Closing{Type: ct, Inverted: c.Inverted, Placement: p, Size: size, Offset: off}, nil
	case "merge":
		p, size, off, err := c.resolvePlacementSizeOffset()
		if err != nil {
			return nil, err
		}
		return modifier.Merge{Placement: p, Size: size, Offset: off}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized modifier kind %q", ErrBadModifierKind, c.Kind)
	}
}

func (c ModifierCfg) resolvePlacementSizeOffset() (geom.Placement, geom.RoomSize, geom.RoomOffset, error) {
	p, err := geom.ParsePlacement(c.Placement)
	if err != nil {
		return 0, geom.RoomSize{}, geom.RoomOffset{}, err
	}
	var size geom.RoomSize
	if c.Size != "" {
		size, err = geom.ParseSize(c.Size)
		if err != nil {
			return 0, geom.RoomSize{}, geom.RoomOffset{}, err
		}
	}
	off, err := geom.ParseOffset(c.Offset)
	if err != nil {
		return 0, geom.RoomSize{}, geom.RoomOffset{}, err
	}
	return p, size, off, nil
}

// Config is the maze generation configuration consumed from the CLI
// collaborator (or loaded directly from YAML). Every field mirrors
// spec.md §6's configuration record.
type Config struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	SideLength    float64 `yaml:"side_length,omitempty"`
	WallThickness float64 `yaml:"wall_thickness,omitempty"`

	WidthParity  string `yaml:"width_parity,omitempty"`
	HeightParity string `yaml:"height_parity,omitempty"`
	FillMode     string `yaml:"fill_mode,omitempty"`

	Endpoints []EndpointCfg `yaml:"endpoints,omitempty"`
	Modifiers []ModifierCfg `yaml:"modifiers,omitempty"`

	// AllowIslands defaults to true; a nil pointer means "not set".
	AllowIslands    *bool `yaml:"allow_islands,omitempty"`
	MaximumAttempts int   `yaml:"maximum_attempts,omitempty"`
	LayoutOnly      bool  `yaml:"layout_only,omitempty"`
	IgnoreErrors    bool  `yaml:"ignore_errors,omitempty"`
	Silent          bool  `yaml:"silent,omitempty"`

	Seed uint64 `yaml:"seed,omitempty"`
}

// ErrBadModifierKind reports an unrecognized ModifierCfg.Kind.
var ErrBadModifierKind = fmt.Errorf("unrecognized modifier kind")

// allowIslands resolves the default-true tri-state of AllowIslands.
func (c *Config) allowIslands() bool {
	if c.AllowIslands == nil {
		return true
	}
	return *c.AllowIslands
}

// maximumAttempts resolves the default of 20 attempts.
func (c *Config) maximumAttempts() int {
	if c.MaximumAttempts <= 0 {
		return 20
	}
	return c.MaximumAttempts
}

func (c *Config) widthParity() string {
	if c.WidthParity == "" {
		return "odd"
	}
	return c.WidthParity
}

func (c *Config) heightParity() string {
	if c.HeightParity == "" {
		return "odd"
	}
	return c.HeightParity
}

func (c *Config) fillMode() string {
	if c.FillMode == "" {
		return "stretch_edge"
	}
	return c.FillMode
}

func (c *Config) sideLenMM() float64 {
	if c.SideLength <= 0 {
		return layout.DefaultSideLenMM
	}
	return c.SideLength
}

func (c *Config) wallThicknessMM() float64 {
	if c.WallThickness <= 0 {
		return layout.DefaultWallThicknessMM
	}
	return c.WallThickness
}

func (c *Config) fillModeEnum() (layout.FillMode, error) {
	return layout.ParseFillMode(c.fillMode())
}

// Validate checks the configuration for the errors spec.md §7 classifies
// as Configuration errors, parsing every declarative string field so a
// bad value fails fast rather than deep inside generation.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %gx%g mm", layout.ErrBadDimension, c.Width, c.Height)
	}
	if _, err := layout.ParseParity(c.widthParity()); err != nil {
		return fmt.Errorf("width_parity: %w", err)
	}
	if _, err := layout.ParseParity(c.heightParity()); err != nil {
		return fmt.Errorf("height_parity: %w", err)
	}
	if _, err := layout.ParseFillMode(c.fillMode()); err != nil {
		return fmt.Errorf("fill_mode: %w", err)
	}
	for i, e := range c.Endpoints {
		if _, err := e.resolve(); err != nil {
			return fmt.Errorf("endpoints[%d]: %w", i, err)
		}
	}
	for i, m := range c.Modifiers {
		if _, err := m.resolve(); err != nil {
			return fmt.Errorf("modifiers[%d]: %w", i, err)
		}
	}
	return nil
}

// resolveEndpoints converts every EndpointCfg into an endpoint.Declaration.
func (c *Config) resolveEndpoints() ([]endpoint.Declaration, error) {
	decls := make([]endpoint.Declaration, 0, len(c.Endpoints))
	for i, e := range c.Endpoints {
		d, err := e.resolve()
		if err != nil {
			return nil, fmt.Errorf("endpoints[%d]: %w", i, err)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// resolveModifiers converts every ModifierCfg into a modifier.Modifier, in
// declaration order (the modifier Engine re-orders by phase internally).
func (c *Config) resolveModifiers() ([]modifier.Modifier, error) {
	mods := make([]modifier.Modifier, 0, len(c.Modifiers))
	for i, m := range c.Modifiers {
		resolved, err := m.resolve()
		if err != nil {
			return nil, fmt.Errorf("modifiers[%d]: %w", i, err)
		}
		mods = append(mods, resolved)
	}
	return mods, nil
}

func (c *Config) layoutConfig() (layout.Config, error) {
	wp, err := layout.ParseParity(c.widthParity())
	if err != nil {
		return layout.Config{}, err
	}
	hp, err := layout.ParseParity(c.heightParity())
	if err != nil {
		return layout.Config{}, err
	}
	fm, err := layout.ParseFillMode(c.fillMode())
	if err != nil {
		return layout.Config{}, err
	}
	return layout.Config{
		WidthMM:         c.Width,
		HeightMM:        c.Height,
		SideLenMM:       c.SideLength,
		WallThicknessMM: c.WallThickness,
		WidthParity:     wp,
		HeightParity:    hp,
		FillMode:        fm,
	}, nil
}

// LoadConfig reads and validates a YAML configuration file, assigning a
// time-derived seed if none was given.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, used to derive
// per-stage RNG seeds alongside the master seed.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.Sum256([]byte(fmt.Sprintf("seed:%d", c.Seed)))
		return h[:]
	}
	h := sha256.Sum256(data)
	return h[:]
}

func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now <= 0 {
		now = 1
	}
	return uint64(now)
}
