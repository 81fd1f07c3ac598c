package maze

import (
	"fmt"

	"github.com/erbsland-dev/erbsland-maze/pkg/carve"
	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/layout"
	"github.com/erbsland-dev/erbsland-maze/pkg/modifier"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
	"github.com/erbsland-dev/erbsland-maze/pkg/verify"
)

// Generator produces a Model from a Config.
type Generator interface {
	Generate(cfg *Config) (*Model, error)
}

// DefaultGenerator wires the layout, modifier, endpoint, carve, and verify
// stages into the retry loop spec.md §4.7 describes.
type DefaultGenerator struct {
	Status verify.StatusSink
}

// NewGenerator creates a DefaultGenerator that discards status events.
func NewGenerator() *DefaultGenerator {
	return &DefaultGenerator{Status: verify.NullSink{}}
}

// NewGeneratorWithStatus creates a DefaultGenerator that pushes phase
// events to sink (the CLI's --silent flag passes verify.NullSink instead).
func NewGeneratorWithStatus(sink verify.StatusSink) *DefaultGenerator {
	return &DefaultGenerator{Status: sink}
}

func (g *DefaultGenerator) push(e verify.Event) {
	if g.Status == nil {
		return
	}
	g.Status.Emit(e)
}

// Generate runs the full pipeline: it builds the layout once, applies the
// modifier declarations once, then retries endpoint resolution, carving,
// and verification up to maximumAttempts times, cloning the post-modifier
// grid fresh for each attempt so a failed attempt never leaks state into
// the next. Random endpoint placements and carve decisions are re-drawn
// each attempt from an attempt-indexed RNG stream derived from the master
// seed, so the whole run stays reproducible.
func (g *DefaultGenerator) Generate(cfg *Config) (*Model, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hash := cfg.Hash()
	modifierRNG := rng.NewRNG(cfg.Seed, "modifiers", hash)

	layoutCfg, err := cfg.layoutConfig()
	if err != nil {
		return nil, err
	}
	base, err := layout.Build(layoutCfg)
	if err != nil {
		return nil, err
	}
	g.push(verify.LayoutComputed(base.NX, base.NY, cfg.sideLenMM()))

	mods, err := cfg.resolveModifiers()
	if err != nil {
		return nil, err
	}
	engine := modifier.NewEngine(cfg.IgnoreErrors)
	if _, err := engine.Run(base, mods, modifierRNG); err != nil {
		return nil, err
	}

	fillMode, err := cfg.fillModeEnum()
	if err != nil {
		return nil, err
	}
	geo := layout.ComputeGeometry(base.NX, base.NY, cfg.Width, cfg.Height, cfg.sideLenMM(), fillMode)

	decls, err := cfg.resolveEndpoints()
	if err != nil {
		return nil, err
	}

	if cfg.LayoutOnly {
		layoutGrid := base.Clone()
		endpointRNG := rng.NewRNG(cfg.Seed, "endpoints-1", hash)
		endpoints, err := endpoint.Resolve(layoutGrid, decls, endpointRNG)
		if err != nil {
			return nil, err
		}
		if err := checkEndpointsTrapped(layoutGrid, endpoints); err != nil {
			return nil, err
		}
		return &Model{
			Grid: layoutGrid, Geometry: geo, Endpoints: endpoints,
			WidthMM: cfg.Width, HeightMM: cfg.Height, WallThicknessMM: cfg.wallThicknessMM(),
			Seed: cfg.Seed, ConfigHash: hash,
		}, nil
	}

	carveCfg := carve.Config{AllowIslands: cfg.allowIslands()}
	maxAttempts := cfg.maximumAttempts()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		g.push(verify.AttemptStarted(attempt))

		attemptGrid := base.Clone()
		endpointRNG := rng.NewRNG(cfg.Seed, fmt.Sprintf("endpoints-%d", attempt), hash)
		endpoints, err := endpoint.Resolve(attemptGrid, decls, endpointRNG)
		if err != nil {
			return nil, err
		}

		if err := checkEndpointsTrapped(attemptGrid, endpoints); err != nil {
			lastErr = err
			g.push(verify.Aborted(err.Error()))
			continue
		}

		carveRNG := rng.NewRNG(cfg.Seed, fmt.Sprintf("carve-%d", attempt), hash)
		if err := carve.Run(attemptGrid, endpoints, carveRNG, carveCfg); err != nil {
			lastErr = err
			g.push(verify.Aborted(err.Error()))
			continue
		}
		g.push(verify.PathsCarved())

		report := verify.Verify(attemptGrid, endpoints, cfg.allowIslands())
		if !report.Passed {
			reason := "unknown"
			if len(report.Errors) > 0 {
				reason = report.Errors[0]
			}
			lastErr = fmt.Errorf("verification failed: %s", reason)
			g.push(verify.VerifyFailed(reason))
			continue
		}
		g.push(verify.VerifyOk())
		g.push(verify.Completed())

		return &Model{
			Grid:            attemptGrid,
			Geometry:        geo,
			Endpoints:       endpoints,
			WidthMM:         cfg.Width,
			HeightMM:        cfg.Height,
			WallThicknessMM: cfg.wallThicknessMM(),
			Seed:            cfg.Seed,
			ConfigHash:      hash,
			Attempts:        attempt,
		}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrMaxAttemptsExceeded, lastErr)
}

// checkEndpointsTrapped reports ErrEndpointTrapped for any endpoint whose
// room has no crossing that is both open and leads to a non-Blank
// neighbor, since no carve could ever reach or leave it (spec.md §4.5's
// Frame warning, promoted here to the §7 generation error it names).
func checkEndpointsTrapped(g *room.Grid, endpoints []*endpoint.Endpoint) error {
	for _, ep := range endpoints {
		reachable := false
		for _, e := range g.Edges(ep.Room) {
			if g.IsClosed(e.Loc, e.Dir) || e.Neighbor.Type == room.TypeBlank {
				continue
			}
			reachable = true
			break
		}
		if !reachable {
			return fmt.Errorf("%w: endpoint at %v", ErrEndpointTrapped, ep.Loc)
		}
	}
	return nil
}
