package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// Sentinel errors for layout construction.
var (
	ErrBadDimension = errors.New("canvas dimension must be positive")
	ErrCanvasTooSmall = errors.New("canvas resolves to a grid smaller than 3x3")
	ErrBadFillMode    = errors.New("unrecognized fill mode")
)

// Default physical dimensions (millimetres), used when a Config leaves the
// corresponding field at zero.
const (
	DefaultSideLenMM       = 4.0
	DefaultWallThicknessMM = 1.7
)

// Parity constrains the number of rooms along one axis.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// String returns the string representation of a Parity.
func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return "none"
	}
}

// FillMode controls how leftover canvas space (after nx, ny cells of
// SideLenMM are laid out) is distributed across rows and columns by the
// renderer. It never changes nx or ny.
type FillMode int

const (
	FillStretchEdge FillMode = iota
	FillStretch
	FillSquareTopLeft
	FillSquareCenter
	FillFixedTopLeft
	FillFixedCenter
)

// String returns the string representation of a FillMode.
func (m FillMode) String() string {
	switch m {
	case FillStretchEdge:
		return "stretch_edge"
	case FillStretch:
		return "stretch"
	case FillSquareTopLeft:
		return "square_top_left"
	case FillSquareCenter:
		return "square_center"
	case FillFixedTopLeft:
		return "fixed_top_left"
	case FillFixedCenter:
		return "fixed_center"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ErrBadParity reports an unrecognized parity name.
var ErrBadParity = errors.New("unrecognized parity")

var parityNames = map[string]Parity{
	"none": ParityNone,
	"odd":  ParityOdd,
	"even": ParityEven,
}

// ParseParity parses "odd", "even", or "none" (case-insensitive).
func ParseParity(s string) (Parity, error) {
	if p, ok := parityNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadParity, s)
}

var fillModeNames = map[string]FillMode{
	"stretch_edge":    FillStretchEdge,
	"se":              FillStretchEdge,
	"stretch":         FillStretch,
	"s":               FillStretch,
	"square_top_left": FillSquareTopLeft,
	"qt":              FillSquareTopLeft,
	"square_center":   FillSquareCenter,
	"q":               FillSquareCenter,
	"fixed_top_left":  FillFixedTopLeft,
	"ft":              FillFixedTopLeft,
	"fixed_center":    FillFixedCenter,
	"f":               FillFixedCenter,
}

// ParseFillMode parses a fill mode name or its short alias.
func ParseFillMode(s string) (FillMode, error) {
	if m, ok := fillModeNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFillMode, s)
}

// Config collects the layout builder's physical inputs.
type Config struct {
	WidthMM, HeightMM         float64
	SideLenMM                 float64 // default DefaultSideLenMM
	WallThicknessMM           float64 // default DefaultWallThicknessMM
	WidthParity, HeightParity Parity
	FillMode                  FillMode
}

// adjustParity nudges n by at most one step to satisfy p. Both directions
// are equally near for a unit adjustment, so ties break toward the larger
// value.
func adjustParity(n int, p Parity) int {
	switch p {
	case ParityOdd:
		if n%2 == 0 {
			return n + 1
		}
	case ParityEven:
		if n%2 != 0 {
			return n + 1
		}
	}
	return n
}

// Build computes (nx, ny) from the physical canvas size and returns a fresh
// grid of that size with its perimeter walls closed, ready for the modifier
// engine. Endpoint resolution later carves the perimeter walls at each
// endpoint's opening side.
func Build(cfg Config) (*room.Grid, error) {
	if cfg.WidthMM <= 0 || cfg.HeightMM <= 0 {
		return nil, fmt.Errorf("%w: got %gx%g mm", ErrBadDimension, cfg.WidthMM, cfg.HeightMM)
	}
	sideLen := cfg.SideLenMM
	if sideLen <= 0 {
		sideLen = DefaultSideLenMM
	}

	nx := adjustParity(int(math.Round(cfg.WidthMM/sideLen)), cfg.WidthParity)
	ny := adjustParity(int(math.Round(cfg.HeightMM/sideLen)), cfg.HeightParity)
	if nx < 3 || ny < 3 {
		return nil, fmt.Errorf("%w: resolved to %dx%d", ErrCanvasTooSmall, nx, ny)
	}

	g := room.NewGrid(nx, ny)
	closePerimeter(g)
	return g, nil
}

func closePerimeter(g *room.Grid) {
	for x := 0; x < g.NX; x++ {
		g.Close(geom.RoomLocation{X: x, Y: 0}, geom.North)
		g.Close(geom.RoomLocation{X: x, Y: g.NY - 1}, geom.South)
	}
	for y := 0; y < g.NY; y++ {
		g.Close(geom.RoomLocation{X: 0, Y: y}, geom.West)
		g.Close(geom.RoomLocation{X: g.NX - 1, Y: y}, geom.East)
	}
}

// Geometry is the per-row/column physical layout a renderer uses to place
// each room, derived from a committed (nx, ny) and a FillMode. It never
// feeds back into nx or ny.
type Geometry struct {
	ColWidths  []float64
	RowHeights []float64
	OffsetX    float64
	OffsetY    float64
}

// ComputeGeometry distributes the canvas's leftover space (width/height
// minus nx/ny cells of sideLenMM) across columns and rows according to
// mode. Stretch modes grow cells to consume the leftover; Square and Fixed
// modes keep every cell at sideLenMM and turn the leftover into a margin,
// placed either flush at the top-left or split evenly around the grid.
func ComputeGeometry(nx, ny int, widthMM, heightMM, sideLenMM float64, mode FillMode) Geometry {
	leftoverX := widthMM - float64(nx)*sideLenMM
	leftoverY := heightMM - float64(ny)*sideLenMM

	g := Geometry{
		ColWidths:  uniform(nx, sideLenMM),
		RowHeights: uniform(ny, sideLenMM),
	}

	switch mode {
	case FillStretchEdge:
		if nx > 0 {
			g.ColWidths[0] += leftoverX / 2
			g.ColWidths[nx-1] += leftoverX - leftoverX/2
		}
		if ny > 0 {
			g.RowHeights[0] += leftoverY / 2
			g.RowHeights[ny-1] += leftoverY - leftoverY/2
		}
	case FillStretch:
		if nx > 0 {
			extra := leftoverX / float64(nx)
			for i := range g.ColWidths {
				g.ColWidths[i] += extra
			}
		}
		if ny > 0 {
			extra := leftoverY / float64(ny)
			for i := range g.RowHeights {
				g.RowHeights[i] += extra
			}
		}
	case FillSquareCenter, FillFixedCenter:
		g.OffsetX = leftoverX / 2
		g.OffsetY = leftoverY / 2
	case FillSquareTopLeft, FillFixedTopLeft:
		// Cells keep sideLenMM, leftover becomes a bottom/right margin.
	}
	return g
}

func uniform(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
