package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/maze"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// Unit selects the physical unit the CLI's --svg-unit flag reports sizes
// in; it never changes the underlying geometry, only how it is scaled
// onto the SVG's user-unit grid.
type Unit int

const (
	UnitMM Unit = iota
	UnitPX
)

// mmToUserUnits is the resolution (SVG user units per millimetre) used
// when Unit is UnitMM; SVG millimetres have no intrinsic pixel size, so
// this constant only controls rendering crispness.
const mmToUserUnits = 10.0

// ZeroPoint selects where the SVG's coordinate origin sits relative to
// the canvas, via the --svg-zero-point flag.
type ZeroPoint int

const (
	ZeroTopLeft ZeroPoint = iota
	ZeroCenter
)

// SVGOptions configures the maze SVG renderer, mirroring spec.md §6's
// --svg-* CLI flags.
type SVGOptions struct {
	Unit      Unit
	DPI       float64 // used only when Unit is UnitPX; default 96
	ZeroPoint ZeroPoint

	NoBackground    bool
	BackgroundColor string
	RoomColor       string // fill for Normal/EndpointAnchor rooms; "" paints none
	EndpointColors  []string

	// ShowMarks draws endpoint markers and their declaration-order labels;
	// corresponds to the CLI's --no-marks flag (ShowMarks = !no-marks).
	ShowMarks bool
}

// DefaultSVGOptions returns the renderer's defaults.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Unit:            UnitMM,
		DPI:             96,
		ZeroPoint:       ZeroTopLeft,
		BackgroundColor: "#ffffff",
		RoomColor:       "",
		EndpointColors:  []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00"},
		ShowMarks:       true,
	}
}

func (o SVGOptions) scale() float64 {
	if o.Unit == UnitPX {
		dpi := o.DPI
		if dpi <= 0 {
			dpi = 96
		}
		return dpi / 25.4
	}
	return mmToUserUnits
}

// ExportSVG renders m to SVG, drawing in the fixed layer order background,
// rooms, walls, then endpoint marks (only when opts.ShowMarks is set).
func ExportSVG(m *maze.Model, opts SVGOptions) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("model cannot be nil")
	}
	scale := opts.scale()
	width := int(m.WidthMM*scale + 0.5)
	height := int(m.HeightMM*scale + 0.5)

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)

	minX, minY := 0, 0
	if opts.ZeroPoint == ZeroCenter {
		minX, minY = -width/2, -height/2
	}
	canvas.Start(width, height, fmt.Sprintf(`viewBox="%d %d %d %d"`, minX, minY, width, height))

	if !opts.NoBackground {
		bg := opts.BackgroundColor
		if bg == "" {
			bg = "#ffffff"
		}
		canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", bg))
	}

	cols := newAxis(m.Geometry.ColWidths, m.Geometry.OffsetX, scale)
	rows := newAxis(m.Geometry.RowHeights, m.Geometry.OffsetY, scale)

	drawRooms(canvas, m, cols, rows, opts)
	drawWalls(canvas, m, cols, rows, scale)
	if opts.ShowMarks {
		drawEndpoints(canvas, m, cols, rows, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders m and writes the result to filepath.
func SaveSVGToFile(m *maze.Model, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(m, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// axis precomputes each cell's pixel origin and size along one dimension.
type axis struct {
	origin []int
	size   []int
}

func newAxis(lengths []float64, offsetMM, scale float64) axis {
	a := axis{origin: make([]int, len(lengths)), size: make([]int, len(lengths))}
	cursor := offsetMM
	for i, l := range lengths {
		a.origin[i] = int(cursor*scale + 0.5)
		a.size[i] = int((cursor+l)*scale+0.5) - a.origin[i]
		cursor += l
	}
	return a
}

func drawRooms(canvas *svg.SVG, m *maze.Model, cols, rows axis, opts SVGOptions) {
	if opts.RoomColor == "" {
		return
	}
	for _, rm := range m.Grid.Rooms() {
		if rm.Type == room.TypeBlank {
			continue
		}
		x, y, w, h := cellRect(rm.Location, rm.Size, cols, rows)
		canvas.Rect(x, y, w, h, fmt.Sprintf("fill:%s;stroke:none", opts.RoomColor))
	}
}

func cellRect(loc geom.RoomLocation, size geom.RoomSize, cols, rows axis) (x, y, w, h int) {
	x = cols.origin[loc.X]
	y = rows.origin[loc.Y]
	w = 0
	for i := loc.X; i < loc.X+size.W; i++ {
		w += cols.size[i]
	}
	h = 0
	for i := loc.Y; i < loc.Y+size.H; i++ {
		h += rows.size[i]
	}
	return
}

var wallDirections = [4]geom.Direction{geom.North, geom.East, geom.South, geom.West}

// drawWalls draws a line along every non-carved cell-side of every room's
// boundary. A merged room's boundary can carry several independent wall
// states along one side (carve.Run opens one boundary cell at a time), so
// each boundary cell is checked and drawn individually rather than as one
// span; a shared wall between two rooms is drawn once per owning room but
// the duplicate overlapping segment is harmless (same coordinates, same
// style).
func drawWalls(canvas *svg.SVG, m *maze.Model, cols, rows axis, scale float64) {
	strokeWidth := int(m.WallThicknessMM*scale + 0.5)
	if strokeWidth < 1 {
		strokeWidth = 1
	}
	style := fmt.Sprintf("stroke:#000000;stroke-width:%d;stroke-linecap:square", strokeWidth)
	for _, rm := range m.Grid.Rooms() {
		for _, d := range wallDirections {
			for _, cell := range rm.BoundaryCells(d) {
				if !m.Grid.IsCarved(cell, d) {
					drawWallSegment(canvas, cell, d, cols, rows, style)
				}
			}
		}
	}
}

func drawWallSegment(canvas *svg.SVG, cell geom.RoomLocation, d geom.Direction, cols, rows axis, style string) {
	x, y, w, h := cellRect(cell, geom.SizeSingle, cols, rows)
	switch d {
	case geom.North:
		canvas.Line(x, y, x+w, y, style)
	case geom.South:
		canvas.Line(x, y+h, x+w, y+h, style)
	case geom.West:
		canvas.Line(x, y, x, y+h, style)
	case geom.East:
		canvas.Line(x+w, y, x+w, y+h, style)
	}
}

func drawEndpoints(canvas *svg.SVG, m *maze.Model, cols, rows axis, opts SVGOptions) {
	palette := opts.EndpointColors
	if len(palette) == 0 {
		palette = DefaultSVGOptions().EndpointColors
	}
	for i, ep := range m.Endpoints {
		color := palette[i%len(palette)]
		x, y, w, h := cellRect(ep.Loc, geom.SizeSingle, cols, rows)
		cx, cy := x+w/2, y+h/2
		radius := minInt(w, h) / 3
		canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s;stroke:#000000;stroke-width:1", color))
		canvas.Text(cx, cy+radius+12, fmt.Sprintf("%d", i),
			"text-anchor:middle;font-size:10px;font-family:monospace;fill:#000000")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
