package maze

import (
	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/layout"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// Model is the finished, read-only maze a renderer consumes: the carved
// and verified Grid, the physical Geometry a fill mode resolved it to, and
// the Endpoints anchored within it.
type Model struct {
	Grid      *room.Grid
	Geometry  layout.Geometry
	Endpoints []*endpoint.Endpoint

	// WidthMM and HeightMM are the requested canvas dimensions; a fill mode
	// other than the stretch modes leaves Geometry's cells smaller than
	// the canvas, with the remainder distributed as a margin.
	WidthMM, HeightMM float64
	// WallThicknessMM is the requested physical wall thickness, carried
	// through for the renderer's stroke width; it plays no role in the
	// core's grid topology.
	WallThicknessMM float64

	Seed       uint64
	ConfigHash []byte
	Attempts   int
}

// NX and NY report the grid's room count along each axis.
func (m *Model) NX() int { return m.Grid.NX }
func (m *Model) NY() int { return m.Grid.NY }
