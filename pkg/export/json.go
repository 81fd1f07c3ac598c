package export

import (
	"encoding/json"
	"os"

	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/maze"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// JSONWalls names the tri-state of the four sides of a room's top-left
// cell (Room.Location). For a merged room, east and south are therefore
// walls inside the room, not its outer boundary.
type JSONWalls struct {
	North string `json:"north"`
	East  string `json:"east"`
	South string `json:"south"`
	West  string `json:"west"`
}

// JSONRoom is the serializable view of one room.Room.
type JSONRoom struct {
	X       int       `json:"x"`
	Y       int       `json:"y"`
	W       int       `json:"w"`
	H       int       `json:"h"`
	Type    string    `json:"type"`
	PathID  int       `json:"path_id,omitempty"`
	Walls   JSONWalls `json:"walls"`
	DeadEnd bool      `json:"dead_end,omitempty"`
}

// JSONEndpoint is the serializable view of one endpoint.Endpoint.
type JSONEndpoint struct {
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Direction  string `json:"direction"`
	DeadEnd    bool   `json:"dead_end"`
	Opens      bool   `json:"opens"`
	ColorIndex int    `json:"color_index"`
}

// JSONModel is the full serialized shape of a maze.Model.
type JSONModel struct {
	NX         int            `json:"nx"`
	NY         int            `json:"ny"`
	WidthMM    float64        `json:"width_mm"`
	HeightMM   float64        `json:"height_mm"`
	ColWidths  []float64      `json:"col_widths_mm"`
	RowHeights []float64      `json:"row_heights_mm"`
	Rooms      []JSONRoom     `json:"rooms"`
	Endpoints  []JSONEndpoint `json:"endpoints"`
	Seed       uint64         `json:"seed"`
	Attempts   int            `json:"attempts,omitempty"`
}

func wallStateName(s room.WallState) string {
	switch s {
	case room.WallClosed:
		return "closed"
	case room.WallCarved:
		return "carved"
	default:
		return "open"
	}
}

// ToJSONModel flattens a maze.Model into its serializable form, sorting
// rooms by location for deterministic output.
func ToJSONModel(m *maze.Model) JSONModel {
	out := JSONModel{
		NX: m.Grid.NX, NY: m.Grid.NY,
		WidthMM: m.WidthMM, HeightMM: m.HeightMM,
		ColWidths: m.Geometry.ColWidths, RowHeights: m.Geometry.RowHeights,
		Seed: m.Seed, Attempts: m.Attempts,
	}
	for _, rm := range m.Grid.Rooms() {
		n, _ := m.Grid.WallState(rm.Location, geom.North)
		e, _ := m.Grid.WallState(rm.Location, geom.East)
		s, _ := m.Grid.WallState(rm.Location, geom.South)
		w, _ := m.Grid.WallState(rm.Location, geom.West)
		out.Rooms = append(out.Rooms, JSONRoom{
			X: rm.Location.X, Y: rm.Location.Y,
			W: rm.Size.W, H: rm.Size.H,
			Type:   rm.Type.String(),
			PathID: rm.PathID,
			Walls: JSONWalls{
				North: wallStateName(n), East: wallStateName(e),
				South: wallStateName(s), West: wallStateName(w),
			},
			DeadEnd: rm.Endpoint != nil && rm.Endpoint.DeadEnd,
		})
	}
	for i, ep := range m.Endpoints {
		out.Endpoints = append(out.Endpoints, JSONEndpoint{
			X: ep.Loc.X, Y: ep.Loc.Y,
			Direction: ep.Direction.String(), DeadEnd: ep.DeadEnd,
			Opens: ep.Opens, ColorIndex: i,
		})
	}
	return out
}

// ExportJSON serializes the model to JSON with 2-space indentation.
func ExportJSON(m *maze.Model) ([]byte, error) {
	return json.MarshalIndent(ToJSONModel(m), "", "  ")
}

// ExportJSONCompact serializes the model to JSON without indentation.
func ExportJSONCompact(m *maze.Model) ([]byte, error) {
	return json.Marshal(ToJSONModel(m))
}

// SaveJSONToFile exports the model to an indented JSON file.
func SaveJSONToFile(m *maze.Model, filepath string) error {
	data, err := ExportJSON(m)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
