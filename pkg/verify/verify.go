package verify

import (
	"fmt"

	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

var directions = [4]geom.Direction{geom.North, geom.East, geom.South, geom.West}

// Report is the outcome of one verification pass: Passed is true only if
// Errors is empty.
type Report struct {
	Passed bool
	Errors []string
}

// HasErrors reports whether the report recorded any invariant violation.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Report) fail(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Verify checks grid and endpoints against the invariants of spec.md §4.8:
// endpoint connectivity, no Blank room with a carved wall, and (unless
// allowIslands) every Normal room visited. "No carved wall is also closed"
// is a structural invariant of room.WallState (a single tri-state field)
// rather than something that needs runtime checking, so it is not
// re-verified here.
func Verify(g *room.Grid, endpoints []*endpoint.Endpoint, allowIslands bool) *Report {
	report := &Report{Passed: true}
	checkConnectivity(g, endpoints, report)
	checkBlankIsolation(g, report)
	checkCoverage(g, allowIslands, report)
	report.Passed = !report.HasErrors()
	return report
}

func checkConnectivity(g *room.Grid, endpoints []*endpoint.Endpoint, report *Report) {
	var required []*room.Room
	for _, ep := range endpoints {
		if !ep.DeadEnd {
			required = append(required, ep.Room)
		}
	}
	if len(required) == 0 {
		return
	}
	reachable := reachableCarved(g, required[0])
	for _, rm := range required[1:] {
		if !reachable[rm] {
			report.fail("endpoint room %v is not connected to endpoint room %v", rm.Location, required[0].Location)
		}
	}
}

func reachableCarved(g *room.Grid, root *room.Room) map[*room.Room]bool {
	seen := map[*room.Room]bool{root: true}
	queue := []*room.Room{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.Edges(cur) {
			if !g.IsCarved(e.Loc, e.Dir) || seen[e.Neighbor] {
				continue
			}
			seen[e.Neighbor] = true
			queue = append(queue, e.Neighbor)
		}
	}
	return seen
}

func checkBlankIsolation(g *room.Grid, report *Report) {
	for _, rm := range g.Rooms() {
		if rm.Type != room.TypeBlank {
			continue
		}
		for _, d := range directions {
			if g.IsCarved(rm.Location, d) {
				report.fail("blank room %v has a carved wall on side %s", rm.Location, d)
			}
		}
	}
}

func checkCoverage(g *room.Grid, allowIslands bool, report *Report) {
	if allowIslands {
		return
	}
	for _, rm := range g.Rooms() {
		if rm.Type == room.TypeNormal && !rm.Visited {
			report.fail("room %v is a normal room that was never visited", rm.Location)
		}
	}
}
