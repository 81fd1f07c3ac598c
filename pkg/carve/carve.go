package carve

import (
	"errors"
	"fmt"
	"sort"

	"github.com/erbsland-dev/erbsland-maze/pkg/endpoint"
	"github.com/erbsland-dev/erbsland-maze/pkg/geom"
	"github.com/erbsland-dev/erbsland-maze/pkg/rng"
	"github.com/erbsland-dev/erbsland-maze/pkg/room"
)

// Sentinel errors for a single carve attempt. The retry loop that decides
// whether to re-run just the path generator or the whole modifier phase
// lives in the top-level generator, not here.
var (
	ErrIslandsForbidden = errors.New("unvisited rooms remain and islands are not allowed")
	ErrCannotJoin       = errors.New("no open wall bridges two required components")
)

// DefaultDeadEndBudget bounds how many rooms deep a dead-end stub may carve
// before giving up and leaving it unjoined.
const DefaultDeadEndBudget = 12

// Config tunes one carve attempt.
type Config struct {
	AllowIslands  bool
	DeadEndBudget int // 0 uses DefaultDeadEndBudget
}

func (c Config) budget() int {
	if c.DeadEndBudget <= 0 {
		return DefaultDeadEndBudget
	}
	return c.DeadEndBudget
}

// Run performs one carve attempt against g: a randomized DFS rooted at each
// non-dead-end endpoint, dead-end stubs, island fill, and the join phase.
// It resets all transient room state (Visited, PathID) before carving.
// Returns ErrIslandsForbidden or ErrCannotJoin if the attempt cannot
// satisfy those invariants; other errors are never expected once the grid
// passed through the layout and modifier stages.
func Run(g *room.Grid, endpoints []*endpoint.Endpoint, r *rng.RNG, cfg Config) error {
	g.ResetTransient()

	nextPathID := 1
	for _, ep := range endpoints {
		if ep.DeadEnd {
			continue
		}
		if ep.Room.Visited {
			continue
		}
		dfsCarve(g, r, ep.Room, nextPathID)
		nextPathID++
	}

	for _, ep := range endpoints {
		if !ep.DeadEnd || ep.Room.Visited {
			continue
		}
		carveDeadEndStub(g, r, ep.Room, cfg.budget())
	}

	if !cfg.AllowIslands {
		for _, rm := range g.Rooms() {
			if rm.Type == room.TypeNormal && !rm.Visited {
				return fmt.Errorf("%w: room %v", ErrIslandsForbidden, rm.Location)
			}
		}
	}

	for _, rm := range g.Rooms() {
		if rm.Visited || rm.Type != room.TypeNormal {
			continue
		}
		dfsCarve(g, r, rm, nextPathID)
		nextPathID++
	}

	return joinRequiredComponents(g, endpoints)
}

// dfsCarve runs one randomized depth-first carve rooted at root, marking
// every room it reaches with pathID. Neighbor enumeration order is fixed
// (N,E,S,W, the order room.Grid.Edges returns); the branch taken at each
// step is then chosen uniformly at random from the reachable, unvisited
// candidates, so the result is reproducible under a fixed seed.
func dfsCarve(g *room.Grid, r *rng.RNG, root *room.Room, pathID int) {
	root.Visited = true
	root.PathID = pathID
	stack := []*room.Room{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		candidates := unvisitedOpenEdges(g, top)
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		pick := candidates[r.Intn(len(candidates))]
		if err := g.Open(pick.Loc, pick.Dir); err != nil {
			continue
		}
		pick.Neighbor.Visited = true
		pick.Neighbor.PathID = pathID
		stack = append(stack, pick.Neighbor)
	}
}

// carveDeadEndStub carves a short path inward from root, same DFS rule as
// dfsCarve, stopping as soon as it meets an already-visited room (opening
// the meeting wall to join the maze) or once budget rooms have been
// carved, whichever comes first. A stub that exhausts its budget without
// meeting a visited room stays disconnected by design.
func carveDeadEndStub(g *room.Grid, r *rng.RNG, root *room.Room, budget int) {
	root.Visited = true
	cur := root
	for i := 0; i < budget; i++ {
		edges := g.Edges(cur)
		var candidates []room.Edge
		var meeting *room.Edge
		for _, e := range edges {
			if g.IsClosed(e.Loc, e.Dir) {
				continue
			}
			if e.Neighbor.Type == room.TypeBlank {
				continue
			}
			if e.Neighbor.Visited {
				if meeting == nil {
					ec := e
					meeting = &ec
				}
				continue
			}
			candidates = append(candidates, e)
		}
		if meeting != nil {
			_ = g.Open(meeting.Loc, meeting.Dir)
			return
		}
		if len(candidates) == 0 {
			return
		}
		pick := candidates[r.Intn(len(candidates))]
		if err := g.Open(pick.Loc, pick.Dir); err != nil {
			return
		}
		pick.Neighbor.Visited = true
		cur = pick.Neighbor
	}
}

func unvisitedOpenEdges(g *room.Grid, r *room.Room) []room.Edge {
	var candidates []room.Edge
	for _, e := range g.Edges(r) {
		if g.IsClosed(e.Loc, e.Dir) {
			continue
		}
		if e.Neighbor.Type == room.TypeBlank {
			continue
		}
		if e.Neighbor.Visited {
			continue
		}
		candidates = append(candidates, e)
	}
	return candidates
}

// joinRequiredComponents carves open walls to merge the path_id components
// of every non-dead-end endpoint into one, repeating until they share a
// single component or declaring ErrCannotJoin if no pair can be bridged.
func joinRequiredComponents(g *room.Grid, endpoints []*endpoint.Endpoint) error {
	required := requiredPathIDs(endpoints)
	for len(required) > 1 {
		joined := false
		for i := 0; i < len(required) && !joined; i++ {
			for j := i + 1; j < len(required) && !joined; j++ {
				wall, ok := findJoinWall(g, required[i], required[j])
				if !ok {
					continue
				}
				if err := g.Open(wall.Loc, wall.Dir); err != nil {
					continue
				}
				mergePathID(g, required[j], required[i])
				required = dedupPathIDs(append(required[:j], required[j+1:]...))
				joined = true
			}
		}
		if !joined {
			return ErrCannotJoin
		}
	}
	return nil
}

func requiredPathIDs(endpoints []*endpoint.Endpoint) []int {
	seen := make(map[int]bool)
	var ids []int
	for _, ep := range endpoints {
		if ep.DeadEnd {
			continue
		}
		id := ep.Room.PathID
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func dedupPathIDs(ids []int) []int {
	seen := make(map[int]bool)
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}

// wallCandidate is a join-phase candidate wall straddling two path_id
// components, ordered by the Manhattan distance between the two carved
// cells it joins, then (X, Y, Dir) for reproducible tie-breaking.
type wallCandidate struct {
	Loc      geom.RoomLocation
	Dir      geom.Direction
	distance int
}

func findJoinWall(g *room.Grid, a, b int) (wallCandidate, bool) {
	var candidates []wallCandidate
	for _, rm := range g.Rooms() {
		if rm.PathID != a {
			continue
		}
		for _, e := range g.Edges(rm) {
			if e.Neighbor.PathID != b {
				continue
			}
			st, _ := g.WallState(e.Loc, e.Dir)
			if st != room.WallOpen {
				continue
			}
			candidates = append(candidates, wallCandidate{
				Loc: e.Loc, Dir: e.Dir,
				distance: manhattanLoc(e.Loc, e.Loc.Neighbor(e.Dir)),
			})
		}
	}
	if len(candidates) == 0 {
		return wallCandidate{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.distance != cj.distance {
			return ci.distance < cj.distance
		}
		if ci.Loc.X != cj.Loc.X {
			return ci.Loc.X < cj.Loc.X
		}
		if ci.Loc.Y != cj.Loc.Y {
			return ci.Loc.Y < cj.Loc.Y
		}
		return ci.Dir < cj.Dir
	})
	return candidates[0], true
}

func manhattanLoc(a, b geom.RoomLocation) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func mergePathID(g *room.Grid, from, to int) {
	for _, rm := range g.Rooms() {
		if rm.PathID == from {
			rm.PathID = to
		}
	}
}
