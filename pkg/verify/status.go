package verify

import "fmt"

// EventKind tags the phase-boundary events the generator pushes to a
// StatusSink, mirroring spec.md §4.8's event list.
type EventKind int

const (
	EventLayoutComputed EventKind = iota
	EventAttemptStarted
	EventPathsCarved
	EventIslandsFilled
	EventJoined
	EventVerifyOk
	EventVerifyFailed
	EventAborted
	EventCompleted
)

// String returns the string representation of an EventKind.
func (k EventKind) String() string {
	switch k {
	case EventLayoutComputed:
		return "LayoutComputed"
	case EventAttemptStarted:
		return "AttemptStarted"
	case EventPathsCarved:
		return "PathsCarved"
	case EventIslandsFilled:
		return "IslandsFilled"
	case EventJoined:
		return "Joined"
	case EventVerifyOk:
		return "VerifyOk"
	case EventVerifyFailed:
		return "VerifyFailed"
	case EventAborted:
		return "Aborted"
	case EventCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Event is a single status push. Only the fields relevant to Kind are
// populated; the rest hold their zero value.
type Event struct {
	Kind EventKind

	NX, NY int     // LayoutComputed
	CellMM float64 // LayoutComputed

	Attempt int // AttemptStarted

	IslandsFilled int // IslandsFilled

	JoinedA, JoinedB int // Joined (path_id pair)

	Reason string // VerifyFailed
	Abort  string // Aborted (error message)
}

// String renders the event as one progress line, the way the CLI prints
// it unless --silent is set.
func (e Event) String() string {
	switch e.Kind {
	case EventLayoutComputed:
		return fmt.Sprintf("layout computed: %dx%d rooms, %.2fmm cells", e.NX, e.NY, e.CellMM)
	case EventAttemptStarted:
		return fmt.Sprintf("attempt %d started", e.Attempt)
	case EventPathsCarved:
		return "paths carved"
	case EventIslandsFilled:
		return fmt.Sprintf("filled %d island room(s)", e.IslandsFilled)
	case EventJoined:
		return fmt.Sprintf("joined path components %d and %d", e.JoinedA, e.JoinedB)
	case EventVerifyOk:
		return "verification passed"
	case EventVerifyFailed:
		return fmt.Sprintf("verification failed: %s", e.Reason)
	case EventAborted:
		return fmt.Sprintf("aborted: %s", e.Abort)
	case EventCompleted:
		return "completed"
	default:
		return e.Kind.String()
	}
}

// StatusSink receives status events as the generator passes phase
// boundaries. Emit must be non-blocking: the core calls it inline from a
// single-threaded generation loop and never synchronizes around it.
type StatusSink interface {
	Emit(Event)
}

// NullSink discards every event; it is the default sink when the caller
// does not want progress reporting (the CLI's --silent mode).
type NullSink struct{}

// Emit implements StatusSink by doing nothing.
func (NullSink) Emit(Event) {}

// LayoutComputed builds the event the layout builder reports once the
// grid's dimensions are resolved.
func LayoutComputed(nx, ny int, cellMM float64) Event {
	return Event{Kind: EventLayoutComputed, NX: nx, NY: ny, CellMM: cellMM}
}

// AttemptStarted builds the event the path generator reports at the start
// of each retry attempt (1-indexed).
func AttemptStarted(attempt int) Event {
	return Event{Kind: EventAttemptStarted, Attempt: attempt}
}

// PathsCarved builds the event reported once an attempt's whole carve
// (DFS, dead-end stubs, island fill and join) has succeeded.
func PathsCarved() Event {
	return Event{Kind: EventPathsCarved}
}

// IslandsFilled builds the event reported after the island-fill phase.
func IslandsFilled(count int) Event {
	return Event{Kind: EventIslandsFilled, IslandsFilled: count}
}

// Joined builds the event reported each time the join phase bridges two
// path_id components.
func Joined(a, b int) Event {
	return Event{Kind: EventJoined, JoinedA: a, JoinedB: b}
}

// VerifyOk builds the event reported when a verification pass finds no
// invariant violations.
func VerifyOk() Event {
	return Event{Kind: EventVerifyOk}
}

// VerifyFailed builds the event reported when a verification pass fails,
// carrying the first recorded failure reason.
func VerifyFailed(reason string) Event {
	return Event{Kind: EventVerifyFailed, Reason: reason}
}

// Aborted builds the event reported when a generation attempt is
// abandoned, carrying the error message that ended it.
func Aborted(kind string) Event {
	return Event{Kind: EventAborted, Abort: kind}
}

// Completed builds the event reported once a valid maze has been
// produced.
func Completed() Event {
	return Event{Kind: EventCompleted}
}
