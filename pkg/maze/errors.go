package maze

import "errors"

// Sentinel errors for the generation error kinds of spec.md §7 that do not
// already live in a lower-level package (geom/placement/room/layout/
// modifier/carve already define the rest: ErrBadSize, ErrBadOffset,
// ErrBadInsets, ErrBadPlacement in pkg/geom; ErrBadDimension,
// ErrCanvasTooSmall, ErrBadFillMode, ErrBadParity in pkg/layout;
// ErrBadClosing in pkg/modifier; ErrInvalidMerge in pkg/room;
// ErrUnplaceable, ErrConflictAfterRetries in pkg/placement;
// ErrIslandsForbidden, ErrCannotJoin in pkg/carve).
var (
	// ErrEndpointTrapped reports an endpoint whose room has no open
	// crossing to a non-Blank neighbor, so it can never join the maze.
	ErrEndpointTrapped = errors.New("endpoint has no reachable neighbor")

	// ErrMaxAttemptsExceeded reports that every retry attempt failed
	// verification.
	ErrMaxAttemptsExceeded = errors.New("exhausted maximum generation attempts")

	// ErrNoConfig reports a nil *Config passed to Generate.
	ErrNoConfig = errors.New("config must not be nil")
)
