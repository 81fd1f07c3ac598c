// Package endpoint resolves endpoint declarations (placement, offset,
// dead-end flag) into concrete Rooms, carving the perimeter wall at each
// endpoint's opening side.
package endpoint
