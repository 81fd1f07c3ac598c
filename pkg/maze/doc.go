// Package maze orchestrates the layout, modifier, endpoint, carve, and
// verify stages into the top-level Generator, and carries the YAML
// Config the CLI collaborator loads.
package maze
