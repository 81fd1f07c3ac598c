// Package verify checks a carved grid against the maze invariants and
// carries the StatusSink push-callback interface the generator uses to
// report progress at phase boundaries.
package verify
