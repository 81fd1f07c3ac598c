// Package rng provides deterministic random number generation for the maze
// generator.
//
// # Overview
//
// The RNG type ensures reproducible mazes by deriving stage-specific seeds
// from a master seed. This allows each pipeline stage (modifier placement,
// endpoint resolution, path carving) to have an independent random sequence
// while the overall generation stays deterministic for a given seed and
// configuration.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stage = H(masterSeed, stageName, configHash)
//
// where:
//   - masterSeed: the top-level seed for the entire generation run
//   - stageName: pipeline stage identifier (e.g. "modifier", "carve")
//   - configHash: hash of the resolved configuration
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different stages get independent random sequences (isolation)
//  3. Config changes result in different sequences (sensitivity)
//
// # Usage
//
// Create an RNG for each pipeline stage:
//
//	hash := cfg.Hash()
//	modifierRNG := rng.NewRNG(masterSeed, "modifier", hash)
//	carveRNG := rng.NewRNG(masterSeed, "carve", hash)
//
// Use the RNG for all random decisions in that stage:
//
//	idx := carveRNG.IntRange(0, len(edges)-1)
//	if carveRNG.Bool() {
//	    // branch the carve
//	}
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance. Create stage-specific RNGs before spawning goroutines and pass
// them explicitly.
package rng
