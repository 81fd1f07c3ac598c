// Package carve implements the randomized depth-first path generator: it
// carves a spanning tree rooted at each non-dead-end endpoint, stubs dead
// ends inward, fills unvisited rooms with decorative islands, and joins
// separated components so every non-dead-end endpoint shares one component.
package carve
