// Package types defines the values shared by the drawables goals: densities,
// artifact coordinates and locations, goal results, and the filesystem
// interface every goal reads and writes through.
package types
