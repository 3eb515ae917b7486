// Package filesystem provides filesystem implementations for drawables.
//
// This package contains implementations of the types.FS interface (the
// standard OS filesystem and an afero-backed one used by tests) and the
// copy helpers every goal writes its outputs through.
package filesystem
