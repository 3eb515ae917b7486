// Package unpack implements the unpack goal: bitmap resources bundled in
// dependency artifacts are extracted into an output tree.
//
// Every coordinate is resolved before anything is extracted, so a missing
// dependency fails the goal with the output untouched. Archive entries keep
// their archive-relative path; a dependency that resolves to a directory
// contributes its res/drawable-<bucket> files instead.
package unpack
