package types

// Location is where a resolver found an artifact: either a single archive
// file or a directory holding a res/drawable-<bucket> layout.
type Location struct {
	Path  string
	IsDir bool
}
