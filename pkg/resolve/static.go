package resolve

import (
	"context"

	"github.com/arthur-debert/drawables/pkg/types"
)

// Static is a Resolver backed by fixed tables, for tests and dry runs
type Static struct {
	Locations map[string]types.Location
	Errors    map[string]error
	// Calls records every coordinate passed to Resolve, in order
	Calls []types.Coordinate
}

// NewStatic creates an empty Static resolver
func NewStatic() *Static {
	return &Static{
		Locations: make(map[string]types.Location),
		Errors:    make(map[string]error),
	}
}

// Add maps the coordinate with key group:artifact:version to loc
func (s *Static) Add(key string, loc types.Location) *Static {
	s.Locations[key] = loc
	return s
}

// Fail makes the coordinate with key fail with err
func (s *Static) Fail(key string, err error) *Static {
	s.Errors[key] = err
	return s
}

// Resolve returns the configured location or error; unknown coordinates
// are missing
func (s *Static) Resolve(_ context.Context, c types.Coordinate) (types.Location, error) {
	s.Calls = append(s.Calls, c)
	if err, ok := s.Errors[c.Key()]; ok {
		return types.Location{}, err
	}
	if loc, ok := s.Locations[c.Key()]; ok {
		return loc, nil
	}
	return types.Location{}, missing(c, "not registered")
}
