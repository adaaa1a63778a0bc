package graph

import "errors"

var (
	// ErrNotFound is returned when a vertex referenced by a path trace is
	// missing from the store. It indicates an internal consistency defect and
	// must be reported rather than recovered from.
	ErrNotFound = errors.New("vertex not found")

	// ErrInvalidQuery is returned by ShortestPath when the source or
	// destination is not a known person.
	ErrInvalidQuery = errors.New("invalid path query")

	// ErrGraphFrozen is returned when mutating a graph after Freeze.
	ErrGraphFrozen = errors.New("graph is frozen and cannot be modified")

	// ErrEmptyID is returned when adding a vertex or edge with an empty id.
	ErrEmptyID = errors.New("vertex id is empty")
)
