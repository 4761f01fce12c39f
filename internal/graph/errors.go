package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for snapshot construction and queries.
// Typed errors below match these with errors.Is.
var (
	// ErrDanglingEdge is returned when an edge references a node absent from the snapshot.
	ErrDanglingEdge = errors.New("dangling edge")

	// ErrNodeNotFound is returned when a query names a node absent from the snapshot.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidArgument is returned for malformed query arguments such as k <= 0.
	ErrInvalidArgument = errors.New("invalid argument")
)

// DanglingEdgeError describes an edge whose endpoint is missing
type DanglingEdgeError struct {
	Index   int
	EdgeID  string
	Source  string
	Target  string
	Missing string
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("dangling edge %s (#%d) %s -> %s: node %q not in snapshot",
		e.EdgeID, e.Index, e.Source, e.Target, e.Missing)
}

func (e *DanglingEdgeError) Is(target error) bool { return target == ErrDanglingEdge }

// NodeNotFoundError names the id that could not be resolved
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node not found: %s", e.ID)
}

func (e *NodeNotFoundError) Is(target error) bool { return target == ErrNodeNotFound }

// InvalidArgumentError names the offending argument
type InvalidArgumentError struct {
	Name   string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

func (e *InvalidArgumentError) Is(target error) bool { return target == ErrInvalidArgument }
