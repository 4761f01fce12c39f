package server

import "capitol/constellation/internal/graph"

// ServiceVersion is reported by the health endpoint
const ServiceVersion = "0.1.0"

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
}

type PathsResponse struct {
	From  string             `json:"from"`
	To    string             `json:"to"`
	K     int                `json:"k"`
	Paths []graph.PathResult `json:"paths"`
}

type ConnectionsResponse struct {
	Node        graph.Node   `json:"node"`
	Connections []graph.Edge `json:"connections"`
}

// Error codes
const (
	CodeNodeNotFound    = "NODE_NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeInternal        = "INTERNAL"
)
