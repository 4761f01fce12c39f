// Package dataset loads stakeholder networks from files or SQLite and builds
// validated graph snapshots from them.
package dataset

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"capitol/constellation/internal/graph"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// validate Timestamp fields as the time.Time they wrap
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if ts, ok := field.Interface().(Timestamp); ok {
			return ts.Time
		}
		return nil
	}, Timestamp{})
	return v
}

// Document is the on-disk shape of a network
type Document struct {
	Nodes []NodeRecord `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges []EdgeRecord `json:"edges" yaml:"edges" validate:"dive"`
}

type NodeRecord struct {
	ID             string         `json:"id" yaml:"id" validate:"required"`
	Type           string         `json:"type" yaml:"type" validate:"required,oneof=bill legislator client committee issue stakeholder staff"`
	Label          string         `json:"label" yaml:"label" validate:"required"`
	InfluenceScore float64        `json:"influenceScore" yaml:"influenceScore" validate:"gte=0,lte=10"`
	LastUpdated    Timestamp      `json:"lastUpdated" yaml:"lastUpdated"`
	Metadata       map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type EdgeRecord struct {
	ID                 string              `json:"id,omitempty" yaml:"id,omitempty"`
	Source             string              `json:"source" yaml:"source" validate:"required"`
	Target             string              `json:"target" yaml:"target" validate:"required"`
	Type               string              `json:"type" yaml:"type" validate:"required"`
	Weight             int                 `json:"weight" yaml:"weight" validate:"gte=1,lte=10"`
	Sentiment          string              `json:"sentiment,omitempty" yaml:"sentiment,omitempty" validate:"omitempty,oneof=positive negative neutral"`
	InteractionHistory []InteractionRecord `json:"interactionHistory,omitempty" yaml:"interactionHistory,omitempty" validate:"dive"`
}

type InteractionRecord struct {
	Type  string    `json:"type" yaml:"type" validate:"required"`
	Date  Timestamp `json:"date" yaml:"date" validate:"required"`
	Notes string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// DanglingPolicy decides what Build does with edges whose endpoints are missing
type DanglingPolicy int

const (
	// DanglingAbort fails the build on the first dangling edge
	DanglingAbort DanglingPolicy = iota
	// DanglingDrop skips dangling edges and reports them
	DanglingDrop
)

func (p DanglingPolicy) String() string {
	if p == DanglingDrop {
		return "drop"
	}
	return "abort"
}

// Validate checks every record against its field constraints and rejects
// duplicate node or edge ids
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return errors.Wrap(err, "invalid network document")
	}
	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if seen[n.ID] {
			err := &graph.InvalidArgumentError{Name: "nodes", Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
			return errors.Wrap(err, "invalid network document")
		}
		seen[n.ID] = true
	}
	if _, err := d.edgeIDs(); err != nil {
		return errors.Wrap(err, "invalid network document")
	}
	return nil
}

// edgeIDs returns the id every edge is stored and queried under
func (d *Document) edgeIDs() ([]string, error) {
	ids := make([]string, len(d.Edges))
	for i, e := range d.Edges {
		ids[i] = e.ID
	}
	return graph.AssignEdgeIDs(ids)
}

// Build validates doc and constructs a snapshot.
// Under DanglingDrop the skipped edges are logged and returned; under DanglingAbort the
// first one fails the build with an error matching graph.ErrDanglingEdge.
func Build(doc *Document, policy DanglingPolicy) (*graph.Snapshot, []*graph.DanglingEdgeError, error) {
	if err := doc.Validate(); err != nil {
		return nil, nil, err
	}

	nodes := make([]graph.Node, 0, len(doc.Nodes))
	for _, r := range doc.Nodes {
		nt := graph.NodeType(r.Type)
		details, err := graph.DetailsFromMetadata(nt, metadataStrings(r.Metadata))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "node %s", r.ID)
		}
		nodes = append(nodes, graph.Node{
			ID:             r.ID,
			Type:           nt,
			Label:          r.Label,
			InfluenceScore: r.InfluenceScore,
			LastUpdated:    r.LastUpdated.Time,
			Details:        details,
		})
	}

	edges := make([]graph.Edge, 0, len(doc.Edges))
	for _, r := range doc.Edges {
		edges = append(edges, toEdge(r))
	}

	var dropped []*graph.DanglingEdgeError
	if policy == DanglingDrop {
		edges, dropped = graph.SplitDangling(nodes, edges)
		for _, d := range dropped {
			slog.Warn("dropping dangling edge",
				"edge", d.EdgeID, "source", d.Source, "target", d.Target, "missing", d.Missing)
		}
	}

	snap, err := graph.NewSnapshot(nodes, edges)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building snapshot")
	}
	return snap, dropped, nil
}

// metadataStrings flattens metadata values to their printed form; nulls are dropped
func metadataStrings(md map[string]any) map[string]string {
	out := make(map[string]string, len(md))
	for k, v := range md {
		if v == nil {
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func toEdge(r EdgeRecord) graph.Edge {
	sentiment := graph.Sentiment(r.Sentiment)
	if sentiment == "" {
		sentiment = graph.SentimentNeutral
	}
	history := make([]graph.Interaction, 0, len(r.InteractionHistory))
	for _, in := range r.InteractionHistory {
		history = append(history, graph.Interaction{Type: in.Type, Date: in.Date.Time, Notes: in.Notes})
	}
	sort.SliceStable(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

	return graph.Edge{
		ID:                 r.ID,
		Source:             r.Source,
		Target:             r.Target,
		Type:               r.Type,
		Weight:             r.Weight,
		Sentiment:          sentiment,
		InteractionHistory: history,
	}
}
