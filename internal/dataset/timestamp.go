package dataset

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// timestampLayouts are tried in order; zoneless forms are read as UTC
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a time that decodes from RFC3339 or a bare 2006-01-02 date,
// the same way in JSON and YAML documents
type Timestamp struct {
	time.Time
}

func parseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, errors.Errorf("invalid timestamp %q: want RFC3339 or YYYY-MM-DD", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "timestamp must be a string")
	}
	ts, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

func (t *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: timestamp must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*t = Timestamp{}
		return nil
	}
	ts, err := parseTimestamp(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*t = ts
	return nil
}
