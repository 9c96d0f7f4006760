package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entity is the raw JSON document for one stored entity. Writes persist the
// caller's bytes exactly; default-merge decoding happens on read only.
type Entity = json.RawMessage

// Envelope is the minimal shape every storable entity must satisfy. Entity
// ids are interpolated into field paths inside the aggregate, which is why
// the path separator is reserved.
type Envelope struct {
	Id      string `json:"Id"`
	Name    string `json:"Name"`
	Path    string `json:"Path"`
	Version string `json:"Version"`
}

// PathSeparator is the character that joins a collection name and an entity
// id into a field path inside the aggregate document.
const PathSeparator = "."

// ParseEnvelope extracts the envelope fields from a raw entity document.
func ParseEnvelope(raw Entity) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	return env, nil
}

// Validate checks the invariants required for an entity to be written:
// non-empty Id and Version, and no path separator in the Id.
func (e Envelope) Validate() error {
	if e.Id == "" || e.Version == "" {
		return fmt.Errorf("%w: missing Id or Version", ErrInvalidEntity)
	}
	if strings.Contains(e.Id, PathSeparator) {
		return fmt.Errorf("%w: Id %q contains reserved character %q", ErrInvalidEntity, e.Id, PathSeparator)
	}
	return nil
}
