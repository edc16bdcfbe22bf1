package graph

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GraphVersion is the version of the emitted document shape.
const GraphVersion = "0.1"

// Document is the serializable output envelope for one parsed act: the
// provision list and the relation list, with document identity and
// generation metadata. This JSON is the sole integration surface for
// downstream consumers.
type Document struct {
	GraphVersion string       `json:"graph_version"`
	CELEXID      string       `json:"celex_id"`
	RegulationID string       `json:"regulation_id"`
	SourceName   string       `json:"source_name"`
	GeneratedAt  time.Time    `json:"generated_at"`
	RunID        string       `json:"run_id,omitempty"`
	Provisions   []*Provision `json:"provisions"`
	Relations    []Relation   `json:"relations"`
}

// Document seals the build and wraps its output in the envelope. The
// provision and relation lists are deterministic for identical input;
// only the timestamp and run id vary between runs.
func (b *Builder) Document() *Document {
	provisions := b.provisions
	if provisions == nil {
		provisions = []*Provision{}
	}
	relations := b.relations
	if relations == nil {
		relations = []Relation{}
	}
	return &Document{
		GraphVersion: GraphVersion,
		CELEXID:      b.cfg.CELEX,
		RegulationID: b.cfg.RegulationID,
		SourceName:   b.cfg.SourceName,
		GeneratedAt:  time.Now().UTC(),
		RunID:        uuid.NewString(),
		Provisions:   provisions,
		Relations:    relations,
	}
}

// MarshalIndent renders the document as indented JSON, the shape written
// to parsed.json.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Provision returns the provision with the given id, or nil.
func (d *Document) Provision(id string) *Provision {
	for _, p := range d.Provisions {
		if p.ID == id {
			return p
		}
	}
	return nil
}
