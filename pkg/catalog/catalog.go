// Package catalog is the metadata registry for the legal acts the parser
// supports. It maps CELEX identifiers to regulation identity (name, family
// type, jurisdiction) and selects the actor-role vocabulary implied by a
// regulation's declared family.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coolbeans/lexgraph/pkg/classify"
)

// ErrUnknownRegulation is returned when a CELEX identifier is not present
// in the catalog. Callers must treat this as fatal before parsing begins.
var ErrUnknownRegulation = errors.New("unknown regulation")

// Family categorizes a regulation for downstream processing logic,
// in particular role-vocabulary selection.
type Family string

const (
	FamilyAIRegulation  Family = "ai_regulation"
	FamilyMedicalDevice Family = "medical_device_regulation"
)

// Regulation describes one supported legal act.
type Regulation struct {
	CELEX        string `yaml:"celex" json:"celex"`
	Name         string `yaml:"name" json:"name"`
	Type         Family `yaml:"type" json:"type"`
	Jurisdiction string `yaml:"jurisdiction" json:"jurisdiction"`
}

// RoleDetector returns the role detector for the regulation's family.
// An unrecognized family yields a detector that matches nothing, which is
// non-fatal: such documents simply carry no role tags.
func (r Regulation) RoleDetector() *classify.RoleDetector {
	switch r.Type {
	case FamilyAIRegulation:
		return classify.NewRoleDetector(classify.AIActRoles)
	case FamilyMedicalDevice:
		return classify.NewRoleDetector(classify.MedicalDeviceRoles)
	}
	return classify.NoRoles()
}

// Catalog holds the supported regulations keyed by CELEX identifier.
type Catalog struct {
	regulations map[string]Regulation
}

// Default returns the built-in catalog of supported EU regulations.
func Default() *Catalog {
	return New([]Regulation{
		{CELEX: "32017R0745", Name: "MDR 2017/745", Type: FamilyMedicalDevice, Jurisdiction: "EU"},
		{CELEX: "32024R1689", Name: "EU AI Act", Type: FamilyAIRegulation, Jurisdiction: "EU"},
	})
}

// New builds a catalog from a list of regulations.
func New(regulations []Regulation) *Catalog {
	c := &Catalog{regulations: make(map[string]Regulation, len(regulations))}
	for _, r := range regulations {
		c.regulations[r.CELEX] = r
	}
	return c
}

// catalogFile is the YAML shape of an external catalog.
type catalogFile struct {
	Regulations []Regulation `yaml:"regulations"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(cf.Regulations) == 0 {
		return nil, fmt.Errorf("catalog %s declares no regulations", path)
	}
	return New(cf.Regulations), nil
}

// Lookup resolves a CELEX identifier to its regulation metadata.
func (c *Catalog) Lookup(celex string) (Regulation, error) {
	r, ok := c.regulations[celex]
	if !ok {
		return Regulation{}, fmt.Errorf("%w: CELEX %s", ErrUnknownRegulation, celex)
	}
	return r, nil
}

// All returns every regulation in the catalog.
func (c *Catalog) All() []Regulation {
	out := make([]Regulation, 0, len(c.regulations))
	for _, r := range c.regulations {
		out = append(out, r)
	}
	return out
}
