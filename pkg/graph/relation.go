package graph

// RelationType is the type tag on a relation edge.
type RelationType string

const (
	// RelationHasChild mirrors parent/child node creation order.
	RelationHasChild RelationType = "HAS_CHILD"
	// RelationReferences is a symbolic edge to a reference token; its
	// target may not exist in the emitting document's tree.
	RelationReferences RelationType = "REFERENCES"
)

// Relation is a typed edge between a provision and another provision or a
// symbolic reference target.
type Relation struct {
	Source string       `json:"source"`
	Type   RelationType `json:"type"`
	Target string       `json:"target"`
}
