// Package store provides an in-memory index over emitted provision graphs.
// Parsed documents are registered into it for cross-document queries over
// relation edges; the builder itself never touches the index.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/coolbeans/lexgraph/pkg/graph"
)

// Stats summarizes the indexed graph.
type Stats struct {
	Documents    int                        `json:"documents"`
	Provisions   int                        `json:"provisions"`
	Relations    int                        `json:"relations"`
	ByType       map[graph.RelationType]int `json:"by_type"`
	DanglingRefs int                        `json:"dangling_references"`
}

// Index is a concurrency-safe relation index. Edges are stored under
// source->type->target and target->type->source so that both directions
// of a query are cheap. Registration is idempotent per edge.
type Index struct {
	mu sync.RWMutex

	provisions map[string]*graph.Provision

	// out: source -> type -> target -> exists
	out map[string]map[graph.RelationType]map[string]bool
	// in: target -> type -> source -> exists
	in map[string]map[graph.RelationType]map[string]bool

	documents  int
	count      int
	typeCounts map[graph.RelationType]int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		provisions: make(map[string]*graph.Provision),
		out:        make(map[string]map[graph.RelationType]map[string]bool),
		in:         make(map[string]map[graph.RelationType]map[string]bool),
		typeCounts: make(map[graph.RelationType]int),
	}
}

// Register adds a parsed document's provisions and relations.
func (ix *Index) Register(doc *graph.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for _, p := range doc.Provisions {
		ix.provisions[p.ID] = p
	}
	for _, rel := range doc.Relations {
		ix.addUnsafe(rel)
	}
	ix.documents++
	return nil
}

func (ix *Index) addUnsafe(rel graph.Relation) {
	if rel.Source == "" || rel.Target == "" || rel.Type == "" {
		return
	}
	if ix.out[rel.Source] == nil {
		ix.out[rel.Source] = make(map[graph.RelationType]map[string]bool)
	}
	if ix.out[rel.Source][rel.Type] == nil {
		ix.out[rel.Source][rel.Type] = make(map[string]bool)
	}
	if ix.out[rel.Source][rel.Type][rel.Target] {
		return
	}
	ix.out[rel.Source][rel.Type][rel.Target] = true

	if ix.in[rel.Target] == nil {
		ix.in[rel.Target] = make(map[graph.RelationType]map[string]bool)
	}
	if ix.in[rel.Target][rel.Type] == nil {
		ix.in[rel.Target][rel.Type] = make(map[string]bool)
	}
	ix.in[rel.Target][rel.Type][rel.Source] = true

	ix.typeCounts[rel.Type]++
	ix.count++
}

// Provision looks up a registered provision by id.
func (ix *Index) Provision(id string) (*graph.Provision, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.provisions[id]
	return p, ok
}

// Children returns the HAS_CHILD targets of a provision, sorted.
func (ix *Index) Children(id string) []string {
	return ix.targets(id, graph.RelationHasChild)
}

// References returns the symbolic reference targets of a provision, sorted.
func (ix *Index) References(id string) []string {
	return ix.targets(id, graph.RelationReferences)
}

// ReferencedBy returns the ids of provisions referencing a target token,
// sorted. Targets need not exist as provisions: unresolved references are
// valid and expected.
func (ix *Index) ReferencedBy(target string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return sortedKeys(ix.in[target][graph.RelationReferences])
}

func (ix *Index) targets(source string, t graph.RelationType) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return sortedKeys(ix.out[source][t])
}

// Stats reports index-wide counts, including how many reference targets
// resolve to no registered provision.
func (ix *Index) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	dangling := 0
	for target, byType := range ix.in {
		if len(byType[graph.RelationReferences]) == 0 {
			continue
		}
		if _, ok := ix.provisions[target]; !ok {
			dangling++
		}
	}

	byType := make(map[graph.RelationType]int, len(ix.typeCounts))
	for t, n := range ix.typeCounts {
		byType[t] = n
	}
	return Stats{
		Documents:    ix.documents,
		Provisions:   len(ix.provisions),
		Relations:    ix.count,
		ByType:       byType,
		DanglingRefs: dangling,
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
