// Package validate checks the structural and semantic invariants of an
// emitted provision graph before it is written or registered anywhere.
package validate

import (
	"fmt"

	"github.com/coolbeans/lexgraph/pkg/graph"
	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

// Issue is one invariant violation found in a document.
type Issue struct {
	Code        string `json:"code"`
	ProvisionID string `json:"provision_id,omitempty"`
	Message     string `json:"message"`
}

// Issue codes.
const (
	CodeDuplicateID        = "duplicate_id"
	CodeMissingParent      = "missing_parent"
	CodeMissingChildEdge   = "missing_child_edge"
	CodeDuplicateChildEdge = "duplicate_child_edge"
	CodeDepthMismatch      = "depth_mismatch"
	CodeRankInversion      = "rank_inversion"
	CodeRequirementFlag    = "requirement_flag_mismatch"
)

// Report aggregates the issues found in one document.
type Report struct {
	Provisions int     `json:"provisions"`
	Relations  int     `json:"relations"`
	Issues     []Issue `json:"issues"`
}

// OK reports whether the document passed every check.
func (r Report) OK() bool { return len(r.Issues) == 0 }

func (r *Report) add(code, id, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Code:        code,
		ProvisionID: id,
		Message:     fmt.Sprintf(format, args...),
	})
}

// Document validates one parsed document:
//   - provision ids are unique;
//   - every parent id resolves and is paired with exactly one HAS_CHILD edge;
//   - depth equals path length;
//   - level rank never decreases from parent to child, recitals excepted;
//   - definitions are never flagged as obligations, and requirement types
//     agree with the requirement flag.
func Document(doc *graph.Document) Report {
	report := Report{Provisions: len(doc.Provisions), Relations: len(doc.Relations)}

	byID := make(map[string]*graph.Provision, len(doc.Provisions))
	for _, p := range doc.Provisions {
		if _, dup := byID[p.ID]; dup {
			report.add(CodeDuplicateID, p.ID, "provision id emitted more than once")
			continue
		}
		byID[p.ID] = p
	}

	childEdges := make(map[[2]string]int)
	for _, rel := range doc.Relations {
		if rel.Type == graph.RelationHasChild {
			childEdges[[2]string{rel.Source, rel.Target}]++
		}
	}

	for _, p := range doc.Provisions {
		if p.Depth != len(p.Path) {
			report.add(CodeDepthMismatch, p.ID, "depth %d does not match path length %d", p.Depth, len(p.Path))
		}

		if p.ParentID == "" {
			continue
		}
		parent, ok := byID[p.ParentID]
		if !ok {
			report.add(CodeMissingParent, p.ID, "parent %s not present in output", p.ParentID)
			continue
		}
		switch n := childEdges[[2]string{p.ParentID, p.ID}]; {
		case n == 0:
			report.add(CodeMissingChildEdge, p.ID, "no HAS_CHILD edge from parent %s", p.ParentID)
		case n > 1:
			report.add(CodeDuplicateChildEdge, p.ID, "%d HAS_CHILD edges from parent %s", n, p.ParentID)
		}

		// Recitals are flat siblings, exempt from rank monotonicity.
		if p.Level != hierarchy.LevelRecital && parent.Level != hierarchy.LevelRecital {
			if hierarchy.Rank(p.Level) < hierarchy.Rank(parent.Level) {
				report.add(CodeRankInversion, p.ID,
					"level %s (rank %d) nested under %s (rank %d)",
					p.Level, hierarchy.Rank(p.Level), parent.Level, hierarchy.Rank(parent.Level))
			}
		}
	}

	for _, p := range doc.Provisions {
		switch {
		case p.RequirementType == "definition" && hasObligationModality(p):
			report.add(CodeRequirementFlag, p.ID, "definition carries an obligation")
		case p.IsRequirement && p.RequirementType == "other":
			report.add(CodeRequirementFlag, p.ID, "requirement flag set but type is other")
		}
	}

	return report
}

func hasObligationModality(p *graph.Provision) bool {
	for _, o := range p.Obligations {
		if o.Modality.IsObligation() {
			return true
		}
	}
	return false
}
