package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lexgraph/pkg/classify"
	"github.com/coolbeans/lexgraph/pkg/graph"
	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

func codes(r Report) []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Code)
	}
	return out
}

func cleanDocument() *graph.Document {
	return &graph.Document{
		Provisions: []*graph.Provision{
			{
				ID: "a5", Level: hierarchy.LevelArticle,
				Path: []string{"ARTICLE_5"}, Depth: 1,
			},
			{
				ID: "a5_p1", ParentID: "a5", Level: hierarchy.LevelParagraph,
				Path: []string{"ARTICLE_5", "PARAGRAPH_1"}, Depth: 2,
			},
		},
		Relations: []graph.Relation{
			{Source: "a5", Type: graph.RelationHasChild, Target: "a5_p1"},
		},
	}
}

func TestCleanDocumentPasses(t *testing.T) {
	report := Document(cleanDocument())
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Provisions)
	assert.Equal(t, 1, report.Relations)
}

func TestDuplicateID(t *testing.T) {
	doc := cleanDocument()
	doc.Provisions = append(doc.Provisions, &graph.Provision{
		ID: "a5", Level: hierarchy.LevelArticle, Path: []string{"ARTICLE_5"}, Depth: 1,
	})
	assert.Contains(t, codes(Document(doc)), CodeDuplicateID)
}

func TestMissingParent(t *testing.T) {
	doc := cleanDocument()
	doc.Provisions[1].ParentID = "ghost"
	assert.Contains(t, codes(Document(doc)), CodeMissingParent)
}

func TestMissingChildEdge(t *testing.T) {
	doc := cleanDocument()
	doc.Relations = nil
	assert.Contains(t, codes(Document(doc)), CodeMissingChildEdge)
}

func TestDuplicateChildEdge(t *testing.T) {
	doc := cleanDocument()
	doc.Relations = append(doc.Relations, doc.Relations[0])
	assert.Contains(t, codes(Document(doc)), CodeDuplicateChildEdge)
}

func TestDepthMismatch(t *testing.T) {
	doc := cleanDocument()
	doc.Provisions[1].Depth = 7
	assert.Contains(t, codes(Document(doc)), CodeDepthMismatch)
}

func TestRankInversion(t *testing.T) {
	doc := cleanDocument()
	// A chapter nested under an article inverts the hierarchy.
	doc.Provisions[1].Level = hierarchy.LevelChapter
	assert.Contains(t, codes(Document(doc)), CodeRankInversion)
}

func TestRecitalExemptFromRank(t *testing.T) {
	doc := &graph.Document{
		Provisions: []*graph.Provision{
			{ID: "r1", Level: hierarchy.LevelRecital, Path: []string{"RECITAL_1"}, Depth: 1},
			{
				ID: "r1_x", ParentID: "r1", Level: hierarchy.LevelTitle,
				Path: []string{"RECITAL_1", "TITLE"}, Depth: 2,
			},
		},
		Relations: []graph.Relation{
			{Source: "r1", Type: graph.RelationHasChild, Target: "r1_x"},
		},
	}
	report := Document(doc)
	assert.NotContains(t, codes(report), CodeRankInversion)
}

func TestDefinitionWithObligationFlagged(t *testing.T) {
	doc := cleanDocument()
	doc.Provisions[1].RequirementType = classify.RequirementDefinition
	doc.Provisions[1].Obligations = []graph.Obligation{
		{Modality: classify.RequirementObligation},
	}
	assert.Contains(t, codes(Document(doc)), CodeRequirementFlag)
}

func TestRequirementFlagWithoutType(t *testing.T) {
	doc := cleanDocument()
	doc.Provisions[1].IsRequirement = true
	doc.Provisions[1].RequirementType = classify.RequirementOther
	assert.Contains(t, codes(Document(doc)), CodeRequirementFlag)
}

func TestBuilderOutputValidates(t *testing.T) {
	b := graph.NewBuilder(graph.Config{
		CELEX:        "32024R1689",
		SourceName:   "EU_AI_ACT_2024",
		RegulationID: "EU AI Act",
	})
	b.FeedAll([]graph.Block{
		{Hint: "p", Text: "(1) A recital on trustworthy AI."},
		{Hint: "p", Text: "CHAPTER I GENERAL PROVISIONS"},
		{Hint: "p", Text: "Article 1 Subject matter"},
		{Hint: "p", Text: "1. The provider shall comply with Article 16."},
		{Hint: "p", Text: "(a) by keeping technical documentation;"},
		{Hint: "p", Text: "ANNEX IV Technical documentation"},
	})

	report := Document(b.Document())
	require.True(t, report.OK(), "unexpected issues: %v", report.Issues)
	assert.Equal(t, 6, report.Provisions)
}
