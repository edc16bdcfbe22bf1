package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lexgraph/pkg/classify"
	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

func TestProvisionID(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	tests := []struct {
		name     string
		parentID string
		level    hierarchy.Level
		marker   string
		want     string
	}{
		{"root with marker", "", hierarchy.LevelArticle, "5", "32024R1689_EN_article_5"},
		{"child extends parent", "32024R1689_EN_article_5", hierarchy.LevelParagraph, "1", "32024R1689_EN_article_5_paragraph_1"},
		{"missing marker", "32024R1689_EN_article_5", hierarchy.LevelParagraph, "", "32024R1689_EN_article_5_paragraph_UNNUMBERED"},
		{"marker spaces replaced", "", hierarchy.LevelRecital, "PREAMBLE 3", "32024R1689_EN_recital_PREAMBLE_3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProvisionID(cfg, tt.parentID, tt.level, tt.marker, cfg.Lang))
		})
	}
}

func TestAssembleProvisionSemantics(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	p := AssembleProvision(cfg, nil, RecordInput{
		Level:  hierarchy.LevelParagraph,
		Marker: "1",
		Text:   "The provider shall register the system referred to in Article 49.",
	})

	assert.True(t, p.IsRequirement)
	assert.Equal(t, classify.RequirementObligation, p.RequirementType)
	assert.Contains(t, p.Roles, "provider")
	assert.Equal(t, []string{"Article_49"}, p.References)
	assert.Contains(t, p.CanonicalTags, "requirement:yes")
	assert.Contains(t, p.CanonicalTags, "requirement_type:obligation")
	assert.Contains(t, p.CanonicalTags, "celex:32024R1689")

	require.Len(t, p.Obligations, 1)
	assert.Equal(t, classify.RequirementObligation, p.Obligations[0].Modality)
	assert.Equal(t, p.Roles, p.Obligations[0].Actors)
}

func TestAssembleProvisionExcludedLevelSkipsClassification(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	// The text would classify as an obligation, but container levels
	// never run requirement, role or reference analysis.
	p := AssembleProvision(cfg, nil, RecordInput{
		Level:  hierarchy.LevelArticle,
		Marker: "16",
		Title:  "Article 16",
		Text:   "Providers shall ensure conformity with Article 9.",
	})

	assert.False(t, p.IsRequirement)
	assert.Equal(t, classify.RequirementOther, p.RequirementType)
	assert.Empty(t, p.Roles)
	assert.Empty(t, p.References)
	assert.Empty(t, p.Obligations)
}

func TestAssembleProvisionDefinitionIsNotObligation(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	p := AssembleProvision(cfg, nil, RecordInput{
		Level:  hierarchy.LevelParagraph,
		Marker: "1",
		Text:   "'AI system' means a machine-based system designed to operate with varying levels of autonomy.",
	})

	assert.True(t, p.IsRequirement)
	assert.Equal(t, classify.RequirementDefinition, p.RequirementType)
	for _, o := range p.Obligations {
		assert.False(t, o.Modality.IsObligation())
	}
}

func TestAssembleProvisionSnippet(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	long := strings.Repeat("The provider shall keep records. ", 20)
	p := AssembleProvision(cfg, nil, RecordInput{
		Level:  hierarchy.LevelParagraph,
		Marker: "1",
		Text:   long,
	})

	assert.True(t, strings.HasSuffix(p.Snippet, "..."))
	assert.Equal(t, 240, p.SnippetOffsets.End)

	short := "Short text."
	p = AssembleProvision(cfg, nil, RecordInput{Level: hierarchy.LevelParagraph, Marker: "2", Text: short})
	assert.Equal(t, short, p.Snippet)
	assert.Equal(t, len([]rune(short)), p.SnippetOffsets.End)
}

func TestAssembleProvisionContext(t *testing.T) {
	cfg := aiActConfig().withDefaults()

	chapter := AssembleProvision(cfg, nil, RecordInput{
		Level: hierarchy.LevelChapter, Marker: "III", Title: "CHAPTER III HIGH-RISK AI SYSTEMS", Text: "CHAPTER III HIGH-RISK AI SYSTEMS",
	})
	article := AssembleProvision(cfg, []*Provision{chapter}, RecordInput{
		Level: hierarchy.LevelArticle, Marker: "9", Title: "Article 9", Text: "Article 9", ParentID: chapter.ID,
	})
	paragraph := AssembleProvision(cfg, []*Provision{chapter, article}, RecordInput{
		Level: hierarchy.LevelParagraph, Marker: "1", Text: "A risk management system shall be established.", ParentID: article.ID,
	})

	assert.Equal(t, "CHAPTER III HIGH-RISK AI SYSTEMS", paragraph.Metadata["chapter"])
	assert.Equal(t, "Article 9", paragraph.Metadata["article"])
	assert.Equal(t, chapter.ID, paragraph.Metadata["root_id"])
	assert.Equal(t, "32024R1689", paragraph.Metadata["celex_id"])
}

func TestDocumentEnvelope(t *testing.T) {
	b := feed(t, aiActConfig(), []string{
		"Article 5",
		"1. The provider shall ensure compliance.",
	})

	doc := b.Document()
	assert.Equal(t, GraphVersion, doc.GraphVersion)
	assert.Equal(t, "32024R1689", doc.CELEXID)
	assert.Equal(t, "EU AI Act", doc.RegulationID)
	assert.NotEmpty(t, doc.RunID)
	assert.False(t, doc.GeneratedAt.IsZero())
	require.Len(t, doc.Provisions, 2)

	data, err := doc.MarshalIndent()
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.CELEXID, decoded.CELEXID)
	require.Len(t, decoded.Provisions, 2)
	assert.Equal(t, doc.Provisions[1].ID, decoded.Provisions[1].ID)

	assert.Nil(t, doc.Provision("no_such_id"))
	assert.Equal(t, doc.Provisions[0], doc.Provision(doc.Provisions[0].ID))
}

func TestProvenanceStamp(t *testing.T) {
	raw := "<p>Article 5</p><p>1. The provider shall ensure compliance.</p>"
	b := NewBuilder(aiActConfig())
	b.SetSource(raw, "testdata/act.html")
	b.Feed(Block{Hint: "p", Text: "Article 5"})

	provisions := b.Provisions()
	require.Len(t, provisions, 1)

	prov := provisions[0].Provenance
	assert.Equal(t, "lexgraph.builder", prov.Parser)
	assert.Equal(t, "testdata/act.html", prov.SourcePath)
	assert.Len(t, prov.RawHash, 64)
	assert.Equal(t, strings.Index(raw, "Article 5"), prov.Start)
	assert.Equal(t, prov.Start+len("Article 5"), prov.End)

	// Unlocatable text keeps offsets at -1.
	b2 := NewBuilder(aiActConfig())
	b2.SetSource("unrelated", "x.html")
	b2.Feed(Block{Hint: "p", Text: "Article 7"})
	assert.Equal(t, -1, b2.Provisions()[0].Provenance.Start)
}
