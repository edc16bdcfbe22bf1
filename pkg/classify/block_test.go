package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

func TestClassifyHeadings(t *testing.T) {
	tests := []struct {
		lang string
		text string
		want BlockType
	}{
		{"EN", "CHAPTER III HIGH-RISK AI SYSTEMS", BlockChapterTitle},
		{"EN", "SECTION 1 Classification rules", BlockSectionTitle},
		{"EN", "SECTION IV Notifying authorities", BlockSectionTitle},
		{"EN", "Article 5 Prohibited AI practices", BlockArticleTitle},
		{"EN", "ANNEX IV Technical documentation", BlockAnnexTitle},
		{"EN", "TITLE II General provisions", BlockTitle},
		{"EN", "The provider shall keep records.", BlockParagraph},
		{"DE", "KAPITEL II Verbotene Praktiken", BlockChapterTitle},
		{"DE", "Artikel 12 Aufzeichnungspflichten", BlockArticleTitle},
		{"DE", "ANHANG IV Technische Dokumentation", BlockAnnexTitle},
		{"FR", "CHAPITRE III Systèmes d'IA à haut risque", BlockChapterTitle},
		{"FR", "Article 9 Système de gestion des risques", BlockArticleTitle},
		{"FR", "ANNEXE IV Documentation technique", BlockAnnexTitle},
	}

	for _, tt := range tests {
		c := NewBlockClassifier(tt.lang)
		got, text, ok := c.Classify("p", tt.text)
		require.True(t, ok, "%s/%s", tt.lang, tt.text)
		assert.Equal(t, tt.want, got, "%s/%s", tt.lang, tt.text)
		assert.NotEmpty(t, text)
	}
}

func TestClassifyTableAndEmpty(t *testing.T) {
	c := NewBlockClassifier("EN")

	bt, _, ok := c.Classify("table", "Risk category Examples")
	require.True(t, ok)
	assert.Equal(t, BlockTable, bt)

	_, _, ok = c.Classify("p", "   ")
	assert.False(t, ok)
}

func TestHeadingMarkers(t *testing.T) {
	c := NewBlockClassifier("EN")

	h := c.Heading(BlockChapterTitle, "CHAPTER III HIGH-RISK AI SYSTEMS")
	assert.Equal(t, hierarchy.LevelChapter, h.Level)
	assert.Equal(t, "III", h.Marker)
	assert.Equal(t, "CHAPTER III HIGH-RISK AI SYSTEMS", h.Title)

	h = c.Heading(BlockSectionTitle, "SECTION 1 Classification")
	assert.Equal(t, hierarchy.LevelSection, h.Level)
	assert.Equal(t, "1", h.Marker)

	h = c.Heading(BlockAnnexTitle, "ANNEX IV Technical documentation")
	assert.Equal(t, hierarchy.LevelAnnex, h.Level)
	assert.Equal(t, "IV", h.Marker)
}

func TestArticleHeading(t *testing.T) {
	c := NewBlockClassifier("EN")

	h := c.Heading(BlockArticleTitle, "Article 5 Prohibited AI practices")
	assert.Equal(t, "5", h.Marker)
	assert.Equal(t, "Article 5", h.Title)
	assert.Equal(t, "Prohibited AI practices", h.Intro)

	// Malformed heading shape: whole text kept as title, first bare
	// number used as marker, no error.
	h = c.Heading(BlockArticleTitle, "Article concerning practice 17 and others")
	assert.Equal(t, "17", h.Marker)
	assert.Equal(t, "Article concerning practice 17 and others", h.Title)
	assert.Empty(t, h.Intro)
}

func TestDetectNumbering(t *testing.T) {
	tests := []struct {
		text   string
		level  hierarchy.Level
		marker string
		body   string
	}{
		{"1.2.3 Deep item text", hierarchy.LevelSubsection, "1.2.3", "Deep item text"},
		{"1.2 Nested item text", hierarchy.LevelSubsection, "1.2", "Nested item text"},
		{"1. The provider shall ensure compliance.", hierarchy.LevelSection, "1", "The provider shall ensure compliance."},
		{"(1) This Regulation applies to providers.", hierarchy.LevelParagraph, "1", "This Regulation applies to providers."},
		{"(a) registration records", hierarchy.LevelPoint, "a", "registration records"},
		{"(x) some lettered item", hierarchy.LevelPoint, "x", "some lettered item"},
		{"No numbering at all here", hierarchy.LevelNone, "", "No numbering at all here"},
	}

	for _, tt := range tests {
		level, marker, body := DetectNumbering(tt.text)
		assert.Equal(t, tt.level, level, tt.text)
		assert.Equal(t, tt.marker, marker, tt.text)
		assert.Equal(t, tt.body, body, tt.text)
	}
}

func TestDetectNumberingPriority(t *testing.T) {
	// Dotted forms outrank the bare "N." form.
	level, marker, _ := DetectNumbering("2.1 Subordinate requirement")
	assert.Equal(t, hierarchy.LevelSubsection, level)
	assert.Equal(t, "2.1", marker)
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Article 5", NormalizeText("  Article \n\t 5  "))
	assert.Equal(t, "", NormalizeText(""))
}
