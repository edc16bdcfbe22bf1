// Package classify provides the lexical classifiers used to turn raw text
// blocks of an EU legal act into structural and semantic annotations:
// block-type detection, numbering detection, requirement classification,
// actor-role detection and cross-reference extraction.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

// BlockType is the structural guess for one raw text block.
type BlockType string

const (
	BlockTitle        BlockType = "title"
	BlockChapterTitle BlockType = "chapter_title"
	BlockSectionTitle BlockType = "section_title"
	BlockArticleTitle BlockType = "article_title"
	BlockAnnexTitle   BlockType = "annex_title"
	BlockTable        BlockType = "table"
	BlockParagraph    BlockType = "paragraph"
)

// Heading is the parsed form of a heading block: its structural level, the
// numbering marker, the retained title text and any trailing short title
// carried on the same line.
type Heading struct {
	Level  hierarchy.Level
	Marker string
	Title  string
	Intro  string
}

// BlockClassifier classifies raw text blocks for one language. All patterns
// are compiled once at construction.
type BlockClassifier struct {
	lang string
	kw   Keywords

	titleRe   *regexp.Regexp
	chapterRe *regexp.Regexp
	sectionRe *regexp.Regexp
	articleRe *regexp.Regexp
	annexRe   *regexp.Regexp

	titleMarkerRe   *regexp.Regexp
	chapterMarkerRe *regexp.Regexp
	sectionMarkerRe *regexp.Regexp
	articleHeadRe   *regexp.Regexp
	annexMarkerRe   *regexp.Regexp

	romanRe        *regexp.Regexp
	romanOrDigitRe *regexp.Regexp
	digitRe        *regexp.Regexp
}

// NewBlockClassifier builds a classifier for a language code. Unsupported
// languages fall back to the English keyword set.
func NewBlockClassifier(lang string) *BlockClassifier {
	lang = strings.ToUpper(lang)
	kw := KeywordsFor(lang)

	// Headings allow an optional separator between keyword and numeral,
	// e.g. "CHAPTER III", "Article 5", "ANNEX: IV".
	sep := `\s*[:\-.–—]?\s*`

	return &BlockClassifier{
		lang: lang,
		kw:   kw,

		titleRe:   regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Title) + `\s+[IVXLCDM]+\b`),
		chapterRe: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Chapter) + `\s+[IVXLCDM]+\b`),
		sectionRe: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Section) + `\s+([IVXLCDM]+|\d+)\b`),
		articleRe: regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Article) + `\s+\d+`),
		annexRe:   regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Annex) + `\s+[IVXLCDM]+\b`),

		titleMarkerRe:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Title) + sep + `([IVXLCDM]+)\b`),
		chapterMarkerRe: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Chapter) + sep + `([IVXLCDM]+)\b`),
		sectionMarkerRe: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Section) + sep + `([IVXLCDM]+|\d+)\b`),
		articleHeadRe:   regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(kw.Article) + sep + `(\d+)\b\s*(.*)$`),
		annexMarkerRe:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Annex) + sep + `([IVXLCDM]+)\b`),

		romanRe:        regexp.MustCompile(`(?i)\b([IVXLCDM]+)\b`),
		romanOrDigitRe: regexp.MustCompile(`(?i)\b([IVXLCDM]+|\d+)\b`),
		digitRe:        regexp.MustCompile(`\b(\d+)\b`),
	}
}

// Lang returns the language code the classifier was built for.
func (c *BlockClassifier) Lang() string { return c.lang }

// Classify maps a raw block to a block type and its normalized display
// text. The markup hint distinguishes tables from running text; everything
// that matches no heading keyword is a plain paragraph. Empty blocks
// return ok == false.
func (c *BlockClassifier) Classify(hint, text string) (BlockType, string, bool) {
	text = NormalizeText(text)
	if text == "" {
		return "", "", false
	}

	switch {
	case c.annexRe.MatchString(text):
		return BlockAnnexTitle, text, true
	case c.titleRe.MatchString(text):
		return BlockTitle, text, true
	case c.chapterRe.MatchString(text):
		return BlockChapterTitle, text, true
	case c.sectionRe.MatchString(text):
		return BlockSectionTitle, text, true
	case c.articleRe.MatchString(text):
		return BlockArticleTitle, text, true
	}

	if hint == "table" {
		return BlockTable, text, true
	}
	return BlockParagraph, text, true
}

// Heading parses a heading block into level, marker and title. Marker
// extraction is lenient: when the expected "<keyword> <number>" shape is
// absent the whole text is kept as the title and the first bare numeral
// found anywhere in it is used as the marker. Heading parsing never fails.
func (c *BlockClassifier) Heading(bt BlockType, text string) Heading {
	switch bt {
	case BlockTitle:
		return c.romanHeading(hierarchy.LevelTitle, text, c.titleMarkerRe, c.romanRe, "TITLE")
	case BlockChapterTitle:
		return c.romanHeading(hierarchy.LevelChapter, text, c.chapterMarkerRe, c.romanRe, "CHAPTER")
	case BlockSectionTitle:
		return c.romanHeading(hierarchy.LevelSection, text, c.sectionMarkerRe, c.romanOrDigitRe, "SECTION")
	case BlockAnnexTitle:
		return c.romanHeading(hierarchy.LevelAnnex, text, c.annexMarkerRe, c.romanRe, c.kw.Annex)
	case BlockArticleTitle:
		return c.articleHeading(text)
	}
	return Heading{Level: hierarchy.LevelNone}
}

func (c *BlockClassifier) romanHeading(level hierarchy.Level, text string, markerRe, fallbackRe *regexp.Regexp, fallback string) Heading {
	h := Heading{Level: level, Title: text, Marker: fallback}
	if m := markerRe.FindStringSubmatch(text); m != nil {
		h.Marker = m[1]
	} else if m := fallbackRe.FindStringSubmatch(text); m != nil {
		h.Marker = m[1]
	}
	return h
}

// articleHeading splits "Article N <short title>" into marker, canonical
// title and the short title, which the builder carries as intro text.
func (c *BlockClassifier) articleHeading(text string) Heading {
	h := Heading{Level: hierarchy.LevelArticle}
	if m := c.articleHeadRe.FindStringSubmatch(text); m != nil {
		h.Marker = m[1]
		h.Title = fmt.Sprintf("%s %s", c.kw.Article, m[1])
		h.Intro = strings.TrimSpace(m[2])
		return h
	}
	h.Title = text
	h.Marker = "ARTICLE"
	if m := c.digitRe.FindStringSubmatch(text); m != nil {
		h.Marker = m[1]
	}
	return h
}

// numberingPattern pairs a compiled numbering regex with the level it
// implies. Patterns are tried in order; the first match wins, so the more
// specific dotted forms precede the plain "N." form.
type numberingPattern struct {
	re    *regexp.Regexp
	level hierarchy.Level
}

var numberingPatterns = []numberingPattern{
	{regexp.MustCompile(`^(\d+\.\d+\.\d+)\s+(.+)`), hierarchy.LevelSubsection},
	{regexp.MustCompile(`^(\d+\.\d+)\s+(.+)`), hierarchy.LevelSubsection},
	{regexp.MustCompile(`^(\d+)\.\s+(.+)`), hierarchy.LevelSection},
	{regexp.MustCompile(`^\((\d+)\)\s*(.+)`), hierarchy.LevelParagraph},
	{regexp.MustCompile(`(?i)^\(([a-z])\)\s*(.+)`), hierarchy.LevelPoint},
	{regexp.MustCompile(`(?i)^\(([ivxlcdm]+)\)\s*(.+)`), hierarchy.LevelSubpoint},
}

// DetectNumbering inspects text for a numbering prefix and returns the
// implied level, the marker and the remaining body. Level is LevelNone and
// the body is the full text when no pattern matches; such a block opens no
// node and is absorbed by the currently open one.
func DetectNumbering(text string) (hierarchy.Level, string, string) {
	for _, p := range numberingPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return p.level, m[1], m[2]
		}
	}
	return hierarchy.LevelNone, "", text
}
