package graph

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/coolbeans/lexgraph/pkg/classify"
	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

// Block is one raw text block in document order, as supplied by a source
// extractor: a superficial markup hint ("p", "table", "h2", ...) and the
// block's text.
type Block struct {
	Hint string
	Text string
}

// whereasRe recognizes recital lead-ins outside the detected preamble
// region. The lexical cue takes precedence over stack-depth heuristics.
var whereasRe = regexp.MustCompile(`(?i)^(Whereas|Considérant|Erwägungsgrund)`)

var allDigitsRe = regexp.MustCompile(`^\d+$`)

// Builder is the hierarchy stack machine. It consumes classified blocks in
// document order, maintains the ancestor stack, derives canonical ids and
// paths, and assembles provision records with their semantic metadata.
//
// A Builder processes exactly one document and must not be shared across
// documents or goroutines: node identity and stack state are sequential.
type Builder struct {
	cfg        Config
	classifier *classify.BlockClassifier
	stamp      *stamper

	provisions []*Provision
	relations  []Relation
	index      map[string]*Provision

	stack          []*Provision
	recitalCounter int
	inPreamble     bool
}

// NewBuilder creates a stack machine for one document.
func NewBuilder(cfg Config) *Builder {
	cfg = cfg.withDefaults()
	return &Builder{
		cfg:        cfg,
		classifier: classify.NewBlockClassifier(cfg.Lang),
		stamp:      newStamper("", "", cfg.ParserName, cfg.ParserVersion),
		index:      make(map[string]*Provision),
		inPreamble: true,
	}
}

// SetSource attaches the raw source document for provenance stamping.
// The content hash is computed once, here.
func (b *Builder) SetSource(raw, sourcePath string) {
	b.stamp = newStamper(raw, sourcePath, b.cfg.ParserName, b.cfg.ParserVersion)
}

// Provisions returns the emitted provisions in creation order.
func (b *Builder) Provisions() []*Provision { return b.provisions }

// Relations returns the emitted relation edges in creation order.
func (b *Builder) Relations() []Relation { return b.relations }

// FeedAll processes a block sequence in order.
func (b *Builder) FeedAll(blocks []Block) {
	for _, blk := range blocks {
		b.Feed(blk)
	}
}

// Feed processes one block: classify, disambiguate, pop by rank, derive
// identity, classify semantics, assemble and push. Blocks that open no
// node are absorbed into the open stack top and create nothing.
func (b *Builder) Feed(block Block) {
	blockType, text, ok := b.classifier.Classify(block.Hint, block.Text)
	if !ok {
		return
	}

	level := hierarchy.LevelNone
	marker := ""
	title := ""
	intro := ""
	body := text

	switch blockType {
	case classify.BlockTitle, classify.BlockChapterTitle, classify.BlockSectionTitle,
		classify.BlockArticleTitle, classify.BlockAnnexTitle:
		h := b.classifier.Heading(blockType, text)
		level, marker, title, intro = h.Level, h.Marker, h.Title, h.Intro
	}

	// Any structural heading ends the preamble.
	switch level {
	case hierarchy.LevelTitle, hierarchy.LevelChapter, hierarchy.LevelSection,
		hierarchy.LevelArticle, hierarchy.LevelAnnex:
		b.inPreamble = false
	}

	if level == hierarchy.LevelNone {
		numberedLevel, numberedMarker, bodyCandidate := classify.DetectNumbering(text)
		if bodyCandidate != "" {
			body = bodyCandidate
		}
		level = b.cfg.Normalization.Apply(numberedLevel)
		if marker == "" {
			marker = numberedMarker
		}
	}

	// While still in the preamble, an unlabeled numbered paragraph at
	// structural depth 0 is a recital. Flat entries do not count toward
	// depth: an open recital never shields the next one from
	// reinterpretation.
	if level == hierarchy.LevelParagraph && b.inPreamble && !b.hasOpenStructure() {
		level = hierarchy.LevelRecital
		marker = b.recitalMarker(marker)
		if title == "" {
			title = text
		}
	}

	if level == hierarchy.LevelNone && whereasRe.MatchString(text) {
		level = hierarchy.LevelRecital
		if m := allDigitsRe.FindString(firstNumber(text)); m != "" {
			marker = m
			n, _ := strconv.Atoi(m)
			if n > b.recitalCounter {
				b.recitalCounter = n
			}
		} else {
			b.recitalCounter++
			if marker == "" {
				marker = fmt.Sprintf("PREAMBLE_%d", b.recitalCounter)
			}
		}
		if title == "" {
			title = text
		}
	}

	if level == hierarchy.LevelNone {
		b.absorb(text)
		return
	}

	b.popFor(level)

	parentID := ""
	if len(b.stack) > 0 {
		parentID = b.stack[len(b.stack)-1].ID
	}

	// Container levels keep their full heading text; requirement-bearing
	// levels store the body with the numbering prefix stripped.
	storedText := body
	if b.cfg.NonRequirementLevels[level] {
		storedText = text
	}

	p := AssembleProvision(b.cfg, b.stack, RecordInput{
		Level:        level,
		Marker:       marker,
		Title:        title,
		Text:         storedText,
		IntroText:    intro,
		ParentID:     parentID,
		AnalysisText: body,
		Provenance:   b.stamp.stamp(text),
	})

	b.provisions = append(b.provisions, p)
	b.index[p.ID] = p

	if parentID != "" {
		b.index[parentID].Children = append(b.index[parentID].Children, p.ID)
		b.relations = append(b.relations, Relation{Source: parentID, Type: RelationHasChild, Target: p.ID})
	}
	for _, ref := range p.References {
		b.relations = append(b.relations, Relation{Source: p.ID, Type: RelationReferences, Target: ref})
	}

	b.stack = append(b.stack, p)
}

// hasOpenStructure reports whether any non-flat ancestor is open.
func (b *Builder) hasOpenStructure() bool {
	for _, p := range b.stack {
		if !hierarchy.Flat(p.Level) {
			return true
		}
	}
	return false
}

// popFor seals stack entries until the new level can attach. Flat entries
// (recitals) always yield to the next block regardless of rank; everything
// else pops while its rank is greater than or equal to the incoming one.
func (b *Builder) popFor(level hierarchy.Level) {
	rank := hierarchy.Rank(level)
	for len(b.stack) > 0 {
		top := b.stack[len(b.stack)-1]
		if hierarchy.Flat(top.Level) || hierarchy.Rank(top.Level) >= rank {
			b.stack = b.stack[:len(b.stack)-1]
			continue
		}
		break
	}
}

// absorb appends unclassifiable text to the open stack top's intro text.
// This is the only mutation of an already-emitted record, and it is legal
// only while that record remains the top of the active stack. Text with no
// open ancestor is dropped.
func (b *Builder) absorb(text string) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	top.IntroText = strings.TrimSpace(strings.TrimSpace(top.IntroText) + " " + text)
}

// recitalMarker advances the recital counter from an explicit numeral when
// present, or increments it and synthesizes a marker when absent.
func (b *Builder) recitalMarker(marker string) string {
	if allDigitsRe.MatchString(marker) {
		n, _ := strconv.Atoi(marker)
		if n > b.recitalCounter {
			b.recitalCounter = n
		}
		return marker
	}
	b.recitalCounter++
	if marker == "" {
		return fmt.Sprintf("PREAMBLE_%d", b.recitalCounter)
	}
	return marker
}

var firstNumberRe = regexp.MustCompile(`\b(\d+)\b`)

func firstNumber(text string) string {
	if m := firstNumberRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
