// Package graph builds the hierarchical provision graph of an EU legal
// act: a tree of provisions with stable identifiers, parent/child paths
// and semantic annotations, plus typed relation edges.
package graph

import (
	"fmt"
	"strings"

	"github.com/coolbeans/lexgraph/pkg/classify"
	"github.com/coolbeans/lexgraph/pkg/hierarchy"
)

const snippetLimit = 240

// Provision is one node of the output document tree. A provision is
// immutable once sealed; only the intro text of the currently open
// stack top may still grow while the node remains open.
type Provision struct {
	ID           string          `json:"id"`
	ParentID     string          `json:"parent_id,omitempty"`
	Level        hierarchy.Level `json:"level"`
	Kind         hierarchy.Level `json:"kind"`
	Marker       string          `json:"item_number,omitempty"`
	Lang         string          `json:"lang"`
	CELEX        string          `json:"celex"`
	RegulationID string          `json:"regulation_id"`
	Source       string          `json:"source"`
	Title        string          `json:"title,omitempty"`
	Text         string          `json:"text"`
	IntroText    string          `json:"intro_text"`

	Path       []string `json:"path"`
	PathString string   `json:"path_string"`
	Depth      int      `json:"depth"`

	CanonicalID   string   `json:"canonical_id"`
	CanonicalTags []string `json:"canonical_tags"`

	IsRequirement   bool                     `json:"is_requirement"`
	RequirementType classify.RequirementType `json:"requirement_type"`
	Roles           []string                 `json:"roles"`
	Obligations     []Obligation             `json:"obligations"`

	Snippet        string   `json:"snippet"`
	SnippetOffsets TextSpan `json:"snippet_char_offsets"`
	EmbeddingID    string   `json:"embedding_id"`

	Metadata   map[string]string `json:"metadata"`
	References []string          `json:"references"`
	Children   []string          `json:"children"`
	Provenance Provenance        `json:"provenance"`
}

// TextSpan is a character range within a provision's analyzable text.
type TextSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Obligation is a conservative structured reading of a requirement-bearing
// provision: who must do what, with which modality.
type Obligation struct {
	Actors   []string                 `json:"actors"`
	Action   string                   `json:"action"`
	Modality classify.RequirementType `json:"modality"`
	Timing   string                   `json:"timing,omitempty"`
}

// Config describes the shared behaviour of the builder for one document.
type Config struct {
	CELEX        string
	SourceName   string
	RegulationID string
	Lang         string

	ParserName    string
	ParserVersion string

	// Normalization remaps numbering-derived levels before any rank
	// comparison.
	Normalization hierarchy.Normalization

	// ContextLevels lists the ancestor levels whose titles are carried
	// in each provision's metadata.
	ContextLevels []hierarchy.Level

	// NonRequirementLevels never run requirement or role classification.
	NonRequirementLevels map[hierarchy.Level]bool

	// ReferenceExcludedLevels never carry outbound references.
	ReferenceExcludedLevels map[hierarchy.Level]bool

	// PathSkipLevels are omitted from ancestor paths.
	PathSkipLevels map[hierarchy.Level]bool

	// Roles detects actor roles in provision text. Selected once per
	// document from the regulation family.
	Roles *classify.RoleDetector
}

func levelSet(levels ...hierarchy.Level) map[hierarchy.Level]bool {
	s := make(map[hierarchy.Level]bool, len(levels))
	for _, l := range levels {
		s[l] = true
	}
	return s
}

// withDefaults fills the zero-valued fields of a config.
func (c Config) withDefaults() Config {
	if c.Lang == "" {
		c.Lang = "EN"
	}
	c.Lang = strings.ToUpper(c.Lang)
	if c.ParserName == "" {
		c.ParserName = "lexgraph.builder"
	}
	if c.ParserVersion == "" {
		c.ParserVersion = "0.2"
	}
	if c.Normalization == nil {
		c.Normalization = hierarchy.DefaultNormalization()
	}
	if c.ContextLevels == nil {
		c.ContextLevels = []hierarchy.Level{
			hierarchy.LevelTitle, hierarchy.LevelChapter, hierarchy.LevelSection, hierarchy.LevelArticle,
		}
	}
	if c.NonRequirementLevels == nil {
		c.NonRequirementLevels = levelSet(
			hierarchy.LevelTitle, hierarchy.LevelChapter, hierarchy.LevelSection,
			hierarchy.LevelArticle, hierarchy.LevelAnnex, hierarchy.LevelRecital,
		)
	}
	if c.ReferenceExcludedLevels == nil {
		c.ReferenceExcludedLevels = levelSet(
			hierarchy.LevelTitle, hierarchy.LevelChapter, hierarchy.LevelSection,
			hierarchy.LevelArticle, hierarchy.LevelAnnex,
		)
	}
	if c.PathSkipLevels == nil {
		c.PathSkipLevels = levelSet(hierarchy.LevelTitle)
	}
	if c.Roles == nil {
		c.Roles = classify.NoRoles()
	}
	return c
}

// markerToken renders a marker for use inside identifiers. Spaces become
// underscores to keep ids text-safe; a missing marker is "UNNUMBERED".
func markerToken(marker string) string {
	if marker == "" {
		return "UNNUMBERED"
	}
	return strings.ReplaceAll(marker, " ", "_")
}

// ProvisionID derives the canonical identifier for a node. Children extend
// their parent's id; roots are qualified by document and language. The
// derivation is deterministic: identical input yields identical ids.
func ProvisionID(cfg Config, parentID string, level hierarchy.Level, marker, lang string) string {
	if parentID != "" {
		return fmt.Sprintf("%s_%s_%s", parentID, level, markerToken(marker))
	}
	return fmt.Sprintf("%s_%s_%s_%s", cfg.CELEX, lang, level, markerToken(marker))
}

// pathSegment renders one "LEVEL_MARKER" path label.
func pathSegment(level hierarchy.Level, marker string) string {
	if level == hierarchy.LevelNone {
		return ""
	}
	if marker == "" {
		return strings.ToUpper(string(level))
	}
	return strings.ToUpper(string(level) + "_" + strings.ReplaceAll(marker, " ", "_"))
}

// buildPath assembles the root-to-node path, skipping path-skip levels.
func buildPath(stack []*Provision, level hierarchy.Level, marker string, skip map[hierarchy.Level]bool) []string {
	segments := make([]string, 0, len(stack)+1)
	for _, ancestor := range stack {
		if skip[ancestor.Level] {
			continue
		}
		if seg := pathSegment(ancestor.Level, ancestor.Marker); seg != "" {
			segments = append(segments, seg)
		}
	}
	if seg := pathSegment(level, marker); seg != "" {
		segments = append(segments, seg)
	}
	return segments
}

// buildContext collects the nearest ancestor title (or marker) for each
// configured context level, plus the id of the chain root.
func buildContext(stack []*Provision, current *Provision, cfg Config) map[string]string {
	context := make(map[string]string, len(cfg.ContextLevels)+1)
	for _, lvl := range cfg.ContextLevels {
		context[string(lvl)] = ""
	}
	chain := append(append([]*Provision{}, stack...), current)
	context["root_id"] = chain[0].ID
	for _, node := range chain {
		if _, ok := context[string(node.Level)]; !ok {
			continue
		}
		if node.Title != "" {
			context[string(node.Level)] = node.Title
		} else if node.Marker != "" {
			context[string(node.Level)] = node.Marker
		}
	}
	return context
}

// snippet truncates analyzable text for previews.
func snippet(text string) (string, TextSpan) {
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text, TextSpan{Start: 0, End: len(runes)}
	}
	return string(runes[:snippetLimit]) + "...", TextSpan{Start: 0, End: snippetLimit}
}

// firstSentence returns a short action string for obligation stubs.
func firstSentence(text string) string {
	action := strings.TrimSpace(text)
	if idx := strings.Index(action, "."); idx >= 0 {
		action = action[:idx]
	}
	runes := []rune(action)
	if len(runes) > snippetLimit {
		action = string(runes[:snippetLimit])
	}
	return action
}

// RecordInput carries the per-block fields the assembler combines with
// config and stack state into a provision record.
type RecordInput struct {
	Level     hierarchy.Level
	Marker    string
	Title     string
	Text      string
	IntroText string
	ParentID  string

	// AnalysisText overrides Text for semantic classification;
	// ReferencesText overrides AnalysisText for reference extraction.
	AnalysisText   string
	ReferencesText string

	Provenance Provenance
}

// AssembleProvision is the pure record assembler: it combines identity,
// text, path and context, semantic fields, references and provenance into
// one record. It performs no registration and mutates nothing it is given.
func AssembleProvision(cfg Config, stack []*Provision, in RecordInput) *Provision {
	analysisText := in.AnalysisText
	if analysisText == "" {
		analysisText = in.Text
	}
	referencesText := in.ReferencesText
	if referencesText == "" {
		referencesText = analysisText
	}

	id := ProvisionID(cfg, in.ParentID, in.Level, in.Marker, cfg.Lang)
	path := buildPath(stack, in.Level, in.Marker, cfg.PathSkipLevels)

	isRequirement := false
	requirementType := classify.RequirementOther
	roles := []string{}
	if !cfg.NonRequirementLevels[in.Level] {
		isRequirement = classify.IsRequirementText(analysisText, cfg.Lang)
		requirementType = classify.ClassifyRequirement(analysisText, cfg.Lang)
		roles = append(roles, cfg.Roles.Detect(analysisText, cfg.Lang)...)
	}

	references := []string{}
	if !cfg.ReferenceExcludedLevels[in.Level] {
		seen := make(map[string]bool)
		for _, ref := range classify.ExtractReferences(referencesText, cfg.Lang) {
			if !seen[ref] {
				seen[ref] = true
				references = append(references, ref)
			}
		}
	}

	obligations := []Obligation{}
	if isRequirement {
		obligations = append(obligations, Obligation{
			Actors:   roles,
			Action:   firstSentence(analysisText),
			Modality: requirementType,
		})
	}

	requirementTag := "no"
	if isRequirement {
		requirementTag = "yes"
	}

	snip, span := snippet(analysisText)

	p := &Provision{
		ID:           id,
		ParentID:     in.ParentID,
		Level:        in.Level,
		Kind:         in.Level,
		Marker:       in.Marker,
		Lang:         cfg.Lang,
		CELEX:        cfg.CELEX,
		RegulationID: cfg.RegulationID,
		Source:       cfg.SourceName,
		Title:        in.Title,
		Text:         in.Text,
		IntroText:    in.IntroText,
		Path:         path,
		PathString:   strings.Join(path, "/"),
		Depth:        len(path),
		CanonicalID:  id,
		CanonicalTags: []string{
			"celex:" + cfg.CELEX,
			"lang:" + cfg.Lang,
			"level:" + string(in.Level),
			"requirement:" + requirementTag,
			"requirement_type:" + string(requirementType),
		},
		IsRequirement:   isRequirement,
		RequirementType: requirementType,
		Roles:           roles,
		Obligations:     obligations,
		Snippet:         snip,
		SnippetOffsets:  span,
		EmbeddingID:     id + "_emb_0",
		References:      references,
		Children:        []string{},
		Provenance:      in.Provenance,
	}

	context := buildContext(stack, p, cfg)
	metadata := map[string]string{
		"celex_id": cfg.CELEX,
		"source":   cfg.SourceName,
		"lang":     cfg.Lang,
	}
	for k, v := range context {
		metadata[k] = v
	}
	p.Metadata = metadata

	return p
}
