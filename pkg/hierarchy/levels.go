// Package hierarchy defines the structural levels of an EU legal act and
// the fixed rank order used for stack-based hierarchy decisions.
package hierarchy

// Level identifies a structural level of a provision.
type Level string

const (
	LevelTitle     Level = "title"
	LevelRecital   Level = "recital"
	LevelChapter   Level = "chapter"
	LevelSection   Level = "section"
	LevelArticle   Level = "article"
	LevelParagraph Level = "paragraph"
	LevelLetter    Level = "letter"
	LevelSubpoint  Level = "subpoint"
	LevelAnnex     Level = "annex"

	// Annex substructure.
	LevelAnnexPoint    Level = "annex_point"
	LevelAnnexSubpoint Level = "annex_subpoint"
	LevelAnnexBullet   Level = "annex_bullet"

	// Numbering-derived guesses. These never reach the output tree
	// directly; a Normalization maps them to canonical levels first.
	LevelSubsection Level = "subsection"
	LevelPoint      Level = "point"

	// LevelNone marks a block that opens no node of its own.
	LevelNone Level = ""
)

// unrankedOrder is the rank assigned to levels outside the fixed table.
// It sorts below every known level, so an unranked entry on the stack is
// popped by any subsequent unranked sibling.
const unrankedOrder = 99

// levelOrder is the fixed total order over structural levels. Annexes are
// top-level containers like titles. Keep this table in one place; every
// stack comparison in the builder goes through Rank.
var levelOrder = map[Level]int{
	LevelTitle:         0,
	LevelRecital:       1,
	LevelChapter:       2,
	LevelSection:       3,
	LevelArticle:       4,
	LevelParagraph:     5,
	LevelLetter:        6,
	LevelSubpoint:      7,
	LevelAnnex:         0,
	LevelAnnexPoint:    5,
	LevelAnnexSubpoint: 6,
	LevelAnnexBullet:   7,
}

// Rank returns the position of a level in the fixed total order.
// Unknown levels rank below all known ones.
func Rank(l Level) int {
	if r, ok := levelOrder[l]; ok {
		return r
	}
	return unrankedOrder
}

// Known reports whether the level appears in the fixed rank table.
func Known(l Level) bool {
	_, ok := levelOrder[l]
	return ok
}

// Flat reports whether the level is exempt from rank-based stack popping.
// Recitals form a flat sibling sequence at the preamble level: a recital
// never pops other entries by rank, and an open recital always yields to
// the next block regardless of that block's rank.
func Flat(l Level) bool {
	return l == LevelRecital
}

// Normalization remaps numbering-derived level guesses to canonical levels
// before any rank comparison. A regulation family supplies its own mapping.
type Normalization map[Level]Level

// Apply returns the canonical level for a numbering-derived guess, or the
// input unchanged when no remap is declared.
func (n Normalization) Apply(l Level) Level {
	if l == LevelNone {
		return LevelNone
	}
	if mapped, ok := n[l]; ok {
		return mapped
	}
	return l
}

// DefaultNormalization returns the mapping shared by the supported EU
// regulation families: numeric "1." numbering inside articles becomes a
// paragraph, and "(a)" items align with the letter level.
func DefaultNormalization() Normalization {
	return Normalization{
		LevelSection:    LevelParagraph,
		LevelSubsection: LevelParagraph,
		LevelPoint:      LevelLetter,
	}
}
