package classify

import (
	"regexp"
	"strings"
)

// RequirementType classifies the normative force of provision text.
type RequirementType string

const (
	RequirementObligation  RequirementType = "obligation"
	RequirementProhibition RequirementType = "prohibition"
	RequirementPermission  RequirementType = "permission"
	RequirementDefinition  RequirementType = "definition"
	RequirementOther       RequirementType = "other"
)

// IsObligation reports whether the type carries normative force for
// obligation extraction. Definitions are requirement-like but are
// explicitly not obligations.
func (t RequirementType) IsObligation() bool {
	switch t {
	case RequirementObligation, RequirementProhibition, RequirementPermission:
		return true
	}
	return false
}

// classificationOrder fixes the precedence of requirement categories.
// Prohibition patterns are lexical supersets of obligation patterns
// ("shall not" contains "shall") and must be tried first.
var classificationOrder = []RequirementType{
	RequirementProhibition,
	RequirementObligation,
	RequirementPermission,
	RequirementDefinition,
}

type patternSet map[RequirementType][]*regexp.Regexp

// requirementPatterns holds the per-language requirement pattern families.
// Modal keywords are anchored on word boundaries and restricted to
// sentence-internal followers so that e.g. "shall" does not fire inside
// compounds.
var requirementPatterns = map[string]patternSet{
	"EN": {
		RequirementObligation: compileAll(
			`\bshall(?:[\s:,.]|$)`,
			`\bmust(?:[\s:,.]|$)`,
			`\bis required to\b`,
			`\bis obliged to\b`,
			`\bhas to\b`,
			`\bshall ensure\b`,
		),
		RequirementProhibition: compileAll(
			`\bshall not\b`,
			`\bmay not\b`,
			`\bmust not\b`,
			`\bis prohibited\b`,
			`\bshall refrain from\b`,
		),
		RequirementPermission: compileAll(
			`\bmay(?:[\s:,.]|$)`,
			`\bis permitted\b`,
			`\bis allowed to\b`,
		),
		RequirementDefinition: compileAll(
			`'[^']+'\s+means\b`,
			`"[^"]+"\s+means\b`,
			`\brefers to\b`,
			`\bdenotes\b`,
		),
	},
	"DE": {
		RequirementObligation: compileAll(
			`\bmuss\b`,
			`\bverpflichtet\b`,
			`\bhat sicherzustellen\b`,
			`\bist verpflichtet\b`,
		),
		RequirementProhibition: compileAll(
			`\bdarf nicht\b`,
			`\bist untersagt\b`,
			`\bverboten\b`,
		),
		RequirementPermission: compileAll(
			`\bdarf\b`,
			`\bist erlaubt\b`,
		),
		RequirementDefinition: compileAll(
			`'[^']+'\s+bezeichnet\b`,
			`"[^"]+"\s+bezeichnet\b`,
			`\bbezeichnet\b`,
			`\bsteht für\b`,
		),
	},
	"FR": {
		RequirementObligation: compileAll(
			`\bdoit\b`,
			`\best tenu de\b`,
			`\best obligé de\b`,
		),
		RequirementProhibition: compileAll(
			`\bne doit pas\b`,
			`\best interdit\b`,
		),
		RequirementPermission: compileAll(
			`\bpeut\b`,
			`\best autorisé à\b`,
		),
		RequirementDefinition: compileAll(
			`'[^']+'\s+signifie\b`,
			`"[^"]+"\s+signifie\b`,
			`\bsignifie\b`,
			`\bdésigne\b`,
		),
	},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}

func patternsFor(lang string) patternSet {
	if ps, ok := requirementPatterns[strings.ToUpper(lang)]; ok {
		return ps
	}
	return requirementPatterns["EN"]
}

// IsRequirementText reports whether the text contains any requirement
// keyword for the given language, in any category.
func IsRequirementText(text, lang string) bool {
	for _, res := range patternsFor(lang) {
		for _, re := range res {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// ClassifyRequirement classifies text into exactly one requirement type.
// Categories are tried in the fixed precedence order so that a prohibition
// ("shall not") is never misread as the obligation it lexically contains.
func ClassifyRequirement(text, lang string) RequirementType {
	ps := patternsFor(lang)
	for _, reqType := range classificationOrder {
		for _, re := range ps[reqType] {
			if re.MatchString(text) {
				return reqType
			}
		}
	}
	return RequirementOther
}
