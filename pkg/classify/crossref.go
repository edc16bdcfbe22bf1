package classify

import (
	"fmt"
	"regexp"
	"strings"
)

type refPatterns struct {
	article *regexp.Regexp
	annex   *regexp.Regexp
}

var crossRefPatterns = buildCrossRefPatterns()

func buildCrossRefPatterns() map[string]refPatterns {
	out := make(map[string]refPatterns, len(langKeywords))
	for lang, kw := range langKeywords {
		out[lang] = refPatterns{
			article: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Article) + `\s+(\d+)`),
			annex:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw.Annex) + `\s+([IVXLCDM]+)`),
		}
	}
	return out
}

// ExtractReferences scans text for mentions of Articles and Annexes and
// returns normalized symbolic reference tokens such as "Article_5" and
// "Annex_IV", in order of appearance per kind. Targets are symbolic: they
// are not resolved against the document tree and may name provisions that
// do not exist in it.
func ExtractReferences(text, lang string) []string {
	ps, ok := crossRefPatterns[strings.ToUpper(lang)]
	if !ok {
		ps = crossRefPatterns["EN"]
	}

	var refs []string
	for _, m := range ps.article.FindAllStringSubmatch(text, -1) {
		refs = append(refs, fmt.Sprintf("Article_%s", m[1]))
	}
	for _, m := range ps.annex.FindAllStringSubmatch(text, -1) {
		refs = append(refs, fmt.Sprintf("Annex_%s", m[1]))
	}
	return refs
}
