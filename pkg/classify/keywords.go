package classify

import "strings"

// Keywords holds the structural heading keywords for one language.
type Keywords struct {
	Title   string
	Chapter string
	Section string
	Article string
	Annex   string
}

// langKeywords maps language codes to their structural keyword set.
// English is the fallback for any unsupported language.
var langKeywords = map[string]Keywords{
	"EN": {Title: "TITLE", Chapter: "CHAPTER", Section: "SECTION", Article: "Article", Annex: "ANNEX"},
	"DE": {Title: "TITEL", Chapter: "KAPITEL", Section: "ABSCHNITT", Article: "Artikel", Annex: "ANHANG"},
	"FR": {Title: "TITRE", Chapter: "CHAPITRE", Section: "SECTION", Article: "Article", Annex: "ANNEXE"},
}

// KeywordsFor returns the keyword set for a language code, falling back to
// English when the language is not supported.
func KeywordsFor(lang string) Keywords {
	if kw, ok := langKeywords[strings.ToUpper(lang)]; ok {
		return kw
	}
	return langKeywords["EN"]
}
