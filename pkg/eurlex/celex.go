// Package eurlex is the EUR-Lex connector: it parses CELEX identifiers,
// derives document URLs and downloads act HTML with rate limiting and
// response caching.
package eurlex

import (
	"fmt"
	"regexp"
	"strings"
)

// DocumentSector is the CELEX sector code.
// See: https://eur-lex.europa.eu/content/tools/TableOfSectors/types_of_documents_in_eurlex.html
type DocumentSector string

const (
	SectorTreaties    DocumentSector = "1"
	SectorAgreements  DocumentSector = "2"
	SectorLegislation DocumentSector = "3"
	SectorPreparatory DocumentSector = "5"
	SectorCaseLaw     DocumentSector = "6"
)

// DocumentTypeCode is the CELEX document type indicator within a sector.
type DocumentTypeCode string

const (
	TypeRegulation DocumentTypeCode = "R"
	TypeDirective  DocumentTypeCode = "L"
	TypeDecision   DocumentTypeCode = "D"
)

// CELEXNumber is a structured CELEX identifier.
// Format: {Sector}{Year}{TypeCode}{PaddedNumber}
// Example: "32016R0679" = Sector 3, Year 2016, Regulation, Number 0679
type CELEXNumber struct {
	Sector   DocumentSector   `json:"sector"`
	Year     string           `json:"year"`
	TypeCode DocumentTypeCode `json:"type_code"`
	Number   string           `json:"number"`
}

var celexRe = regexp.MustCompile(`^([1-6])(\d{4})([A-Z])(\d{4})$`)

// ParseCELEX parses and validates a CELEX identifier string.
func ParseCELEX(raw string) (CELEXNumber, error) {
	m := celexRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return CELEXNumber{}, fmt.Errorf("invalid CELEX identifier %q", raw)
	}
	return CELEXNumber{
		Sector:   DocumentSector(m[1]),
		Year:     m[2],
		TypeCode: DocumentTypeCode(m[3]),
		Number:   m[4],
	}, nil
}

// String returns the canonical CELEX string representation.
func (c CELEXNumber) String() string {
	return string(c.Sector) + c.Year + string(c.TypeCode) + c.Number
}

// baseURL is the EUR-Lex legal-content endpoint.
const baseURL = "https://eur-lex.europa.eu/legal-content"

// DocumentURL returns the URL of the consolidated HTML text of the act
// in the given language. The language code defaults to EN.
func (c CELEXNumber) DocumentURL(lang string) string {
	lang = strings.ToUpper(strings.TrimSpace(lang))
	if lang == "" {
		lang = "EN"
	}
	return fmt.Sprintf("%s/%s/TXT/HTML/?uri=CELEX:%s", baseURL, lang, c.String())
}
