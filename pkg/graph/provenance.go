package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Provenance records where a provision's text came from and which parser
// produced it. Offsets are -1 when the block text could not be located in
// the raw source.
type Provenance struct {
	Parser        string `json:"parser"`
	ParserVersion string `json:"parser_version"`
	SourcePath    string `json:"source_path"`
	RawHash       string `json:"raw_hash"`
	Start         int    `json:"start"`
	End           int    `json:"end"`
}

// stamper produces provenance records for one source document. The raw
// content hash is computed once at construction.
type stamper struct {
	raw        string
	sourcePath string
	parser     string
	version    string
	rawHash    string
}

func newStamper(raw, sourcePath, parser, version string) *stamper {
	sum := sha256.Sum256([]byte(raw))
	return &stamper{
		raw:        raw,
		sourcePath: sourcePath,
		parser:     parser,
		version:    version,
		rawHash:    hex.EncodeToString(sum[:]),
	}
}

// stamp locates the block text in the raw document and returns the filled
// provenance record. Location is best effort.
func (s *stamper) stamp(blockText string) Provenance {
	start := -1
	end := -1
	if blockText != "" {
		if idx := strings.Index(s.raw, blockText); idx >= 0 {
			start = idx
			end = idx + len(blockText)
		}
	}
	return Provenance{
		Parser:        s.parser,
		ParserVersion: s.version,
		SourcePath:    s.sourcePath,
		RawHash:       s.rawHash,
		Start:         start,
		End:           end,
	}
}
