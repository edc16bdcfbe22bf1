// Package pipeline orchestrates per-document runs: catalog lookup, block
// extraction, graph building, validation and JSON output. The core stays
// pure; all I/O and logging live here.
package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/coolbeans/lexgraph/pkg/catalog"
	"github.com/coolbeans/lexgraph/pkg/graph"
	"github.com/coolbeans/lexgraph/pkg/htmlsource"
	"github.com/coolbeans/lexgraph/pkg/validate"
)

// Options configures a pipeline run.
type Options struct {
	// Catalog resolves CELEX identifiers. Defaults to the built-in catalog.
	Catalog *catalog.Catalog

	// Lang is the document language code (EN/DE/FR). Defaults to EN.
	Lang string

	// OutDir receives parsed.json. Empty means no file is written.
	OutDir string

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Result summarizes one processed document.
type Result struct {
	Document   *graph.Document
	Validation validate.Report
	OutFile    string
}

// ParseFile parses one EUR-Lex HTML file identified by its CELEX id.
// An unknown CELEX fails before any parsing begins. The output file is
// written only when the whole document processed cleanly; a failing run
// produces no partial output.
func ParseFile(htmlPath, celex string, opts Options) (*Result, error) {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Lang == "" {
		opts.Lang = "EN"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reg, err := opts.Catalog.Lookup(celex)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", htmlPath, err)
	}

	_, blocks, err := htmlsource.Extract(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("extracting blocks from %s: %w", htmlPath, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no text blocks found in %s", htmlPath)
	}

	builder := graph.NewBuilder(graph.Config{
		CELEX:        reg.CELEX,
		SourceName:   reg.Name,
		RegulationID: reg.Name,
		Lang:         opts.Lang,
		Roles:        reg.RoleDetector(),
	})
	builder.SetSource(string(raw), htmlPath)
	builder.FeedAll(blocks)

	doc := builder.Document()
	report := validate.Document(doc)

	logger.Info("parsed document",
		zap.String("celex", celex),
		zap.String("regulation", reg.Name),
		zap.String("lang", opts.Lang),
		zap.String("run_id", doc.RunID),
		zap.Int("blocks", len(blocks)),
		zap.Int("provisions", len(doc.Provisions)),
		zap.Int("relations", len(doc.Relations)),
		zap.Int("validation_issues", len(report.Issues)),
	)
	for _, issue := range report.Issues {
		logger.Warn("validation issue",
			zap.String("code", issue.Code),
			zap.String("provision", issue.ProvisionID),
			zap.String("message", issue.Message),
		)
	}

	result := &Result{Document: doc, Validation: report}
	if opts.OutDir == "" {
		return result, nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	data, err := doc.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	outFile := filepath.Join(opts.OutDir, "parsed.json")
	if err := os.WriteFile(outFile, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", outFile, err)
	}
	result.OutFile = outFile

	return result, nil
}
