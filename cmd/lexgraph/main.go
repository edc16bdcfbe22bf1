package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coolbeans/lexgraph/pkg/catalog"
	"github.com/coolbeans/lexgraph/pkg/eurlex"
	"github.com/coolbeans/lexgraph/pkg/graph"
	"github.com/coolbeans/lexgraph/pkg/pipeline"
	"github.com/coolbeans/lexgraph/pkg/store"
	"github.com/coolbeans/lexgraph/pkg/validate"
)

var version = "0.2.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lexgraph",
		Short: "EU regulation provision graph builder",
		Long: `Lexgraph converts EUR-Lex regulation HTML into a canonical
hierarchical provision graph: a tree of titles, chapters, articles,
paragraphs, points, recitals and annex items with stable identifiers,
requirement classification, actor roles and cross-reference edges.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(catalogCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func parseCmd() *cobra.Command {
	var (
		celex       string
		lang        string
		outDir      string
		catalogPath string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "parse [html-file]",
		Short: "Parse a regulation HTML file into a provision graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			logger := zap.NewNop()
			if verbose {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
				defer logger.Sync()
			}

			result, err := pipeline.ParseFile(args[0], celex, pipeline.Options{
				Catalog: cat,
				Lang:    lang,
				OutDir:  outDir,
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			doc := result.Document
			fmt.Printf("Parsed %s (%s)\n", doc.RegulationID, doc.CELEXID)
			fmt.Printf("  Provisions: %d\n", len(doc.Provisions))
			fmt.Printf("  Relations:  %d\n", len(doc.Relations))
			if !result.Validation.OK() {
				fmt.Printf("  Validation issues: %d\n", len(result.Validation.Issues))
			}
			if result.OutFile != "" {
				fmt.Printf("  Output: %s\n", result.OutFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&celex, "celex", "", "CELEX identifier of the regulation (required)")
	cmd.Flags().StringVar(&lang, "lang", "EN", "document language (EN, DE, FR)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for parsed.json")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (defaults to built-in)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	cmd.MarkFlagRequired("celex")

	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		lang    string
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "fetch [celex]",
		Short: "Download a regulation's HTML text from EUR-Lex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			celex, err := eurlex.ParseCELEX(args[0])
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = fmt.Sprintf("%s_%s.html", celex, strings.ToUpper(lang))
			}

			client := eurlex.NewClient(eurlex.ClientConfig{})
			body, err := client.FetchDocument(cmd.Context(), celex, lang)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outFile, body, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}

			fmt.Printf("Fetched %s (%d bytes) -> %s\n", celex, len(body), outFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "EN", "document language (EN, DE, FR)")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (defaults to <celex>_<lang>.html)")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [parsed.json]",
		Short: "Check the invariants of a parsed provision graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			report := validate.Document(doc)
			fmt.Printf("Provisions: %d, relations: %d\n", report.Provisions, report.Relations)
			if report.OK() {
				fmt.Println("OK")
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Printf("  [%s] %s: %s\n", issue.Code, issue.ProvisionID, issue.Message)
			}
			return fmt.Errorf("%d validation issues", len(report.Issues))
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [parsed.json...]",
		Short: "Index parsed graphs and print relation statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix := store.NewIndex()
			for _, path := range args {
				doc, err := readDocument(path)
				if err != nil {
					return err
				}
				if err := ix.Register(doc); err != nil {
					return err
				}
			}

			stats := ix.Stats()
			fmt.Printf("Documents:  %d\n", stats.Documents)
			fmt.Printf("Provisions: %d\n", stats.Provisions)
			fmt.Printf("Relations:  %d\n", stats.Relations)
			for t, n := range stats.ByType {
				fmt.Printf("  %s: %d\n", t, n)
			}
			fmt.Printf("Dangling references: %d\n", stats.DanglingRefs)
			return nil
		},
	}
}

func catalogCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the supported regulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			for _, reg := range cat.All() {
				fmt.Printf("%s  %-20s %s (%s)\n", reg.CELEX, reg.Name, reg.Type, reg.Jurisdiction)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (defaults to built-in)")
	return cmd
}

func readDocument(path string) (*graph.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &doc, nil
}
