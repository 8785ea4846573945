package main

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/differ"
	"github.com/lexflow/semdiff/internal/logger"
	"github.com/lexflow/semdiff/internal/models"
	"github.com/lexflow/semdiff/internal/scorer"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "semdiff",
		Short: "Semantic diff engine for legal documents",
		Long: `Semdiff identifies meaningful differences between two versions of a
legal document (changed obligations, dates, amounts, liability clauses)
while suppressing noise from whitespace, punctuation, or citation
formatting.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (YAML or JSON)")

	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old-file> <new-file>",
		Short: "Compare two versions of a document",
		Long: `Compare two plain-text document versions and print the detected
semantic changes with their significance breakdown.

Example:
  semdiff compare contract_v1.txt contract_v2.txt --lang en
  semdiff compare contract_v1.txt contract_v2.txt --lang ro --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			lang, _ := cmd.Flags().GetString("lang")
			asJSON, _ := cmd.Flags().GetBool("json")
			documentID, _ := cmd.Flags().GetString("document-id")

			cfg, err := config.LoadGlobalConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			zlog, err := logger.New(cfg.LogConfig)
			if err != nil {
				return fmt.Errorf("failed to build logger: %w", err)
			}

			oldContent, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read old version: %w", err)
			}
			newContent, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read new version: %w", err)
			}

			builder := differ.NewSemanticDifferBuilder(zlog).
				WithDiffConfig(cfg.DiffConfig)

			if cfg.ScorerConfig.Enabled && cfg.ScorerConfig.Endpoint != "" {
				provider, err := scorer.NewHTTPProviderFromScorerConfig(cfg.ScorerConfig, zlog)
				if err != nil {
					return fmt.Errorf("failed to build classification provider: %w", err)
				}
				builder = builder.WithScorer(scorer.NewSemanticScorer(cfg.ScorerConfig, provider, nil, zlog))
			}

			semanticDiffer, err := builder.Build()
			if err != nil {
				return fmt.Errorf("failed to build differ: %w", err)
			}

			docCtx := models.DocumentContext{
				DocumentID: documentID,
				Language:   models.Language(lang),
			}

			result, err := semanticDiffer.Compute(cmd.Context(), string(oldContent), string(newContent), docCtx)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(result)
			}
			printSummary(result)
			return nil
		},
	}

	cmd.Flags().String("lang", "en", "Document language (en or ro)")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")
	cmd.Flags().String("document-id", "cli", "Document identifier stamped on the result")

	return cmd
}

func printJSON(result *models.SemanticDiffResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printSummary(result *models.SemanticDiffResult) {
	fmt.Printf("Total changes: %d (critical: %d, substantive: %d, minor wording: %d)\n\n",
		result.TotalChanges,
		result.Breakdown.Critical,
		result.Breakdown.Substantive,
		result.Breakdown.MinorWording)

	for _, change := range result.Changes {
		location := change.SectionPath
		if location == "" {
			location = "-"
		}
		fmt.Printf("[%s] %s %s (confidence %.2f)\n", change.ID, change.Significance, change.ChangeType, change.Confidence)
		fmt.Printf("  section: %s\n", location)
		if change.BeforeText != "" {
			fmt.Printf("  before:  %s\n", excerptLine(change.BeforeText))
		}
		if change.AfterText != "" {
			fmt.Printf("  after:   %s\n", excerptLine(change.AfterText))
		}
		fmt.Println()
	}
}

func excerptLine(text string) string {
	const max = 120
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "…"
}
