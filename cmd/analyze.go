package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/policyaudit/policyaudit/pkg/analyzer"
	"github.com/policyaudit/policyaudit/pkg/catalog"
	"github.com/policyaudit/policyaudit/pkg/config"
	"github.com/policyaudit/policyaudit/pkg/oracle"
	"github.com/policyaudit/policyaudit/pkg/report"
	"github.com/policyaudit/policyaudit/pkg/text"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeMarkdownOut string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze [policy.pdf]",
	Short: "Analyze a PDF policy document for compliance",
	Long: `Analyzes a PDF policy document against the compliance requirement catalog.

The document is chunked, each chunk's paragraphs are fuzzy-matched against
every requirement, accepted matches are scored by the AI auditor, and the best
result per category is consolidated into an overall compliance score.

Examples:
  # Analyze a policy document
  policyaudit analyze security-policy.pdf

  # Also write the markdown report next to the PDF report
  policyaudit analyze security-policy.pdf --markdown report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeMarkdownOut, "markdown", "", "Write the markdown report to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	logger := newLogger()

	// Load config for API key and tuning
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Read the policy document
	policyPath := args[0]
	var fileContent []byte
	fileContent, err = os.ReadFile(policyPath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read policy document: %s", policyPath)
		return err
	}

	// Load the requirement catalog
	requirements := catalog.Builtin()
	if cfg.RequirementsFile != "" {
		requirements, err = catalog.LoadFile(cfg.RequirementsFile)
		if err != nil {
			err = errors.Wrap(err, "failed to load requirement catalog")
			return err
		}
	}

	// Assemble the pipeline
	var counter *text.Counter
	counter, err = text.NewCounter(cfg.GetModel())
	if err != nil {
		err = errors.Wrap(err, "failed to create token counter")
		return err
	}

	transport := oracle.NewHTTPTransport(cfg.OpenAIAPIKey)
	oracleClient := oracle.NewClient(transport, counter, cfg.GetModel(), logger)
	renderer := report.NewRenderer(cfg.ReportsDir, logger)
	a := analyzer.New(oracleClient, counter, requirements, renderer, cfg.GetChunkTokens(), logger)

	// Run the analysis
	var rec analyzer.Record
	rec, err = a.AnalyzePolicy(ctx, fileContent, filepath.Base(policyPath))
	if err != nil {
		err = errors.Wrap(err, "analysis failed")
		return err
	}

	if analyzeMarkdownOut != "" {
		err = os.WriteFile(analyzeMarkdownOut, []byte(rec.MarkdownReport), 0600)
		if err != nil {
			err = errors.Wrapf(err, "failed to write markdown report: %s", analyzeMarkdownOut)
			return err
		}
	}

	notification := analyzer.ComposeNotification(rec)

	fmt.Printf("File:    %s\n", rec.FileName)
	fmt.Printf("Score:   %.1f%%\n", rec.OverallScore)
	fmt.Printf("Status:  %s\n", rec.ComplianceStatus)
	fmt.Printf("Report:  %s\n", rec.PDFReport)
	if getVerbose() {
		fmt.Printf("\n%s\n", notification.Details)
		fmt.Printf("\n%s\n", strings.TrimSpace(rec.MarkdownReport))
	}

	return err
}
