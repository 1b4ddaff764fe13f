package cmd

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "policyaudit",
	Short: "Analyze policy documents for compliance",
	Long: `policyaudit analyzes PDF policy documents against a catalog of compliance
requirements and produces scored PDF and markdown reports.

Documents are chunked under a token budget, matched against each requirement
category, and scored by an AI compliance auditor.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Pick up OPENAI_API_KEY and friends from a local .env if present
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.policyaudit/config.json)")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the CLI logger, honoring the verbose flag.
func newLogger() (logger *charmlog.Logger) {
	level := charmlog.InfoLevel
	if getVerbose() {
		level = charmlog.DebugLevel
	}
	logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	return logger
}
