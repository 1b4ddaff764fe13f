package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/policyaudit/policyaudit/pkg/catalog"
	"github.com/policyaudit/policyaudit/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var requirementsCmd = &cobra.Command{
	Use:   "requirements",
	Short: "List the compliance requirement catalog",
	Long: `Lists the requirement categories documents are scored against.

Shows the built-in catalog, or the custom catalog when requirements_file is
set in the config.`,
	RunE: runRequirements,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(requirementsCmd)
}

func runRequirements(cmd *cobra.Command, args []string) (err error) {
	requirements := catalog.Builtin()

	// A missing config is fine here; fall back to the built-in catalog.
	cfg, loadErr := config.Load(getConfigFile())
	if loadErr == nil && cfg.RequirementsFile != "" {
		requirements, err = catalog.LoadFile(cfg.RequirementsFile)
		if err != nil {
			err = errors.Wrap(err, "failed to load requirement catalog")
			return err
		}
	}

	for i, req := range requirements {
		fmt.Printf("%d. %s\n   %s\n", i+1, req.Category, req.Text)
	}

	return err
}
