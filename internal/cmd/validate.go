package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a js-uploader.yaml file",
		Long: `Validates the configuration file against the JSON Schema.
Defaults to --config, or js-uploader.yaml in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = config.FileName
	}

	if err := config.ValidateFile(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
	return nil
}
