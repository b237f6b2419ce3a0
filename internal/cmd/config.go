package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "view",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE:  runConfigView,
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	})

	return configCmd
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(nil, configPath)
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) == 1 {
		path = args[0]
	}

	cfg := &config.Config{
		S3:          config.S3Config{Bucket: "my-assets-bucket", Region: "us-east-1"},
		Destination: "my-app",
		Latest:      true,
		Dir:         "dist",
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
