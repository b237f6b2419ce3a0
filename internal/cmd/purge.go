package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/config"
	"github.com/Shopify/js-uploader/internal/uploader"
)

func newPurgeCmd() *cobra.Command {
	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge cached copies from the CDN",
		Long: `Send an HTTP PURGE request for every entry of --file or --dir.

Entries are used as given, so pass full asset URLs when purging.

Examples:
  js-uploader purge --file=https://cdn.example.com/checkout/latest/app.js
  js-uploader purge --file=https://cdn.example.com/a.js --header=Fastly-Key=$FASTLY_KEY`,
		RunE: runPurge,
	}

	addSourceFlags(purgeCmd)
	purgeCmd.Flags().StringToString("header", nil, "Header sent with every purge request (repeatable, key=value)")

	return purgeCmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cmd.Flags(), configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateSource(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	d, err := uploader.New(uploader.Config{
		Source:       cfg.FileSource(),
		PurgeHeaders: cfg.Purge.Headers,
		Purger:       newPurger(),
		Logger:       log.WithName("purge"),
	})
	if err != nil {
		return err
	}

	if err := d.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	log.Info("purge completed", "urls", len(d.FilePaths()))
	return nil
}
