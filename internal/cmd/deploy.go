package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/config"
	"github.com/Shopify/js-uploader/internal/storage/s3"
	"github.com/Shopify/js-uploader/internal/ui"
	"github.com/Shopify/js-uploader/internal/uploader"
)

// newStore builds the object store for a deploy. Tests replace it.
var newStore = func(ctx context.Context, opts s3.Options) (uploader.ObjectStore, error) {
	return s3.New(ctx, opts)
}

func newDeployCmd() *cobra.Command {
	var progress bool

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload artifacts to S3",
		Long: `Upload a list of files, or every file directly inside a directory, to S3.

All uploads run concurrently. If any upload fails the command fails after
every other upload has finished; nothing is rolled back.

Examples:
  js-uploader deploy --bucket=assets --destination=checkout --version=1.4.0 --dir=dist
  js-uploader deploy --bucket=assets --destination=checkout --file=dist/app.js --no-latest
  js-uploader deploy --config=release.yaml --manifest=uploaded.yaml --progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, progress)
		},
	}

	addSourceFlags(deployCmd)
	deployCmd.Flags().String("bucket", "", "S3 bucket to upload to")
	deployCmd.Flags().String("region", "", "AWS region (defaults to the AWS config chain)")
	deployCmd.Flags().String("endpoint", "", "Custom S3 endpoint for S3 compatible stores")
	deployCmd.Flags().Bool("path-style", false, "Use path-style bucket addressing")
	deployCmd.Flags().String("acl", "", "Canned ACL for uploaded objects, e.g. public-read")
	deployCmd.Flags().String("cache-control", "", "Cache-Control header for uploaded objects")
	deployCmd.Flags().StringP("destination", "d", "", "Key prefix to upload under")
	deployCmd.Flags().String("version", "", "Release version used in keys")
	deployCmd.Flags().Bool("no-latest", false, "Do not write the latest copy of versioned uploads")
	deployCmd.Flags().String("manifest", "", "Write a YAML manifest of uploaded keys to this path")
	deployCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")

	return deployCmd
}

// addSourceFlags registers the file selection flags shared by deploy and purge.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("file", "f", nil, "File to process (repeatable, wins over --dir)")
	cmd.Flags().String("dir", "", "Directory whose files are processed")
}

func runDeploy(cmd *cobra.Command, progress bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cmd.Flags(), configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDeploy(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := newStore(ctx, s3.Options{
		Bucket:       cfg.S3.Bucket,
		Region:       cfg.S3.Region,
		Endpoint:     cfg.S3.Endpoint,
		PathStyle:    cfg.S3.PathStyle,
		ACL:          cfg.S3.ACL,
		CacheControl: cfg.S3.CacheControl,
	})
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	var bar *progressbar.ProgressBar
	if progress {
		bar = ui.NewUploadBar(0, os.Stderr)
		store = ui.WithProgress(store, bar)
	}

	d, err := uploader.New(uploader.Config{
		Store:       store,
		Source:      cfg.FileSource(),
		Destination: cfg.Destination,
		Version:     cfg.Version,
		NoLatest:    !cfg.Latest,
		Logger:      log.WithName("deploy"),
	})
	if err != nil {
		return err
	}

	manifest := d.Manifest()
	if bar != nil {
		bar.ChangeMax(manifest.Uploads())
	}

	log.Info("deploying", "bucket", cfg.S3.Bucket, "destination", cfg.Destination, "version", cfg.Version, "files", len(manifest.Files))
	if err := d.DeployAll(ctx); err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	if cfg.Manifest != "" {
		if err := manifest.Write(cfg.Manifest); err != nil {
			return err
		}
		log.Info("wrote manifest", "path", cfg.Manifest)
	}

	log.Info("deploy completed")
	return nil
}
