package cmd

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/logger"
)

var (
	configPath string
	logOpts    logger.Options

	// log is set up by the root command before any subcommand runs
	log = logr.Discard()
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "js-uploader",
		Short: "Upload static JavaScript builds to S3 and purge CDN caches",
		Long: `js-uploader deploys the static artifacts of a release to an S3 bucket.

Every file is written under {destination}/{version}/{name} and, unless
--no-latest is given, under {destination}/latest/{name}. Without a version
files go to {destination}/{name}.

Configuration is read from js-uploader.yaml (or --config), JS_UPLOADER_*
environment variables and flags, in increasing order of precedence.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.NewLogger(logOpts)
			if err != nil {
				return err
			}
			log = l
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ./js-uploader.yaml)")
	logOpts.BindFlags(root.PersistentFlags())

	root.AddCommand(newDeployCmd())
	root.AddCommand(newPurgeCmd())
	root.AddCommand(newPublishCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
