package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shopify/js-uploader/internal/executor"
	"github.com/Shopify/js-uploader/internal/ui"
	"github.com/Shopify/js-uploader/internal/uploader"
)

func newPublishCmd() *cobra.Command {
	var yes bool

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the package to a registry",
		Long: `Run "npm publish" or "yarn publish" in the current directory.

Output of the publish command is logged; a failing publish fails this command.`,
	}
	publishCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	publishCmd.AddCommand(&cobra.Command{
		Use:   "npm",
		Short: "Run npm publish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, uploader.NPMPublishCommand, yes, (*uploader.Deployer).PublishNPM)
		},
	})
	publishCmd.AddCommand(&cobra.Command{
		Use:   "yarn",
		Short: "Run yarn publish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, uploader.YarnPublishCommand, yes, (*uploader.Deployer).PublishYarn)
		},
	})

	return publishCmd
}

type publishFunc func(*uploader.Deployer, context.Context) (string, error)

func runPublish(cmd *cobra.Command, command string, yes bool, publish publishFunc) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tool := strings.Fields(command)[0]
	if _, err := executor.LookPath(tool); err != nil {
		return err
	}

	if !yes {
		ok, err := ui.Confirm(fmt.Sprintf("Run %q", command), os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			log.Info("publish cancelled")
			return nil
		}
	}

	d, err := uploader.New(uploader.Config{
		Source: uploader.ExplicitFiles{},
		Runner: newRunner(),
		Logger: log.WithName("publish"),
	})
	if err != nil {
		return err
	}

	if _, err := publish(d, ctx); err != nil {
		return err
	}
	return nil
}
