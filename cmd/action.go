package cmd

import (
	"unibin/internal/action"
	"unibin/internal/logger"

	"github.com/spf13/cobra"
)

var actionCmd = &cobra.Command{
	Use:   "action",
	Short: "Run as a GitHub Actions step using the folder1, folder2 and output inputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()
		host := action.New(cmd.OutOrStdout(), nil)

		in, err := host.Inputs()
		if err != nil {
			host.Fail(err)
			return err
		}

		report, err := newMerger(host).Run(cmd.Context(), in.Folder1, in.Folder2, in.Output)
		host.Publish(in, report)
		if err != nil {
			host.Fail(err)
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(actionCmd)
}
