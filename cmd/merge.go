package cmd

import (
	"fmt"

	"unibin/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [folder1] [folder2] [output]",
	Short: "Copy folder1 to output and merge its executables with folder2's",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()
		folder1, folder2, output := args[0], args[1], args[2]

		logger.Log.Info("starting merge",
			zap.String("folder1", folder1),
			zap.String("folder2", folder2),
			zap.String("output", output))

		report, err := newMerger(nil).Run(cmd.Context(), folder1, folder2, output)
		if err != nil {
			logger.Log.Error("merge failed",
				zap.String("stage", string(report.Stage)),
				zap.Error(err))
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "done: %d merged, %d copied unchanged\n", len(report.Merged), report.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
