package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"unibin/internal/config"
	"unibin/internal/exec"
	"unibin/internal/logger"
	"unibin/internal/macho"
	"unibin/internal/universal"

	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:          "unibin",
	Short:        "Combine two single-architecture macOS build trees into universal binaries",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		// RUNNER_DEBUG is set when a workflow is re-run with debug logging.
		logger.Init(debug || os.Getenv("RUNNER_DEBUG") == "1")

		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newMerger(reporter universal.Reporter) *universal.Merger {
	executor := exec.NewRealExecutor()

	var classifier macho.Classifier = macho.NewHeaderClassifier()
	if cfg.Classifier == config.ClassifierFile {
		classifier = macho.NewCommandClassifier(cfg.FilePath, executor)
	}

	return universal.NewMerger(cfg.LipoPath, classifier, executor, reporter)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./unibin.yaml or ~/.unibin/unibin.yaml)")
}
