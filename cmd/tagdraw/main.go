package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tagdraw/internal/collector"
	"tagdraw/internal/config"
	"tagdraw/internal/sampler"
	"tagdraw/internal/tui"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tagdraw",
	Short: "Random tag sets drawn from danbooru posts",
	Long: `tagdraw pools the tags of randomly selected danbooru posts and draws
a random sample for you: a fixed number of tags, or a number rolled from a
range. Run without arguments for the interactive interface; use "fetch" for
a one-shot draw on the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Configuration first; everything downstream reads viper.
		if err := config.Load(cfgFile); err != nil {
			return err
		}

		// 2. Logging. The interactive screen owns the terminal, so the
		// root command (the only one without a parent) logs to a file
		// or not at all.
		var err error
		if cmd.Parent() == nil {
			logger, err = interactiveLogger()
		} else {
			logger, err = terminalLogger()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := collector.New(logger)
		if err != nil {
			return err
		}
		logger.Info("starting interactive session",
			zap.String("mode", config.CollectorMode()))
		return tui.Run(col, sampler.PolicyFromConfig(), logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tagdraw " + config.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.tagdraw.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().String("mode", "",
		"collector mode: danbooru or mock")
	if err := viper.BindPFlag(config.KeyCollectorMode, rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(versionCmd)
}

// terminalLogger is the JSON-to-stderr logger for one-shot commands.
func terminalLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return log, nil
}

// interactiveLogger writes to the configured log file, or discards
// everything when none is set.
func interactiveLogger() (*zap.Logger, error) {
	path := config.LogFile()
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return log, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
