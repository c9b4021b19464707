// Root command configuration for the i3timer CLI.
// Defines global flags, logging setup, help output, and top-level command metadata.
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sandover/i3timer/internal/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	globalOpts timer.GlobalOptions

	logger    = slog.Default()
	logCloser io.Closer
)

// rootCmd runs a single block invocation when called without a subcommand, so
// `command=i3timer` works in an i3blocks config.
var rootCmd = &cobra.Command{
	Use:   "i3timer",
	Short: "A countdown/stopwatch block for status bars.",
	Long: `i3timer is a countdown and stopwatch for i3blocks and other JSON status bars.
Each run reads the previous snapshot from the environment, applies the click or tick,
and prints the next snapshot as JSON.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlock(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigPath, "config", "", "Config file (YAML, or JSON with comments)")
	flags.StringArrayVar(&globalOpts.Overrides, "set", nil, "Override a configuration key (key=value, repeatable)")
	flags.StringVar(&globalOpts.LogFile, "log-file", "", "Append debug logs to this file (default: $log_file)")
	flags.BoolVarP(&globalOpts.Verbose, "verbose", "v", false, "Debug logs on stderr")
	flags.DurationVar(&globalOpts.CommandTimeout, "command-timeout", timer.DefaultCommandTimeout, "Timeout for read_input_command")
	flags.DurationVar(&globalOpts.TickInterval, "tick-interval", timer.DefaultTickInterval, "Tick interval in persist mode")

	rootCmd.Version = version

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Println(timer.UsageText(timer.StdoutIsTTY()))
	})
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var err error
	logger, logCloser, err = timer.NewLogger(globalOpts, lookupEnv)
	if err != nil {
		// The block contract still holds without a log file.
		logger = slog.Default()
		logger.Warn("logging to stderr", "err", err)
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		logger.Debug("flag", "name", f.Name, "value", f.Value.String())
	})
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		exitErr(err, &globalOpts)
	}
}
