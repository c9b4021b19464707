// Purpose: Wire cobra subcommands to internal timer.RunX implementations.
// Exports: none.
// Role: CLI composition layer for user-facing commands.
// Invariants: Flags and command names align with help/quickstart docs.
// Notes: init functions register commands and their flags.
package main

import (
	"fmt"

	"github.com/sandover/i3timer/internal/timer"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(persistCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(quickstartCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBlock(cmd *cobra.Command) error {
	return timer.RunBlock(cmd.Context(), globalOpts, processEnv())
}

// -- block --
var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Print one JSON snapshot (one-shot i3blocks mode)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBlock(cmd)
	},
}

// -- persist --
var persistCmd = &cobra.Command{
	Use:   "persist",
	Short: "Tick continuously and read click events from stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return timer.RunPersist(ctx, globalOpts, processEnv())
	},
}

// -- preview --
var previewFrames int

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render snapshots in the terminal without running commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if previewFrames < 1 {
			return fmt.Errorf("usage: --frames must be at least 1")
		}
		return timer.RunPreview(globalOpts, processEnv(), previewFrames)
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewFrames, "frames", 1, "Number of one-second frames to simulate")
}

// -- quickstart --
var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Show i3blocks setup guide",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(timer.QuickstartText(timer.StdoutIsTTY()))
	},
}

// -- version --
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}
