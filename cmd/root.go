package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vocabloom",
	Short: "Track vocabulary and schedule spaced-repetition reviews",
	Long: `vocabloom turns words you encounter into persistently tracked
learning items, schedules each one with an SM-2 derived algorithm, and
walks you through review sessions when items come due.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
