package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/glottologist/seedmixer/internal/log"
)

const appName = "seedmixer"

// rootCmd is the root command for the seedmixer CLI. It performs no action
// itself; subcommands are registered by Initialize.
var rootCmd = &cobra.Command{
	Use:   "seedmixer",
	Short: appName + " - PIN-obfuscated, Shamir-shared mnemonic protection",
}

// Initialize registers every subcommand on the root command.
func Initialize() {
	rootCmd.AddCommand(NewCheckWordListCommand())
	rootCmd.AddCommand(NewCheckWordIndexCommand())
	rootCmd.AddCommand(NewMixCommand())
	rootCmd.AddCommand(NewUnmixCommand())
	rootCmd.AddCommand(NewShredCommand())
}

// Execute runs the root command, printing and exiting with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Log().Error("command failed", "err", err.Error())
		os.Exit(1)
	}
}
