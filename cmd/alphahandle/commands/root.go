package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alphahandle",
	Short: "Scorecards for social-media stock calls",
	Long: `alphahandle Unified CLI

Analyzes an author's public stock calls, resolves them against market
data, and maintains a performance scorecard per author.

Usage:
  go run ./cmd/alphahandle [command]

Examples:
  go run ./cmd/alphahandle analyze buccocapital
  go run ./cmd/alphahandle api
  go run ./cmd/alphahandle scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
