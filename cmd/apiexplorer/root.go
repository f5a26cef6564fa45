package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "apiexplorer",
	Short: "Browse and invoke API components from a web UI",
	Long: `apiexplorer serves HTML pages for browsing the components of an API
and the views, actions and other operations each one exposes. Every
operation gets a form that navigates to its invocation URL:

  <base>/<format>/<component>/<kind>/<name>/

Quick start:
  apiexplorer validate    # Check config and component definitions
  apiexplorer serve       # Start the web UI
  apiexplorer render core # Print a page to stdout`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apiexplorer.yaml", "config file path")
}
