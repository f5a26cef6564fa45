package main

import (
	"fmt"
	"os"

	"github.com/artpar/apiexplorer/bootstrap"
	"github.com/artpar/apiexplorer/config"
	"github.com/spf13/cobra"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI server",
	Long: `Start the API explorer web UI.

The server will:
  - Load configuration from apiexplorer.yaml (or --config)
  - Or load configuration from APIEXPLORER_* environment variables
  - Load component definitions from components.dir
  - Serve browsing pages under /<format_tag>/

Environment variables (for Docker deployments):
  APIEXPLORER_COMPONENTS_DIR  - Component definitions directory (required)
  APIEXPLORER_SERVER_PORT     - Server port (default: 8080)
  APIEXPLORER_BASE_URL        - Host prefix of generated links (default: http://zap)
  APIEXPLORER_LOG_LEVEL       - Log level: debug, info, warn, error

Examples:
  apiexplorer serve
  apiexplorer serve --config /etc/apiexplorer/config.yaml
  apiexplorer serve --hot-reload=false

  # Docker (env vars only):
  APIEXPLORER_COMPONENTS_DIR=/components apiexplorer serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "reload on config, component or SIGHUP changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	if !hasConfigFile && !config.HasEnvConfig() {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "No configuration found.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Option 1: Create %s with a components.dir entry\n", cfgFile)
		fmt.Fprintln(out, "Option 2: Set APIEXPLORER_COMPONENTS_DIR environment variable")
		return nil
	}

	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with config file
		app, err = bootstrap.NewWithHotReload(cfgFile, bootstrap.Options{})
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}

		if !hasConfigFile {
			fmt.Fprintln(cmd.OutOrStdout(), "Running with environment variables (no config file)")
		}

		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
