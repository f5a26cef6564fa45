package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/artpar/apiexplorer/bootstrap"
	"github.com/artpar/apiexplorer/config"
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [component [kind name]]",
	Short: "Print a page to stdout",
	Long: `Render one page without starting a server.

  apiexplorer render                        # root page
  apiexplorer render core                   # catalog of core
  apiexplorer render core action accessUrl  # form for core's accessUrl action

A name that does not resolve exits with the error code (bad_type,
bad_view, bad_action or bad_other).`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 || len(args) > 3 {
			return fmt.Errorf("expected 0, 1 or 3 arguments, got %d", len(args))
		}
		return nil
	},
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	app, err := bootstrap.NewWithOptions(cfg, bootstrap.Options{LogOutput: io.Discard})
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	var component, kind, name string
	if len(args) > 0 {
		component = args[0]
	}
	if len(args) == 3 {
		kind, name = args[1], args[2]
	}

	page, err := app.Render(component, schema.Kind(kind), name)
	if err != nil {
		var apiErr *schema.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%s: cannot resolve %s %q", apiErr.Code(), kind, name)
		}
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), page)
	return err
}
