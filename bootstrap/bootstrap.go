// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/artpar/apiexplorer/adapters/idgen"
	"github.com/artpar/apiexplorer/adapters/metrics"
	"github.com/artpar/apiexplorer/config"
	apihttp "github.com/artpar/apiexplorer/core/channel/http"
	"github.com/artpar/apiexplorer/core/registry"
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"github.com/artpar/apiexplorer/core/webui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Registry   *registry.Registry
	Metrics    *metrics.Collector // nil when metrics are disabled
	Channel    *apihttp.Channel
	HTTPServer *http.Server

	// Holder is set when the app was created with hot reload.
	Holder *config.Holder

	mu       sync.RWMutex
	config   *config.Config
	composer *webui.Composer
}

// Options tune application construction.
type Options struct {
	// LogOutput receives log lines. Defaults to os.Stdout.
	LogOutput io.Writer
}

// New creates and initializes the application from cfg.
func New(cfg *config.Config) (*App, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions creates and initializes the application with custom options.
func NewWithOptions(cfg *config.Config, opts Options) (*App, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stdout
	}
	logger := setupLogger(cfg.Logging, opts.LogOutput)

	logger.Info().Msg("initializing apiexplorer")

	a := &App{
		Logger:   logger,
		Registry: registry.New(),
		config:   cfg,
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		a.Metrics = metrics.NewWithRegistry(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	comps, err := LoadComponents(cfg.Components.Dir)
	if err != nil {
		return nil, err
	}
	if err := a.Registry.Replace(comps); err != nil {
		return nil, fmt.Errorf("register components: %w", err)
	}

	bundle, err := LoadMessages(cfg.UI)
	if err != nil {
		return nil, err
	}

	a.composer = newComposer(a.Registry, cfg.UI)
	a.Channel = apihttp.New(apihttp.Deps{
		Registry:       a.Registry,
		Composer:       a.composer,
		Messages:       bundle,
		Language:       cfg.UI.Language,
		IDs:            idgen.UUID{},
		Metrics:        a.Metrics,
		MetricsHandler: metricsHandler,
		MetricsPath:    cfg.Metrics.Path,
		Logger:         logger,
	})

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      a.Channel.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if a.Metrics != nil {
		a.Metrics.ComponentsLoaded.Set(float64(a.Registry.Len()))
	}

	logger.Info().
		Int("components", a.Registry.Len()).
		Str("dir", cfg.Components.Dir).
		Msg("components loaded")

	return a, nil
}

// NewWithHotReload creates the application from a config file and keeps it
// in sync with the file, the components directory and SIGHUP.
func NewWithHotReload(path string, opts Options) (*App, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stdout
	}

	// The holder logs before the app exists; it uses the file's logging
	// settings from a first load.
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	holder, err := config.NewHolder(path, setupLogger(cfg.Logging, opts.LogOutput))
	if err != nil {
		return nil, err
	}

	a, err := NewWithOptions(holder.Get(), opts)
	if err != nil {
		return nil, err
	}
	a.Holder = holder

	holder.OnChange(func(cfg *config.Config) {
		if err := a.Apply(cfg); err != nil {
			a.Logger.Error().Err(err).Msg("apply configuration failed, keeping previous state")
		}
	})

	if err := holder.WatchFile(); err != nil {
		holder.Stop()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	if err := holder.WatchDir(); err != nil {
		holder.Stop()
		return nil, fmt.Errorf("watch components: %w", err)
	}
	holder.WatchSignals()

	return a, nil
}

// Config returns the configuration currently applied.
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// Apply re-reads components and messages for cfg and swaps them in.
// Nothing changes when any part fails to load.
func (a *App) Apply(cfg *config.Config) error {
	comps, err := LoadComponents(cfg.Components.Dir)
	if err != nil {
		a.reloadFailed()
		return err
	}

	bundle, err := LoadMessages(cfg.UI)
	if err != nil {
		a.reloadFailed()
		return err
	}

	if err := a.Registry.Replace(comps); err != nil {
		a.reloadFailed()
		return fmt.Errorf("register components: %w", err)
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	composer := newComposer(a.Registry, cfg.UI)
	a.Channel.Update(composer, bundle, cfg.UI.Language)

	a.mu.Lock()
	a.config = cfg
	a.composer = composer
	a.mu.Unlock()

	if a.Metrics != nil {
		a.Metrics.ComponentsLoaded.Set(float64(a.Registry.Len()))
		a.Metrics.ConfigReloads.Inc()
		a.Metrics.ConfigLastReload.SetToCurrentTime()
	}

	a.Logger.Info().
		Int("components", a.Registry.Len()).
		Msg("configuration applied")
	return nil
}

func (a *App) reloadFailed() {
	if a.Metrics != nil {
		a.Metrics.ConfigReloadErrors.Inc()
	}
}

// Render renders one page the way the HTTP channel would, using English
// labels. An unknown component renders the root page.
func (a *App) Render(component string, kind schema.Kind, name string) (string, error) {
	a.mu.RLock()
	composer := a.composer
	a.mu.RUnlock()

	req := webui.Request{Component: component, Kind: kind, Name: name}
	if comp, ok := a.Registry.Get(component); ok {
		req.Descriptor = &comp
	}
	return composer.Render(req)
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Holder != nil {
		a.Holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// LoadComponents parses every definition file under dir.
func LoadComponents(dir string) ([]schema.Component, error) {
	comps, err := schema.ParseDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}
	return comps, nil
}

// LoadMessages returns the label bundle for ui. Without a messages file
// the bundle holds English only.
func LoadMessages(ui config.UIConfig) (*terminology.Bundle, error) {
	if ui.MessagesFile == "" {
		return terminology.NewBundle(), nil
	}
	bundle, err := terminology.LoadFile(ui.MessagesFile)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return bundle, nil
}

func newComposer(reg *registry.Registry, ui config.UIConfig) *webui.Composer {
	return webui.NewComposer(webui.ComposerDeps{
		Registry: reg,
		BaseURL:  ui.BaseURL,
		UIFormat: ui.FormatTag,
	})
}

func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
