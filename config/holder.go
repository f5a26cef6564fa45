package config

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder provides thread-safe access to configuration with hot reload support.
// Listeners registered with OnChange run after every successful config
// reload and after every change to a component definition file.
type Holder struct {
	mu            sync.RWMutex
	config        *Config
	path          string
	logger        zerolog.Logger
	watcher       *fsnotify.Watcher
	watchConfig   bool
	componentsDir string
	onChange      []func(*Config)
	stopCh        chan struct{}
	stopOnce      sync.Once
}

// NewHolder creates a new config holder and loads the initial configuration.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	return &Holder{
		config: cfg,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Get returns the current configuration (thread-safe).
func (h *Holder) Get() *Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.config
}

// Path returns the absolute path of the config file.
func (h *Holder) Path() string {
	return h.path
}

// Reload reloads the configuration from disk.
// Returns error if loading fails (keeps old config).
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading configuration")

	newCfg, err := Load(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("config reload failed, keeping old config")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	oldCfg := h.config
	h.config = newCfg
	h.mu.Unlock()

	h.logChanges(oldCfg, newCfg)

	if oldCfg.Components.Dir != newCfg.Components.Dir {
		h.rewatchComponents(newCfg.Components.Dir)
	}

	h.notify(newCfg)

	h.logger.Info().Msg("configuration reloaded successfully")
	return nil
}

// Refresh notifies listeners with the current configuration without
// re-reading the config file. Used when component definitions change.
func (h *Holder) Refresh() {
	h.notify(h.Get())
}

// OnChange registers a callback to be called when config changes.
func (h *Holder) OnChange(fn func(*Config)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

func (h *Holder) notify(cfg *Config) {
	h.mu.RLock()
	listeners := make([]func(*Config), len(h.onChange))
	copy(listeners, h.onChange)
	h.mu.RUnlock()

	for _, fn := range listeners {
		fn(cfg)
	}
}

// WatchFile starts watching the config file for changes.
// Changes trigger automatic reload.
func (h *Holder) WatchFile() error {
	if err := h.ensureWatcher(); err != nil {
		return err
	}

	// Watch the directory (more reliable for editors that do atomic saves)
	dir := filepath.Dir(h.path)
	if err := h.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	h.mu.Lock()
	h.watchConfig = true
	h.mu.Unlock()

	h.logger.Info().Str("path", h.path).Msg("watching config file for changes")
	return nil
}

// WatchDir starts watching the components directory. Writes, creates,
// removals and renames of definition files trigger Refresh. Only the top
// level of the directory is watched.
func (h *Holder) WatchDir() error {
	if err := h.ensureWatcher(); err != nil {
		return err
	}

	dir, err := filepath.Abs(h.Get().Components.Dir)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	if err := h.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch components directory: %w", err)
	}

	h.mu.Lock()
	h.componentsDir = dir
	h.mu.Unlock()

	h.logger.Info().Str("dir", dir).Msg("watching component definitions for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading config")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	h.logger.Info().Msg("listening for SIGHUP to reload config")
}

// Stop stops watching for file changes and signals. Safe to call twice.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		h.mu.Lock()
		w := h.watcher
		h.mu.Unlock()
		if w != nil {
			w.Close()
		}
	})
}

func (h *Holder) ensureWatcher() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop(watcher)
	return nil
}

func (h *Holder) rewatchComponents(newDir string) {
	h.mu.Lock()
	oldDir := h.componentsDir
	w := h.watcher
	h.mu.Unlock()

	if oldDir == "" || w == nil {
		return
	}

	dir, err := filepath.Abs(newDir)
	if err != nil {
		h.logger.Error().Err(err).Str("dir", newDir).Msg("resolve components directory")
		return
	}

	// The config directory stays watched when it is also the components directory.
	if oldDir != filepath.Dir(h.path) {
		_ = w.Remove(oldDir)
	}
	if err := w.Add(dir); err != nil {
		h.logger.Error().Err(err).Str("dir", dir).Msg("watch components directory")
		return
	}

	h.mu.Lock()
	h.componentsDir = dir
	h.mu.Unlock()

	h.logger.Info().Str("old", oldDir).Str("new", dir).Msg("components directory changed")
}

func (h *Holder) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			h.handleEvent(event)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) handleEvent(event fsnotify.Event) {
	h.mu.RLock()
	watchConfig := h.watchConfig
	componentsDir := h.componentsDir
	h.mu.RUnlock()

	name := filepath.Clean(event.Name)

	if watchConfig && name == h.path {
		// React to write or create (atomic save = create)
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		h.logger.Debug().
			Str("event", event.Op.String()).
			Str("file", event.Name).
			Msg("config file changed")

		if err := h.Reload(); err != nil {
			h.logger.Error().Err(err).Msg("file watch reload failed")
		}
		return
	}

	if componentsDir == "" || filepath.Dir(name) != componentsDir || !isDefinitionFile(name) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	h.logger.Debug().
		Str("event", event.Op.String()).
		Str("file", event.Name).
		Msg("component definition changed")
	h.Refresh()
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

func (h *Holder) logChanges(old, new *Config) {
	if old.Logging.Level != new.Logging.Level {
		h.logger.Info().
			Str("old", old.Logging.Level).
			Str("new", new.Logging.Level).
			Msg("log level changed")
	}

	if old.UI.BaseURL != new.UI.BaseURL {
		h.logger.Info().
			Str("old", old.UI.BaseURL).
			Str("new", new.UI.BaseURL).
			Msg("base url changed")
	}

	if old.UI.FormatTag != new.UI.FormatTag {
		h.logger.Info().
			Str("old", old.UI.FormatTag).
			Str("new", new.UI.FormatTag).
			Msg("ui format tag changed")
	}

	if old.UI.Language != new.UI.Language || old.UI.MessagesFile != new.UI.MessagesFile {
		h.logger.Info().
			Str("language", new.UI.Language).
			Str("messages_file", new.UI.MessagesFile).
			Msg("ui messages changed")
	}

	for _, field := range NonReloadableFields() {
		if changed(old, new, field) {
			h.logger.Warn().Str("field", field).Msg("change requires restart")
		}
	}
}

func changed(old, new *Config, field string) bool {
	switch field {
	case "server.host":
		return old.Server.Host != new.Server.Host
	case "server.port":
		return old.Server.Port != new.Server.Port
	case "logging.format":
		return old.Logging.Format != new.Logging.Format
	case "metrics.enabled":
		return old.Metrics.Enabled != new.Metrics.Enabled
	case "metrics.path":
		return old.Metrics.Path != new.Metrics.Path
	}
	return false
}

// ReloadableFields returns which fields can be changed without restart.
func ReloadableFields() []string {
	return []string{
		"ui.base_url",
		"ui.format_tag",
		"ui.language",
		"ui.messages_file",
		"components.dir",
		"logging.level",
	}
}

// NonReloadableFields returns which fields require a restart.
func NonReloadableFields() []string {
	return []string{
		"server.host",
		"server.port",
		"logging.format",
		"metrics.enabled",
		"metrics.path",
	}
}
