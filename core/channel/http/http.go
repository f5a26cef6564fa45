// Package http serves the explorer pages over HTTP.
//
// Routes follow the invocation URL convention
// /{format}/{component}/{kind}/{name}/. The UI format renders pages;
// output formats resolve the operation and report that execution is not
// available here.
package http

import (
	"net/http"
	"sync/atomic"

	"github.com/artpar/apiexplorer/adapters/metrics"
	"github.com/artpar/apiexplorer/core/terminology"
	"github.com/artpar/apiexplorer/core/webui"
	"github.com/artpar/apiexplorer/pkg/jsonapi"
	"github.com/artpar/apiexplorer/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Deps contains the channel's dependencies.
type Deps struct {
	Registry ports.ComponentRegistry
	Composer *webui.Composer
	Messages *terminology.Bundle
	Language string // Fallback language preference

	IDs            ports.IDGenerator  // Request ID source, nil uses chi's generator
	Metrics        *metrics.Collector // Optional
	MetricsHandler http.Handler       // Optional, served at MetricsPath
	MetricsPath    string
	Logger         zerolog.Logger
}

// view is the hot-swappable part of the channel.
type view struct {
	composer *webui.Composer
	messages *terminology.Bundle
	language string
}

// Channel implements the HTTP channel for the explorer.
type Channel struct {
	router   chi.Router
	registry ports.ComponentRegistry
	metrics  *metrics.Collector
	logger   zerolog.Logger
	view     atomic.Pointer[view]
}

// New creates a new HTTP channel.
func New(deps Deps) *Channel {
	c := &Channel{
		router:   chi.NewRouter(),
		registry: deps.Registry,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
	}
	c.Update(deps.Composer, deps.Messages, deps.Language)

	r := c.router
	if deps.IDs != nil {
		r.Use(RequestIDMiddleware(deps.IDs))
	} else {
		r.Use(middleware.RequestID)
	}
	r.Use(middleware.RealIP)
	r.Use(NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(NewMetricsMiddleware(deps.Metrics))
	}

	r.Get("/health", c.handleHealth)
	if deps.MetricsHandler != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, deps.MetricsHandler)
	}

	r.Get("/", c.handleIndex)
	for _, pattern := range []string{
		"/{format}",
		"/{format}/{component}",
		"/{format}/{component}/{kind}",
		"/{format}/{component}/{kind}/{name}",
	} {
		r.Get(pattern, c.handleExplore)
		r.Get(pattern+"/", c.handleExplore)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, jsonapi.ErrNotFound("page"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed").
			Detailf("%s is not supported", r.Method).
			Build())
	})

	return c
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return "http"
}

// Handler returns the HTTP handler.
func (c *Channel) Handler() http.Handler {
	return c.router
}

// Update swaps the composer and message bundle used for new requests.
// Nil messages fall back to the English bundle.
func (c *Channel) Update(composer *webui.Composer, messages *terminology.Bundle, language string) {
	if messages == nil {
		messages = terminology.NewBundle()
	}
	c.view.Store(&view{
		composer: composer,
		messages: messages,
		language: language,
	})
}
