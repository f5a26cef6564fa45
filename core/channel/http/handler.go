package http

import (
	"errors"
	"net/http"
	"net/url"
	"slices"

	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/webui"
	"github.com/artpar/apiexplorer/pkg/jsonapi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const htmlContentType = "text/html; charset=utf-8"

func (c *Channel) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonapi.WriteMeta(w, http.StatusOK, jsonapi.Meta{
		"status":     "ok",
		"components": len(c.registry.Names()),
	})
}

func (c *Channel) handleIndex(w http.ResponseWriter, r *http.Request) {
	ui := c.view.Load().composer.URLs().UIFormat
	http.Redirect(w, r, "/"+url.PathEscape(ui)+"/", http.StatusFound)
}

func (c *Channel) handleExplore(w http.ResponseWriter, r *http.Request) {
	v := c.view.Load()
	format := pathParam(r, "format")

	switch {
	case format == v.composer.URLs().UIFormat:
		c.servePage(w, r, v)
	case slices.Contains(webui.OutputFormats, format):
		c.serveOutput(w, r, format)
	default:
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusBadRequest, "bad_format", "Bad Format").
			Detailf("unknown format %q", format).
			Parameter("format").
			ID(middleware.GetReqID(r.Context())).
			Build())
	}
}

func (c *Channel) servePage(w http.ResponseWriter, r *http.Request, v *view) {
	req := webui.Request{
		Component: pathParam(r, "component"),
		Kind:      schema.Kind(pathParam(r, "kind")),
		Name:      pathParam(r, "name"),
	}
	if req.Component != "" {
		if comp, ok := c.registry.Get(req.Component); ok {
			req.Descriptor = &comp
		}
	}

	prefs := append(slices.Clone(r.Header.Values("Accept-Language")), v.language)
	messages := v.messages.Catalog(prefs...)

	page, err := v.composer.WithMessages(messages).Render(req)
	if err != nil {
		c.writeResolutionError(w, r, req.Name, err)
		return
	}

	if c.metrics != nil {
		c.metrics.PagesRendered.WithLabelValues(webui.ModeFor(req).String()).Inc()
	}

	w.Header().Set("Content-Type", htmlContentType)
	w.Header().Set("Content-Language", messages.Language().String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		c.logger.Error().Err(err).Msg("failed to write page")
	}
}

// serveOutput resolves the operation addressed by an output format URL.
// Execution is outside this service, so a resolved operation answers 501.
func (c *Channel) serveOutput(w http.ResponseWriter, r *http.Request, format string) {
	component := pathParam(r, "component")
	kind := schema.Kind(pathParam(r, "kind"))
	name := pathParam(r, "name")

	comp, ok := c.registry.Get(component)
	if !ok {
		jsonapi.WriteError(w, jsonapi.NewError(http.StatusNotFound, "bad_component", "Not Found").
			Detailf("component %q is not registered", component).
			Parameter("component").
			ID(middleware.GetReqID(r.Context())).
			Build())
		return
	}

	op, err := webui.Resolve(comp, kind, name)
	if err != nil {
		c.writeResolutionError(w, r, name, err)
		return
	}

	jsonapi.WriteError(w, jsonapi.NewError(http.StatusNotImplemented, "not_implemented", "Not Implemented").
		Detailf("%s output of %s %s is produced by the API server", format, op.Kind, op.Name).
		ID(middleware.GetReqID(r.Context())).
		Meta("component", component).
		Meta("kind", string(op.Kind)).
		Meta("name", op.Name).
		Meta("params", op.Params).
		Build())
}

func (c *Channel) writeResolutionError(w http.ResponseWriter, r *http.Request, name string, err error) {
	var apiErr *schema.APIError
	if !errors.As(err, &apiErr) {
		c.logger.Error().Err(err).Msg("render failed")
		jsonapi.WriteError(w, jsonapi.ErrInternal(""))
		return
	}

	if c.metrics != nil {
		c.metrics.ResolutionFailures.WithLabelValues(apiErr.Code()).Inc()
	}

	c.logger.Debug().
		Str("code", apiErr.Code()).
		Str("name", name).
		Str("request_id", middleware.GetReqID(r.Context())).
		Msg("operation not resolved")

	jsonapi.WriteError(w, ResolutionError(apiErr, name))
}

// ResolutionError maps a resolver failure to a JSON:API error.
// bad_type is a malformed request (400); the per-kind failures are 404.
func ResolutionError(apiErr *schema.APIError, name string) jsonapi.Error {
	if apiErr.Type == schema.BadType {
		return jsonapi.NewError(http.StatusBadRequest, apiErr.Code(), "Bad Request").
			Detail("operation name missing or kind not recognized").
			Parameter("kind").
			Build()
	}
	return jsonapi.NewError(http.StatusNotFound, apiErr.Code(), "Not Found").
		Detailf("no operation named %q", name).
		Parameter("name").
		Build()
}

// pathParam returns a decoded route parameter. chi matches on the raw path
// when the request path carries escapes, leaving parameters encoded.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
