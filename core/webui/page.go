package webui

import (
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"github.com/artpar/apiexplorer/ports"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Mode is the page kind selected for a request.
type Mode int

const (
	// ModeRoot lists all components.
	ModeRoot Mode = iota

	// ModeCatalog lists one component's operations.
	ModeCatalog

	// ModeForm shows the invocation form for one operation.
	ModeForm
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRoot:
		return "root"
	case ModeCatalog:
		return "catalog"
	case ModeForm:
		return "form"
	default:
		return "unknown"
	}
}

// Request carries the parsed inputs of one page render.
type Request struct {
	// Component is the requested component name.
	Component string

	// Descriptor is the registered component, nil when unknown.
	Descriptor *schema.Component

	// Kind is the requested operation kind. It may be invalid.
	Kind schema.Kind

	// Name is the requested operation name, empty for catalog pages.
	Name string
}

// ModeFor selects the page mode from which inputs are present.
func ModeFor(req Request) Mode {
	switch {
	case req.Descriptor == nil:
		return ModeRoot
	case req.Name == "":
		return ModeCatalog
	default:
		return ModeForm
	}
}

// Composer renders complete pages.
type Composer struct {
	registry ports.ComponentRegistry
	messages ports.MessageCatalog
	urls     URLs
}

// ComposerDeps contains dependencies for the composer.
type ComposerDeps struct {
	Registry ports.ComponentRegistry
	Messages ports.MessageCatalog
	BaseURL  string
	UIFormat string
}

// NewComposer creates a page composer.
func NewComposer(deps ComposerDeps) *Composer {
	messages := deps.Messages
	if messages == nil {
		messages = terminology.Default()
	}

	return &Composer{
		registry: deps.Registry,
		messages: messages,
		urls:     NewURLs(deps.BaseURL, deps.UIFormat),
	}
}

// WithMessages returns a copy of the composer using another catalog,
// e.g. one negotiated from the request's Accept-Language.
func (c *Composer) WithMessages(messages ports.MessageCatalog) *Composer {
	cp := *c
	if messages != nil {
		cp.messages = messages
	}
	return &cp
}

// URLs returns the composer's link builder.
func (c *Composer) URLs() URLs {
	return c.urls
}

// Render renders the page for req.
//
// Resolution failures are returned unchanged as *schema.APIError and no
// page is produced.
func (c *Composer) Render(req Request) (string, error) {
	renderer := NewRenderer(c.messages, c.urls)
	title := c.messages.Lookup(terminology.KeyTitle)

	component := req.Component
	if component == "" && req.Descriptor != nil {
		component = req.Descriptor.Name
	}

	head := el(atom.Head, nil,
		el(atom.Meta, attrs("charset", "utf-8")),
		el(atom.Title, nil, text(title)),
	)
	body := el(atom.Body, nil,
		el(atom.H1, nil, link(c.urls.Root(), title)),
	)

	var content []*html.Node

	switch ModeFor(req) {
	case ModeRoot:
		var names []string
		if c.registry != nil {
			names = c.registry.Names()
		}
		content = renderer.ComponentList(names)

	case ModeCatalog:
		content = renderer.Catalog(component, *req.Descriptor)

	case ModeForm:
		op, err := Resolve(*req.Descriptor, req.Kind, req.Name)
		if err != nil {
			return "", err
		}
		head.AppendChild(Script())
		content = renderer.Form(component, req.Kind, op)
	}

	if req.Descriptor != nil {
		body.AppendChild(el(atom.H2, nil,
			link(c.urls.Component(component), c.messages.Lookup(terminology.KeyComponent)+component),
		))
	}
	for _, n := range content {
		body.AppendChild(n)
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(el(atom.Html, nil, head, body))

	return Serialize([]*html.Node{doc}), nil
}
