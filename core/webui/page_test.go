package webui

import (
	"errors"
	"strings"
	"testing"

	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"golang.org/x/text/language"
)

func newTestComposer() (*Composer, staticRegistry) {
	reg := staticRegistry{
		"core":   coreComponent(),
		"spider": schema.Component{Name: "spider"}.Normalize(),
	}
	return NewComposer(ComposerDeps{Registry: reg}), reg
}

func descriptor(reg staticRegistry, name string) *schema.Component {
	c, ok := reg.Get(name)
	if !ok {
		return nil
	}
	return &c
}

func TestModeFor(t *testing.T) {
	comp := coreComponent()

	tests := []struct {
		req  Request
		want Mode
	}{
		{Request{}, ModeRoot},
		{Request{Component: "unknown", Name: "x"}, ModeRoot},
		{Request{Component: "core", Descriptor: &comp}, ModeCatalog},
		{Request{Component: "core", Descriptor: &comp, Kind: schema.KindView}, ModeCatalog},
		{Request{Component: "core", Descriptor: &comp, Kind: schema.KindView, Name: "viewA"}, ModeForm},
	}

	for _, tt := range tests {
		if got := ModeFor(tt.req); got != tt.want {
			t.Errorf("ModeFor(%+v) = %s, want %s", tt.req, got, tt.want)
		}
	}
}

func TestComposer_Root(t *testing.T) {
	c, _ := newTestComposer()

	out, err := c.Render(Request{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := parseHTML(t, out)

	if title := texts(findAll(doc, "title")); !equalStrings(title, []string{"API UI"}) {
		t.Errorf("title = %v", title)
	}

	h1 := findAll(doc, "h1")
	if len(h1) != 1 {
		t.Fatalf("h1 = %d, want 1", len(h1))
	}
	if href, _ := attr(findAll(h1[0], "a")[0], "href"); href != "http://zap/UI/" {
		t.Errorf("root link = %s", href)
	}
	if n := len(findAll(doc, "h2")); n != 0 {
		t.Errorf("root page should have no breadcrumb, got %d h2", n)
	}

	var labels, hrefs []string
	for _, a := range findAll(findAll(doc, "table")[0], "a") {
		labels = append(labels, textOf(a))
		href, _ := attr(a, "href")
		hrefs = append(hrefs, href)
	}
	if !equalStrings(labels, []string{"core", "spider"}) {
		t.Errorf("components = %v, want [core spider]", labels)
	}
	if !equalStrings(hrefs, []string{"http://zap/UI/core/", "http://zap/UI/spider/"}) {
		t.Errorf("hrefs = %v", hrefs)
	}
}

func TestComposer_Catalog(t *testing.T) {
	c, reg := newTestComposer()

	out, err := c.Render(Request{Component: "core", Descriptor: descriptor(reg, "core")})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := parseHTML(t, out)

	h2 := findAll(doc, "h2")
	if len(h2) != 1 {
		t.Fatalf("h2 = %d, want 1", len(h2))
	}
	if got := textOf(h2[0]); got != "Component: core" {
		t.Errorf("breadcrumb = %q", got)
	}
	if href, _ := attr(findAll(h2[0], "a")[0], "href"); href != "http://zap/UI/core/" {
		t.Errorf("breadcrumb href = %s", href)
	}

	if h := texts(findAll(doc, "h3")); !equalStrings(h, []string{"Views", "Actions", "Others"}) {
		t.Errorf("sections = %v", h)
	}
	if n := len(findAll(doc, "script")); n != 0 {
		t.Errorf("catalog page should not carry a script, got %d", n)
	}
}

func TestComposer_Catalog_EmptyComponent(t *testing.T) {
	c, reg := newTestComposer()

	out, err := c.Render(Request{Component: "spider", Descriptor: descriptor(reg, "spider")})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := parseHTML(t, out)
	if n := len(findAll(doc, "table")); n != 0 {
		t.Errorf("tables = %d, want 0", n)
	}
	if n := len(findAll(doc, "h2")); n != 1 {
		t.Errorf("breadcrumb count = %d, want 1", n)
	}
}

func TestComposer_Form(t *testing.T) {
	c, reg := newTestComposer()

	out, err := c.Render(Request{
		Component:  "core",
		Descriptor: descriptor(reg, "core"),
		Kind:       schema.KindAction,
		Name:       "accessUrl",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := parseHTML(t, out)

	head := findAll(doc, "head")[0]
	if n := len(findAll(head, "script")); n != 1 {
		t.Errorf("head scripts = %d, want 1", n)
	}
	if h := texts(findAll(doc, "h3")); !equalStrings(h, []string{"Action: accessUrl"}) {
		t.Errorf("heading = %v", h)
	}
	if n := len(findAll(doc, "select")); n != 1 {
		t.Errorf("selects = %d, want 1", n)
	}
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("output should start with doctype: %.40s", out)
	}
}

func TestComposer_Form_Errors(t *testing.T) {
	c, reg := newTestComposer()
	core := descriptor(reg, "core")

	tests := []struct {
		label string
		kind  schema.Kind
		name  string
		want  error
	}{
		{"missing view", schema.KindView, "missing", schema.ErrBadView},
		{"missing action", schema.KindAction, "missing", schema.ErrBadAction},
		{"missing other", schema.KindOther, "missing", schema.ErrBadOther},
		{"unknown kind", schema.Kind("unknownKind"), "viewA", schema.ErrBadType},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			out, err := c.Render(Request{Component: "core", Descriptor: core, Kind: tt.kind, Name: tt.name})
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
			if out != "" {
				t.Error("Render() should not produce a page on failure")
			}

			var apiErr *schema.APIError
			if !errors.As(err, &apiErr) {
				t.Errorf("error should be *schema.APIError, got %T", err)
			}
		})
	}
}

func TestComposer_Deterministic(t *testing.T) {
	c, reg := newTestComposer()
	reqs := []Request{
		{},
		{Component: "core", Descriptor: descriptor(reg, "core")},
		{Component: "core", Descriptor: descriptor(reg, "core"), Kind: schema.KindAction, Name: "accessUrl"},
	}

	for _, req := range reqs {
		a, err := c.Render(req)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := c.Render(req)
		if a != b {
			t.Errorf("mode %s: output differs between identical calls", ModeFor(req))
		}
	}
}

func TestComposer_CustomURLs(t *testing.T) {
	reg := staticRegistry{"core": coreComponent()}
	c := NewComposer(ComposerDeps{Registry: reg, BaseURL: "https://explorer.local/", UIFormat: "BROWSE"})

	out, err := c.Render(Request{Component: "core", Descriptor: descriptor(reg, "core")})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `href="https://explorer.local/BROWSE/core/view/viewA/"`) {
		t.Errorf("custom base/format not applied: %s", out)
	}
}

func TestComposer_WithMessages(t *testing.T) {
	c, reg := newTestComposer()

	b := terminology.NewBundle()
	b.Add(language.German, terminology.Labels{
		terminology.KeyViews:     "Ansichten",
		terminology.KeyComponent: "Komponente: ",
	})
	de := c.WithMessages(b.Catalog("de"))

	out, err := de.Render(Request{Component: "core", Descriptor: descriptor(reg, "core")})
	if err != nil {
		t.Fatal(err)
	}
	doc := parseHTML(t, out)

	if got := textOf(findAll(doc, "h2")[0]); got != "Komponente: core" {
		t.Errorf("breadcrumb = %q", got)
	}
	if h := texts(findAll(doc, "h3")); h[0] != "Ansichten" {
		t.Errorf("first section = %q, want Ansichten", h[0])
	}

	// The original composer is unchanged.
	out, _ = c.Render(Request{Component: "core", Descriptor: descriptor(reg, "core")})
	if !strings.Contains(out, "Component: core") {
		t.Error("WithMessages mutated the original composer")
	}
}

func TestComposer_EscapesComponentNames(t *testing.T) {
	reg := staticRegistry{}
	hostile := schema.Component{
		Name:  `<img src=x onerror=alert(1)>`,
		Views: []schema.Operation{{Name: "v"}},
	}.Normalize()

	c := NewComposer(ComposerDeps{Registry: reg})
	out, err := c.Render(Request{Component: hostile.Name, Descriptor: &hostile})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "<img") {
		t.Errorf("component name injected markup: %s", out)
	}
	if !strings.Contains(out, "http://zap/UI/%3Cimg%20src=x%20onerror=alert%281%29%3E/") {
		t.Errorf("component path segment not escaped: %s", out)
	}
}
