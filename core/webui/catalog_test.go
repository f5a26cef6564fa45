package webui

import (
	"testing"

	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
)

func newTestRenderer() Renderer {
	return NewRenderer(terminology.Default(), NewURLs("", ""))
}

func TestCatalog_SkipsEmptyKinds(t *testing.T) {
	comp := schema.Component{
		Name:   "core",
		Views:  []schema.Operation{{Name: "viewA"}, {Name: "viewB"}},
		Others: []schema.Operation{{Name: "dump"}},
	}.Normalize()

	doc := parseFragment(t, newTestRenderer().Catalog("core", comp))

	headings := texts(findAll(doc, "h3"))
	if !equalStrings(headings, []string{"Views", "Others"}) {
		t.Fatalf("headings = %v, want [Views Others]", headings)
	}

	tables := findAll(doc, "table")
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(tables))
	}
	if rows := findAll(tables[0], "tr"); len(rows) != 2 {
		t.Errorf("views rows = %d, want 2", len(rows))
	}
	if rows := findAll(tables[1], "tr"); len(rows) != 1 {
		t.Errorf("others rows = %d, want 1", len(rows))
	}
}

func TestCatalog_KindOrder(t *testing.T) {
	doc := parseFragment(t, newTestRenderer().Catalog("core", coreComponent()))

	headings := texts(findAll(doc, "h3"))
	if !equalStrings(headings, []string{"Views", "Actions", "Others"}) {
		t.Errorf("headings = %v, want Views, Actions, Others", headings)
	}
}

func TestCatalog_Links(t *testing.T) {
	doc := parseFragment(t, newTestRenderer().Catalog("core", coreComponent()))

	links := findAll(doc, "a")
	want := []struct {
		href  string
		label string
	}{
		{"http://zap/UI/core/view/viewA/", "viewA"},
		{"http://zap/UI/core/view/viewB/", "viewB (baseurl)"},
		{"http://zap/UI/core/action/accessUrl/", "accessUrl (url followRedirects)"},
		{"http://zap/UI/core/action/shutdown/", "shutdown"},
		{"http://zap/UI/core/other/dump/", "dump"},
	}

	if len(links) != len(want) {
		t.Fatalf("links = %d, want %d", len(links), len(want))
	}
	for i, w := range want {
		href, _ := attr(links[i], "href")
		if href != w.href {
			t.Errorf("link[%d] href = %s, want %s", i, href, w.href)
		}
		if got := textOf(links[i]); got != w.label {
			t.Errorf("link[%d] label = %q, want %q", i, got, w.label)
		}
	}
}

func TestCatalog_PreservesRegistryOrder(t *testing.T) {
	comp := schema.Component{
		Name:    "core",
		Actions: []schema.Operation{{Name: "zeta"}, {Name: "alpha"}, {Name: "mid"}},
	}.Normalize()

	doc := parseFragment(t, newTestRenderer().Catalog("core", comp))

	got := texts(findAll(doc, "a"))
	if !equalStrings(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("rows = %v, want registry order", got)
	}
}

func TestCatalog_EmptyComponent(t *testing.T) {
	nodes := newTestRenderer().Catalog("core", schema.Component{Name: "core"})
	if len(nodes) != 0 {
		t.Errorf("Catalog() returned %d nodes for empty component, want 0", len(nodes))
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	r := newTestRenderer()
	a := Serialize(r.Catalog("core", coreComponent()))
	b := Serialize(r.Catalog("core", coreComponent()))
	if a != b {
		t.Error("Catalog() output differs between identical calls")
	}
}

func TestComponentList(t *testing.T) {
	doc := parseFragment(t, newTestRenderer().ComponentList([]string{"core", "spider"}))

	if h := texts(findAll(doc, "h3")); !equalStrings(h, []string{"Components"}) {
		t.Errorf("headings = %v, want [Components]", h)
	}

	links := findAll(doc, "a")
	if len(links) != 2 {
		t.Fatalf("links = %d, want 2", len(links))
	}
	href, _ := attr(links[1], "href")
	if href != "http://zap/UI/spider/" || textOf(links[1]) != "spider" {
		t.Errorf("link = %s %q", href, textOf(links[1]))
	}
}

func TestComponentList_Empty(t *testing.T) {
	doc := parseFragment(t, newTestRenderer().ComponentList(nil))
	if n := len(findAll(doc, "table")); n != 0 {
		t.Errorf("tables = %d, want 0", n)
	}
}

func TestOperationLabel(t *testing.T) {
	tests := []struct {
		op   schema.Operation
		want string
	}{
		{schema.Operation{Name: "version", Params: []string{}}, "version"},
		{schema.Operation{Name: "version"}, "version"},
		{schema.Operation{Name: "urls", Params: []string{"baseurl"}}, "urls (baseurl)"},
		{schema.Operation{Name: "scan", Params: []string{"url", "recurse"}}, "scan (url recurse)"},
	}

	for _, tt := range tests {
		if got := operationLabel(tt.op); got != tt.want {
			t.Errorf("operationLabel(%s) = %q, want %q", tt.op.Name, got, tt.want)
		}
	}
}
