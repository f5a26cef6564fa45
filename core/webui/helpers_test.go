package webui

import (
	"strings"
	"testing"

	"github.com/artpar/apiexplorer/core/schema"
	"golang.org/x/net/html"
)

// staticRegistry is a fixed component set for tests.
type staticRegistry map[string]schema.Component

func (s staticRegistry) Names() []string {
	names := make([]string, 0, len(s))
	for _, n := range []string{"ascan", "core", "spider"} {
		if _, ok := s[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

func (s staticRegistry) Get(name string) (schema.Component, bool) {
	c, ok := s[name]
	return c, ok
}

func coreComponent() schema.Component {
	return schema.Component{
		Name:  "core",
		Views: []schema.Operation{{Name: "viewA"}, {Name: "viewB", Params: []string{"baseurl"}}},
		Actions: []schema.Operation{
			{Name: "accessUrl", Params: []string{"url", "followRedirects"}},
			{Name: "shutdown"},
		},
		Others: []schema.Operation{{Name: "dump"}},
	}.Normalize()
}

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

// parseFragment parses nodes rendered outside a full document.
func parseFragment(t *testing.T, nodes []*html.Node) *html.Node {
	t.Helper()
	return parseHTML(t, "<!DOCTYPE html><html><body>"+Serialize(nodes)+"</body></html>")
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func texts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = textOf(n)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
