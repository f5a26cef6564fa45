package webui

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// el builds an element node with attributes and children.
// Nil children are skipped.
func el(tag atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// attrs builds an attribute list from key/value pairs.
func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func link(href, label string) *html.Node {
	return el(atom.A, attrs("href", href), text(label))
}

// row wraps cells in a table row.
func row(cells ...*html.Node) *html.Node {
	tr := el(atom.Tr, nil)
	for _, c := range cells {
		tr.AppendChild(el(atom.Td, nil, c))
	}
	return tr
}

// Serialize renders nodes to a string.
func Serialize(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		// strings.Builder never fails, so neither does Render.
		_ = html.Render(&sb, n)
	}
	return sb.String()
}
