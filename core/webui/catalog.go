package webui

import (
	"strings"

	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Catalog renders a component's operations grouped by kind, in the order
// views, actions, others. Kinds without operations produce no output.
func (r Renderer) Catalog(component string, comp schema.Component) []*html.Node {
	var nodes []*html.Node

	for _, kind := range schema.Kinds() {
		ops := comp.Operations(kind)
		if len(ops) == 0 {
			continue
		}

		table := el(atom.Table, nil)
		for _, op := range ops {
			href := r.urls.Operation(r.urls.UIFormat, component, kind, op.Name)
			table.AppendChild(row(link(href, operationLabel(op))))
		}

		nodes = append(nodes,
			el(atom.H3, nil, text(r.messages.Lookup(sectionKey(kind)))),
			table,
		)
	}

	return nodes
}

// ComponentList renders the root listing of component names.
func (r Renderer) ComponentList(names []string) []*html.Node {
	nodes := []*html.Node{
		el(atom.H3, nil, text(r.messages.Lookup(terminology.KeyComponents))),
	}
	if len(names) == 0 {
		return nodes
	}

	table := el(atom.Table, nil)
	for _, name := range names {
		table.AppendChild(row(link(r.urls.Component(name), name)))
	}
	return append(nodes, table)
}

// operationLabel returns "name (p1 p2)", or just the name without params.
func operationLabel(op schema.Operation) string {
	if len(op.Params) == 0 {
		return op.Name
	}
	return op.Name + " (" + strings.Join(op.Params, " ") + ")"
}
