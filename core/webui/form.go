package webui

import (
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element identifiers shared by the form and submitScript.
const (
	formID   = "zapform"
	formatID = "zapapiformat"
	buttonID = "button"
)

// submitScript navigates to the invocation URL for the selected format.
// Everything else it needs is read from the form's data-* attributes, so
// no registry-supplied value is ever placed in script context.
const submitScript = `
function submitScript() {
	var form = document.getElementById('zapform');
	var format = document.getElementById('zapapiformat').value;
	var d = form.dataset;
	var url = d.base + '/' + encodeURIComponent(format) +
		'/' + encodeURIComponent(d.component) +
		'/' + encodeURIComponent(d.kind) +
		'/' + encodeURIComponent(d.operation) + '/';
	window.location.assign(url);
}
`

// Form renders the invocation form for a resolved operation.
//
// The form offers a format selector (JSON, HTML, XML), one text input per
// parameter in declared order, and a button labeled with the operation
// name. Parameter values are not part of the navigation target.
func (r Renderer) Form(component string, kind schema.Kind, op schema.Operation) []*html.Node {
	heading := el(atom.H3, nil, text(r.messages.Lookup(kindKey(kind))+op.Name))

	table := el(atom.Table, nil)
	table.AppendChild(row(
		el(atom.Label, attrs("for", formatID), text(r.messages.Lookup(terminology.KeyFormat))),
		formatSelect(),
	))

	for _, param := range op.Params {
		table.AppendChild(row(
			el(atom.Label, attrs("for", param), text(param)),
			el(atom.Input, attrs("id", param, "name", param, "type", "text")),
		))
	}

	table.AppendChild(row(
		nil,
		el(atom.Input, attrs(
			"id", buttonID,
			"type", "button",
			"value", op.Name,
			"onclick", "submitScript();",
		)),
	))

	form := el(atom.Form, attrs(
		"id", formID,
		"name", formID,
		"data-base", r.urls.Base,
		"data-component", component,
		"data-kind", kind.String(),
		"data-operation", op.Name,
	), table)

	return []*html.Node{heading, form}
}

// Script returns the script element the form depends on.
func Script() *html.Node {
	return el(atom.Script, nil, text(submitScript))
}

func formatSelect() *html.Node {
	sel := el(atom.Select, attrs("id", formatID, "name", formatID))
	for _, f := range OutputFormats {
		sel.AppendChild(el(atom.Option, nil, text(f)))
	}
	return sel
}
