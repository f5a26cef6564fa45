/*
Package webui renders the operator-facing HTML browser for the API surface.

Three pages exist, selected by which inputs are present:

  - root:    the list of registered components
  - catalog: one component's operations grouped by kind
  - form:    an invocation form for a single operation

Pages are built as golang.org/x/net/html node trees and serialized once at
the end. Component, operation and parameter names come from plugins, so
they only ever enter the output as text nodes or attribute values, which
the serializer escapes. Link targets are built from path-escaped segments.
The inline script is a constant; the form carries the values it needs in
data-* attributes.

Links follow the convention

	<base>/<format>/<component>/<kind>/<name>/

where base defaults to http://zap and the browsing format to UI.
*/
package webui
