/*
Package schema defines the descriptors of an introspectable API surface.

A component is a named group of operations. Each operation belongs to
exactly one kind:

  - view:   a read-only query
  - action: a state-changing operation
  - other:  anything that fits neither, such as raw or binary output

# Component Definition

Components are normally registered by plugins, but they can also be
declared in YAML:

	component: core
	description: Core operations

	views:
	  - name: version
	  - name: urls
	    params: [baseurl]

	actions:
	  - name: accessUrl
	    params: [url, followRedirects]

	others:
	  - name: dump

or the equivalent TOML:

	component = "core"

	[[actions]]
	name = "accessUrl"
	params = ["url", "followRedirects"]

Operation names are unique per kind. Two kinds may reuse a name since
every lookup is scoped by kind. Parameter order is significant.
*/
package schema
