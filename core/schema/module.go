package schema

// Operation describes one callable endpoint of a component.
type Operation struct {
	// Name is unique within its kind.
	Name string `yaml:"name" toml:"name"`

	// Kind is derived from the list the operation was declared in.
	Kind Kind `yaml:"-" toml:"-"`

	// Params are the parameter names in declared order. Never nil once
	// the operation has been normalized.
	Params []string `yaml:"params,omitempty" toml:"params,omitempty"`

	// Description for documentation.
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// Component is a named group of operations.
type Component struct {
	// Name identifies the component in URLs (e.g., "core", "spider").
	Name string `yaml:"component" toml:"component"`

	// Description for documentation.
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`

	Views   []Operation `yaml:"views,omitempty" toml:"views,omitempty"`
	Actions []Operation `yaml:"actions,omitempty" toml:"actions,omitempty"`
	Others  []Operation `yaml:"others,omitempty" toml:"others,omitempty"`
}

// Operations returns the ordered operations of the given kind.
// An invalid kind yields nil.
func (c Component) Operations(kind Kind) []Operation {
	switch kind {
	case KindView:
		return c.Views
	case KindAction:
		return c.Actions
	case KindOther:
		return c.Others
	default:
		return nil
	}
}

// Count returns the total number of operations across all kinds.
func (c Component) Count() int {
	return len(c.Views) + len(c.Actions) + len(c.Others)
}

// Normalize stamps each operation with the kind of its list and replaces
// nil parameter lists with empty ones.
func (c Component) Normalize() Component {
	c.Views = normalizeOps(c.Views, KindView)
	c.Actions = normalizeOps(c.Actions, KindAction)
	c.Others = normalizeOps(c.Others, KindOther)
	return c
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (c Component) Clone() Component {
	c.Views = cloneOps(c.Views)
	c.Actions = cloneOps(c.Actions)
	c.Others = cloneOps(c.Others)
	return c
}

func normalizeOps(ops []Operation, kind Kind) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		op.Kind = kind
		if op.Params == nil {
			op.Params = []string{}
		}
		out[i] = op
	}
	return out
}

func cloneOps(ops []Operation) []Operation {
	if ops == nil {
		return nil
	}
	out := make([]Operation, len(ops))
	for i, op := range ops {
		op.Params = append([]string{}, op.Params...)
		out[i] = op
	}
	return out
}
