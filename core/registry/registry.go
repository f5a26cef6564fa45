// Package registry manages component registration and conflict detection.
// It stores the components of the API surface and hands out snapshot
// copies so readers never observe a list being mutated mid-iteration.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/artpar/apiexplorer/core/schema"
)

// Registry manages registered components.
type Registry struct {
	mu sync.RWMutex

	// components by name
	components map[string]schema.Component
}

// New creates a new registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]schema.Component),
	}
}

// Register registers a component.
// Returns an error if the name is taken or an operation name repeats within a kind.
func (r *Registry) Register(comp schema.Component) error {
	if comp.Name == "" {
		return fmt.Errorf("component name is required")
	}

	comp = comp.Normalize()
	if conflicts := detectConflicts(comp); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[comp.Name]; exists {
		return fmt.Errorf("component %q already registered", comp.Name)
	}

	r.components[comp.Name] = comp.Clone()
	return nil
}

// Unregister removes a component from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; !exists {
		return fmt.Errorf("component %q not registered", name)
	}

	delete(r.components, name)
	return nil
}

// Replace swaps the full component set in one step.
// Nothing changes if any component is invalid.
func (r *Registry) Replace(comps []schema.Component) error {
	next := make(map[string]schema.Component, len(comps))
	for _, comp := range comps {
		if comp.Name == "" {
			return fmt.Errorf("component name is required")
		}
		if _, exists := next[comp.Name]; exists {
			return fmt.Errorf("component %q defined more than once", comp.Name)
		}
		comp = comp.Normalize()
		if conflicts := detectConflicts(comp); len(conflicts) > 0 {
			return &ConflictError{Conflicts: conflicts}
		}
		next[comp.Name] = comp.Clone()
	}

	r.mu.Lock()
	r.components = next
	r.mu.Unlock()

	return nil
}

// Get returns a copy of a registered component by name.
func (r *Registry) Get(name string) (schema.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, ok := r.components[name]
	if !ok {
		return schema.Component{}, false
	}
	return comp.Clone(), true
}

// Operations returns a copy of a component's operations of one kind.
func (r *Registry) Operations(name string, kind schema.Kind) ([]schema.Operation, bool) {
	comp, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	return comp.Operations(kind), true
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// List returns copies of all registered components sorted by name.
func (r *Registry) List() []schema.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comps := make([]schema.Component, 0, len(r.components))
	for _, comp := range r.components {
		comps = append(comps, comp.Clone())
	}

	sort.Slice(comps, func(i, j int) bool {
		return comps[i].Name < comps[j].Name
	})

	return comps
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.components)
}

// detectConflicts finds operation names declared twice within one kind.
func detectConflicts(comp schema.Component) []Conflict {
	var conflicts []Conflict

	for _, kind := range schema.Kinds() {
		seen := make(map[string]bool)
		for _, op := range comp.Operations(kind) {
			if seen[op.Name] {
				conflicts = append(conflicts, Conflict{
					Component: comp.Name,
					Kind:      kind,
					Name:      op.Name,
				})
			}
			seen[op.Name] = true
		}
	}

	return conflicts
}

// Conflict is one operation name claimed twice within a kind.
type Conflict struct {
	Component string
	Kind      schema.Kind
	Name      string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s %q declared more than once", c.Component, c.Kind, c.Name)
}

// ConflictError represents one or more operation name conflicts.
type ConflictError struct {
	Conflicts []Conflict
}

// Error returns the conflict error message.
func (e *ConflictError) Error() string {
	var msgs []string
	for _, c := range e.Conflicts {
		msgs = append(msgs, c.String())
	}
	return fmt.Sprintf("operation conflicts detected:\n  - %s", strings.Join(msgs, "\n  - "))
}

// HasConflicts returns true if there are any conflicts.
func (e *ConflictError) HasConflicts() bool {
	return len(e.Conflicts) > 0
}
