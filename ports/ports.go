// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/ and core/.
package ports

import (
	"github.com/artpar/apiexplorer/core/schema"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Domain Ports
// -----------------------------------------------------------------------------

// ComponentRegistry is the read side of the component store.
// Implementations must return copies or immutable snapshots so callers can
// iterate without locking.
type ComponentRegistry interface {
	// Names returns all known component names in a stable order.
	Names() []string

	// Get returns a component by name.
	Get(name string) (schema.Component, bool)
}

// MessageCatalog resolves localized UI labels.
type MessageCatalog interface {
	// Lookup returns the label for key. Unknown keys return the key itself.
	Lookup(key string) string
}
