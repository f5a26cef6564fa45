package webui

import (
	"github.com/artpar/apiexplorer/core/schema"
	"github.com/artpar/apiexplorer/core/terminology"
	"github.com/artpar/apiexplorer/ports"
)

// Renderer builds page fragments. It holds no per-request state and is
// safe for concurrent use.
type Renderer struct {
	messages ports.MessageCatalog
	urls     URLs
}

// NewRenderer creates a renderer. A nil catalog uses the English labels.
func NewRenderer(messages ports.MessageCatalog, urls URLs) Renderer {
	if messages == nil {
		messages = terminology.Default()
	}
	return Renderer{messages: messages, urls: urls}
}

// sectionKey returns the catalog heading key for a kind.
func sectionKey(kind schema.Kind) string {
	switch kind {
	case schema.KindView:
		return terminology.KeyViews
	case schema.KindAction:
		return terminology.KeyActions
	default:
		return terminology.KeyOthers
	}
}

// kindKey returns the form heading prefix key for a kind.
func kindKey(kind schema.Kind) string {
	switch kind {
	case schema.KindView:
		return terminology.KeyView
	case schema.KindAction:
		return terminology.KeyAction
	default:
		return terminology.KeyOther
	}
}
