package webui

import (
	"net/url"
	"strings"

	"github.com/artpar/apiexplorer/core/schema"
)

const (
	// DefaultBaseURL is the host every generated link points at.
	DefaultBaseURL = "http://zap"

	// DefaultUIFormat is the format tag of browsing pages.
	DefaultUIFormat = "UI"
)

// Output formats offered by the invocation form, in display order.
var OutputFormats = []string{"JSON", "HTML", "XML"}

// URLs builds links following the <base>/<format>/<component>/<kind>/<name>/ convention.
type URLs struct {
	Base     string
	UIFormat string
}

// NewURLs creates a URL builder, applying defaults for empty values.
func NewURLs(base, uiFormat string) URLs {
	if base == "" {
		base = DefaultBaseURL
	}
	if uiFormat == "" {
		uiFormat = DefaultUIFormat
	}
	return URLs{Base: strings.TrimRight(base, "/"), UIFormat: uiFormat}
}

// Root returns the link to the component list.
func (u URLs) Root() string {
	return u.join(u.UIFormat)
}

// Component returns the link to a component's catalog page.
func (u URLs) Component(component string) string {
	return u.join(u.UIFormat, component)
}

// Operation returns the link to an operation in the given format.
func (u URLs) Operation(format, component string, kind schema.Kind, name string) string {
	return u.join(format, component, kind.String(), name)
}

func (u URLs) join(segments ...string) string {
	var sb strings.Builder
	sb.WriteString(u.Base)
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	sb.WriteByte('/')
	return sb.String()
}
