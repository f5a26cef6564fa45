package schema

// Kind classifies an operation.
// Any string is representable; only the three constants below are valid.
type Kind string

const (
	// KindView is a read-only query.
	KindView Kind = "view"

	// KindAction is a state-changing operation.
	KindAction Kind = "action"

	// KindOther is an operation that is neither, e.g. raw output.
	KindOther Kind = "other"
)

// Kinds returns the valid kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindView, KindAction, KindOther}
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindView, KindAction, KindOther:
		return true
	default:
		return false
	}
}

// String returns the kind as used in URLs.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a URL segment to a Kind.
// The second return value is false for unrecognized input; the returned
// Kind still carries the raw value so callers can report it.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.Valid()
}
