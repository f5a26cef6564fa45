package schema

// ErrorType tags an APIError.
type ErrorType int

const (
	// BadType is a malformed request: missing name or unrecognized kind.
	BadType ErrorType = iota

	// BadAction means no action with the requested name exists.
	BadAction

	// BadView means no view with the requested name exists.
	BadView

	// BadOther means no other operation with the requested name exists.
	BadOther
)

// Code returns the wire code for the error type.
func (t ErrorType) Code() string {
	switch t {
	case BadType:
		return "bad_type"
	case BadAction:
		return "bad_action"
	case BadView:
		return "bad_view"
	case BadOther:
		return "bad_other"
	default:
		return "unknown"
	}
}

// APIError is the failure raised when an operation cannot be resolved.
// It carries no payload beyond its type.
type APIError struct {
	Type ErrorType
}

var (
	ErrBadType   = &APIError{Type: BadType}
	ErrBadAction = &APIError{Type: BadAction}
	ErrBadView   = &APIError{Type: BadView}
	ErrBadOther  = &APIError{Type: BadOther}
)

// Error returns the error code.
func (e *APIError) Error() string {
	return e.Type.Code()
}

// Code returns the wire code, e.g. "bad_view".
func (e *APIError) Code() string {
	return e.Type.Code()
}

// Is matches any APIError with the same type.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Type == e.Type
}

// NotFoundError returns the lookup failure for a kind.
// Invalid kinds yield ErrBadType.
func NotFoundError(kind Kind) *APIError {
	switch kind {
	case KindAction:
		return ErrBadAction
	case KindView:
		return ErrBadView
	case KindOther:
		return ErrBadOther
	default:
		return ErrBadType
	}
}
