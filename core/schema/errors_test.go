package schema

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Codes(t *testing.T) {
	tests := []struct {
		err  *APIError
		code string
	}{
		{ErrBadType, "bad_type"},
		{ErrBadAction, "bad_action"},
		{ErrBadView, "bad_view"},
		{ErrBadOther, "bad_other"},
	}

	for _, tt := range tests {
		if tt.err.Code() != tt.code {
			t.Errorf("Code() = %s, want %s", tt.err.Code(), tt.code)
		}
		if tt.err.Error() != tt.code {
			t.Errorf("Error() = %s, want %s", tt.err.Error(), tt.code)
		}
	}
}

func TestAPIError_Is(t *testing.T) {
	wrapped := fmt.Errorf("render page: %w", &APIError{Type: BadView})

	if !errors.Is(wrapped, ErrBadView) {
		t.Error("wrapped BadView should match ErrBadView")
	}
	if errors.Is(wrapped, ErrBadAction) {
		t.Error("wrapped BadView should not match ErrBadAction")
	}

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should find APIError")
	}
	if apiErr.Type != BadView {
		t.Errorf("Type = %v, want BadView", apiErr.Type)
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		kind Kind
		want *APIError
	}{
		{KindAction, ErrBadAction},
		{KindView, ErrBadView},
		{KindOther, ErrBadOther},
		{Kind("bogus"), ErrBadType},
	}

	for _, tt := range tests {
		if got := NotFoundError(tt.kind); got != tt.want {
			t.Errorf("NotFoundError(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
