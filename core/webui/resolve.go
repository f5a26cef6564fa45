package webui

import "github.com/artpar/apiexplorer/core/schema"

// Resolve finds the operation of the given kind and name in a component.
//
// A missing name or an unrecognized kind fails with schema.ErrBadType
// before any lookup. An unknown name fails with the error for its kind
// (ErrBadAction, ErrBadView or ErrBadOther). Matching is exact and
// case-sensitive; the first match in registry order wins.
func Resolve(comp schema.Component, kind schema.Kind, name string) (schema.Operation, error) {
	if name == "" || !kind.Valid() {
		return schema.Operation{}, schema.ErrBadType
	}

	for _, op := range comp.Operations(kind) {
		if op.Name == name {
			return op, nil
		}
	}

	return schema.Operation{}, schema.NotFoundError(kind)
}
