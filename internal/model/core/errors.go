// internal/model/core/errors.go
package core

import "errors"

var (
	// ErrMissingPrerequisite is returned when a required collaborator is absent at construction.
	ErrMissingPrerequisite = errors.New("missing prerequisite")

	// ErrInvalidIndex is returned when a selection or list index is out of bounds.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrUnrecognizedShape is returned when a surface object cannot be classified.
	ErrUnrecognizedShape = errors.New("unrecognized shape")

	// ErrLookupMiss is returned when an event's object is not owned by any record.
	ErrLookupMiss = errors.New("object not found in model")
)
