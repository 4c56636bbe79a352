package snippets

import "errors"

var (
	// ErrInvalidTargetID indicates a target spec with an empty ID
	ErrInvalidTargetID = errors.New("target ID cannot be empty")

	// ErrInvalidTargetName indicates a target spec with an empty name
	ErrInvalidTargetName = errors.New("target name cannot be empty")

	// ErrMissingRenderer indicates a target spec without a render function
	ErrMissingRenderer = errors.New("target renderer cannot be nil")

	// ErrTargetNotFound indicates the requested target is not registered
	ErrTargetNotFound = errors.New("target not found")

	// ErrTargetAlreadyExists indicates a duplicate target registration
	ErrTargetAlreadyExists = errors.New("target already registered")
)
