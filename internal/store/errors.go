package store

import "errors"

// Sentinel errors for the store and guard boundary - use with errors.Is()
var (
	// ErrNotFound covers both a missing resource and a resource owned by
	// another user. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("resource not found")

	// ErrIntegrity indicates a referenced parent folder or owning folder
	// does not exist.
	ErrIntegrity = errors.New("referenced folder does not exist")

	// ErrCycle indicates a folder move that would make the folder its own
	// ancestor.
	ErrCycle = errors.New("folder move would create a cycle")

	// ErrBadRequest indicates structurally invalid input, such as a payload
	// id that does not match the targeted resource.
	ErrBadRequest = errors.New("payload id does not match target resource")
)
