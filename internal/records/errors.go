package records

import "errors"

// Sentinel errors for the recoverable failure modes of the record store
// and the services built on it. Every error reaching the presentation
// layer wraps one of these.
var (
	// Input errors
	ErrValidation         = errors.New("restro: invalid input")
	ErrDuplicateUsername  = errors.New("restro: username already exists")
	ErrInvalidCredentials = errors.New("restro: invalid username or password")

	// Reference errors
	ErrNotFound = errors.New("restro: not found")

	// Policy errors
	ErrProtectedAccount = errors.New("restro: the default administrator cannot be deleted")
	ErrEmptyOrder       = errors.New("restro: order has no line items")
	ErrAlreadyBilled    = errors.New("restro: order is already billed")
	ErrOrderBilled      = errors.New("restro: billed orders are immutable")

	// Collaborator errors
	ErrArtifactWrite = errors.New("restro: failed to write bill statement")
	ErrPersistence   = errors.New("restro: failed to persist records")
)
