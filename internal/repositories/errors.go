package repositories

import "errors"

// Domain errors returned by the connection lifecycle. Handlers map these to
// HTTP statuses; anything else from the store is treated as internal.
var (
	ErrSelfRequest      = errors.New("cannot send a connection request to yourself")
	ErrAlreadyConnected = errors.New("users are already connected")
	ErrDuplicateRequest = errors.New("a pending connection request already exists between these users")
	ErrAlreadyProcessed = errors.New("this request has already been processed")
)
