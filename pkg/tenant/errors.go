package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when an identifier resolves to no backing record.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTransportFailure is returned when the directory cannot be reached
	// or responds with a non-success status.
	ErrTransportFailure = errors.New("tenant directory unreachable")

	// ErrMalformedResponse is returned when a directory response cannot be
	// decoded or a success envelope is missing required fields. It is an
	// independent sentinel, routed the same way as ErrTransportFailure.
	ErrMalformedResponse = errors.New("malformed directory response")

	// ErrLookupRejected is returned when the directory answers with an
	// explicit error flag. Unlike an absent record this is the backend
	// reporting a failed lookup, so it routes like a failure, not a miss.
	ErrLookupRejected = errors.New("tenant lookup rejected by directory")

	// ErrInvalidIdentifier is returned when an extracted identifier fails validation.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
