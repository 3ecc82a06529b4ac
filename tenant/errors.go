package tenant

import "errors"

var (
	// ErrTenantNotFound is returned by providers when no tenant matches an identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when an extracted identifier is malformed.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrInvalidToken is returned when a token strategy cannot parse its input.
	ErrInvalidToken = errors.New("invalid tenant token")

	// ErrTenantRequired is passed to the missing-tenant handler when resolution
	// fails on a route that requires a tenant.
	ErrTenantRequired = errors.New("tenant required but not resolved")

	// ErrInvalidSnapshot is returned by Scope.Apply for structurally malformed snapshots.
	ErrInvalidSnapshot = errors.New("invalid tenant snapshot")

	// ErrUnknownStrategy is returned by Registry.Build for unregistered strategy names.
	ErrUnknownStrategy = errors.New("unknown tenant strategy")

	// ErrInactiveTenant is returned when a provider-loaded tenant is not active.
	ErrInactiveTenant = errors.New("tenant is inactive")
)
