package user

import "context"

// Repository provides access to user rows.
type Repository interface {
	// GetByID returns the user, or nil when absent.
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByCustomerID resolves the user linked to a payment provider
	// customer, or nil when no user is linked.
	GetByCustomerID(ctx context.Context, customerID string) (*User, error)
	// Ensure creates the user row if it does not exist. Idempotent under
	// concurrent invocation; keyed by the identity provider id.
	Ensure(ctx context.Context, u *User) error
	// AttachCustomerID persists the one-time customer linkage. Conflict
	// error when the user is already linked to a different customer.
	AttachCustomerID(ctx context.Context, userID, customerID string) error
}
