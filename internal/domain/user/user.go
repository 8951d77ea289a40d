package user

import (
	"fmt"
	"time"
)

// User is keyed by the identity provider's stable subject id. Rows are
// created on first authenticated interaction or first checkout and are never
// deleted by this subsystem.
type User struct {
	id         string
	email      string
	customerID *string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewUser creates a user from the identity provider's subject id.
func NewUser(id, email string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	now := time.Now().UTC()
	return &User{
		id:        id,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(id, email string, customerID *string, createdAt, updatedAt time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return &User{
		id:         id,
		email:      email,
		customerID: customerID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// CustomerID returns the linked payment provider customer id, if any.
func (u *User) CustomerID() (string, bool) {
	if u.customerID == nil || *u.customerID == "" {
		return "", false
	}
	return *u.customerID, true
}

// AttachCustomer links the payment provider customer exactly once. Re-linking
// the same customer is a no-op; a different customer is a conflict.
func (u *User) AttachCustomer(customerID string) error {
	if customerID == "" {
		return fmt.Errorf("customer ID is required")
	}
	if existing, ok := u.CustomerID(); ok {
		if existing == customerID {
			return nil
		}
		return fmt.Errorf("user already linked to customer %s", existing)
	}
	u.customerID = &customerID
	u.updatedAt = time.Now().UTC()
	return nil
}
