package entitlement

import (
	"fmt"
	"time"
)

// SourceStripe tags records provisioned from Stripe webhook events.
const SourceStripe = "stripe"

// Record links a user to an entitlement with a lifecycle status. There is at
// most one record per (user, entitlement) pair; every payment event for the
// pair updates the status in place. State is idempotent and last-writer-wins
// by processing order.
type Record struct {
	id            uint
	userID        string
	entitlementID uint
	status        Status
	expiresAt     *time.Time
	source        string
	metadata      map[string]any
	createdAt     time.Time
	updatedAt     time.Time
}

// NewRecord creates a record for the first grant of an entitlement to a user.
func NewRecord(userID string, entitlementID uint, status Status, source string) (*Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if entitlementID == 0 {
		return nil, fmt.Errorf("entitlement ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if source == "" {
		return nil, fmt.Errorf("source is required")
	}

	now := time.Now().UTC()
	return &Record{
		userID:        userID,
		entitlementID: entitlementID,
		status:        status,
		source:        source,
		metadata:      make(map[string]any),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructRecord reconstructs a record from persistence.
func ReconstructRecord(
	id uint,
	userID string,
	entitlementID uint,
	status Status,
	expiresAt *time.Time,
	source string,
	metadata map[string]any,
	createdAt time.Time,
	updatedAt time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if entitlementID == 0 {
		return nil, fmt.Errorf("entitlement ID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &Record{
		id:            id,
		userID:        userID,
		entitlementID: entitlementID,
		status:        status,
		expiresAt:     expiresAt,
		source:        source,
		metadata:      metadata,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (r *Record) ID() uint              { return r.id }
func (r *Record) UserID() string        { return r.userID }
func (r *Record) EntitlementID() uint   { return r.entitlementID }
func (r *Record) Status() Status        { return r.status }
func (r *Record) ExpiresAt() *time.Time { return r.expiresAt }
func (r *Record) Source() string        { return r.source }
func (r *Record) Metadata() map[string]any {
	return r.metadata
}
func (r *Record) CreatedAt() time.Time { return r.createdAt }
func (r *Record) UpdatedAt() time.Time { return r.updatedAt }

// UpdateStatus moves the record to a new status. Converges: applying the same
// target status twice is a no-op beyond the timestamp.
func (r *Record) UpdateStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	r.status = status
	r.updatedAt = time.Now().UTC()
	return nil
}

// SetMetadata records provider context (subscription id, last event type) for
// audit.
func (r *Record) SetMetadata(key string, value any) {
	if r.metadata == nil {
		r.metadata = make(map[string]any)
	}
	r.metadata[key] = value
	r.updatedAt = time.Now().UTC()
}

// SetID assigns the persistence-generated id after the first insert.
func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("id already set")
	}
	if id == 0 {
		return fmt.Errorf("id must be positive")
	}
	r.id = id
	return nil
}
