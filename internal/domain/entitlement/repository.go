package entitlement

import "context"

// DefinitionRepository provides access to the entitlement catalog.
type DefinitionRepository interface {
	// GetBySlug returns the definition for slug, or nil when absent.
	GetBySlug(ctx context.Context, slug string) (*Definition, error)
	// Create inserts a new definition. Conflict error on duplicate slug.
	Create(ctx context.Context, def *Definition) error
	// List returns all definitions.
	List(ctx context.Context) ([]*Definition, error)
}

// RecordRepository provides access to user entitlement records. All writes go
// through Upsert, which must be atomic at the row level on the
// (user_id, entitlement_id) unique key.
type RecordRepository interface {
	// Get returns the record for the pair, or nil when absent.
	Get(ctx context.Context, userID string, entitlementID uint) (*Record, error)
	// Upsert inserts the record, or updates status, expiry, and metadata in
	// place when a row for the pair already exists.
	Upsert(ctx context.Context, record *Record) error
	// ListActiveSlugs returns the slugs of the user's active entitlements.
	ListActiveSlugs(ctx context.Context, userID string) ([]string, error)
}
