package entitlement

import (
	"fmt"
	"time"
)

// Kind classifies an entitlement definition.
type Kind string

const (
	KindCourse     Kind = "course"
	KindMembership Kind = "membership"
)

func (k Kind) IsValid() bool {
	return k == KindCourse || k == KindMembership
}

// Definition is an immutable catalog row: a named right to access a class of
// content. Created by administrative provisioning, read-only to everything
// else.
type Definition struct {
	id        uint
	slug      string
	kind      Kind
	createdAt time.Time
}

// NewDefinition creates a new entitlement definition.
func NewDefinition(slug string, kind Kind) (*Definition, error) {
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid kind: %s", kind)
	}
	return &Definition{
		slug:      slug,
		kind:      kind,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructDefinition reconstructs a definition from persistence.
func ReconstructDefinition(id uint, slug string, kind Kind, createdAt time.Time) (*Definition, error) {
	if id == 0 {
		return nil, fmt.Errorf("id is required")
	}
	if slug == "" {
		return nil, fmt.Errorf("slug is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid kind: %s", kind)
	}
	return &Definition{
		id:        id,
		slug:      slug,
		kind:      kind,
		createdAt: createdAt,
	}, nil
}

func (d *Definition) ID() uint             { return d.id }
func (d *Definition) Slug() string         { return d.slug }
func (d *Definition) Kind() Kind           { return d.kind }
func (d *Definition) CreatedAt() time.Time { return d.createdAt }

// SetID assigns the persistence-generated id after the first insert.
func (d *Definition) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("id already set")
	}
	if id == 0 {
		return fmt.Errorf("id must be positive")
	}
	d.id = id
	return nil
}
