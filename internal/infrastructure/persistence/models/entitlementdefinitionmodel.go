package models

import (
	"time"

	"coursegate/internal/shared/constants"
)

// EntitlementDefinitionModel is the persistence model for the entitlement
// catalog. Rows are written by provisioning and read-only afterwards.
type EntitlementDefinitionModel struct {
	ID        uint   `gorm:"primarykey"`
	Slug      string `gorm:"uniqueIndex:idx_entitlement_definitions_slug;not null;size:128"`
	Kind      string `gorm:"not null;size:20"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (EntitlementDefinitionModel) TableName() string {
	return constants.TableEntitlementDefinitions
}
