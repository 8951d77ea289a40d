package models

import (
	"time"

	"gorm.io/datatypes"

	"coursegate/internal/shared/constants"
)

// UserEntitlementModel is the persistence model for user entitlement records.
// The composite unique index enforces at most one row per
// (user, entitlement) pair; all writes upsert against it.
type UserEntitlementModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        string `gorm:"not null;size:64;uniqueIndex:idx_user_entitlements_pair"`
	EntitlementID uint   `gorm:"not null;uniqueIndex:idx_user_entitlements_pair"`
	Status        string `gorm:"not null;size:20;index:idx_user_entitlements_status"`
	ExpiresAt     *time.Time
	Source        string         `gorm:"not null;size:20"`
	Metadata      datatypes.JSON `gorm:"type:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (UserEntitlementModel) TableName() string {
	return constants.TableUserEntitlements
}
