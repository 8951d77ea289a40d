package models

import (
	"time"

	"coursegate/internal/shared/constants"
)

// UserModel is the persistence model for users. The primary key is the
// identity provider's subject id, not an auto-increment.
type UserModel struct {
	ID         string  `gorm:"primarykey;size:64"`
	Email      string  `gorm:"size:255;index:idx_users_email"`
	CustomerID *string `gorm:"size:64;uniqueIndex:idx_users_customer_id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
