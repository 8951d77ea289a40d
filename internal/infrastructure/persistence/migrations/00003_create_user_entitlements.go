package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUserEntitlements, downCreateUserEntitlements)
}

func upCreateUserEntitlements(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS user_entitlements (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id VARCHAR(64) NOT NULL,
			entitlement_id BIGINT UNSIGNED NOT NULL,
			status VARCHAR(20) NOT NULL,
			expires_at DATETIME(3) NULL,
			source VARCHAR(32) NOT NULL,
			metadata JSON NULL,
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY idx_user_entitlements_pair (user_id, entitlement_id),
			KEY idx_user_entitlements_status (status)
		)
	`)
	return err
}

func downCreateUserEntitlements(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS user_entitlements`)
	return err
}
