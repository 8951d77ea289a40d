package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateEntitlementDefinitions, downCreateEntitlementDefinitions)
}

func upCreateEntitlementDefinitions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS entitlement_definitions (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			slug VARCHAR(128) NOT NULL,
			kind VARCHAR(20) NOT NULL,
			created_at DATETIME(3) NOT NULL,
			PRIMARY KEY (id),
			UNIQUE KEY uniq_entitlement_definitions_slug (slug)
		)
	`)
	return err
}

func downCreateEntitlementDefinitions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS entitlement_definitions`)
	return err
}
