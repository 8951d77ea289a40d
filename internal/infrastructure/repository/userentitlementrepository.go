package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/infrastructure/persistence/models"
	"coursegate/internal/shared/constants"
	"coursegate/internal/shared/logger"
)

// UserEntitlementRepositoryImpl implements entitlement.RecordRepository
type UserEntitlementRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewUserEntitlementRepository creates a new record repository instance
func NewUserEntitlementRepository(db *gorm.DB, logger logger.Interface) entitlement.RecordRepository {
	return &UserEntitlementRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Get returns the record for the (user, entitlement) pair, or nil.
func (r *UserEntitlementRepositoryImpl) Get(ctx context.Context, userID string, entitlementID uint) (*entitlement.Record, error) {
	var model models.UserEntitlementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND entitlement_id = ?", userID, entitlementID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get entitlement record",
			"user_id", userID, "entitlement_id", entitlementID, "error", err)
		return nil, fmt.Errorf("failed to get entitlement record: %w", err)
	}
	return toRecordDomain(&model)
}

// Upsert inserts the record or updates status, expiry, and metadata in place.
// Atomicity rests on the composite unique key; concurrent writers for the
// same pair serialize at the row.
func (r *UserEntitlementRepositoryImpl) Upsert(ctx context.Context, record *entitlement.Record) error {
	metadata, err := json.Marshal(record.Metadata())
	if err != nil {
		return fmt.Errorf("failed to marshal record metadata: %w", err)
	}

	model := &models.UserEntitlementModel{
		ID:            record.ID(),
		UserID:        record.UserID(),
		EntitlementID: record.EntitlementID(),
		Status:        string(record.Status()),
		ExpiresAt:     record.ExpiresAt(),
		Source:        record.Source(),
		Metadata:      datatypes.JSON(metadata),
		CreatedAt:     record.CreatedAt(),
		UpdatedAt:     record.UpdatedAt(),
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entitlement_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "expires_at", "metadata", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert entitlement record",
			"user_id", record.UserID(), "entitlement_id", record.EntitlementID(), "error", err)
		return fmt.Errorf("failed to upsert entitlement record: %w", err)
	}

	if record.ID() == 0 && model.ID != 0 {
		if err := record.SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set record ID: %w", err)
		}
	}
	return nil
}

// ListActiveSlugs returns the slugs of the user's active entitlements.
func (r *UserEntitlementRepositoryImpl) ListActiveSlugs(ctx context.Context, userID string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Table(constants.TableUserEntitlements).
		Select(constants.TableEntitlementDefinitions+".slug").
		Joins(fmt.Sprintf("JOIN %s ON %s.id = %s.entitlement_id",
			constants.TableEntitlementDefinitions,
			constants.TableEntitlementDefinitions,
			constants.TableUserEntitlements)).
		Where(constants.TableUserEntitlements+".user_id = ? AND "+constants.TableUserEntitlements+".status = ?",
			userID, string(entitlement.StatusActive)).
		Pluck("slug", &slugs).Error
	if err != nil {
		r.logger.Errorw("failed to list active entitlement slugs",
			"user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list active entitlement slugs: %w", err)
	}
	return slugs, nil
}

func toRecordDomain(model *models.UserEntitlementModel) (*entitlement.Record, error) {
	metadata := make(map[string]any)
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record metadata: %w", err)
		}
	}

	record, err := entitlement.ReconstructRecord(
		model.ID,
		model.UserID,
		model.EntitlementID,
		entitlement.Status(model.Status),
		model.ExpiresAt,
		model.Source,
		metadata,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement record: %w", err)
	}
	return record, nil
}
