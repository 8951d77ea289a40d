package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/infrastructure/persistence/models"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// EntitlementDefinitionRepositoryImpl implements entitlement.DefinitionRepository
type EntitlementDefinitionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEntitlementDefinitionRepository creates a new definition repository instance
func NewEntitlementDefinitionRepository(db *gorm.DB, logger logger.Interface) entitlement.DefinitionRepository {
	return &EntitlementDefinitionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// GetBySlug returns the definition for slug, or nil when absent.
func (r *EntitlementDefinitionRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*entitlement.Definition, error) {
	var model models.EntitlementDefinitionModel
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get entitlement definition", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get entitlement definition: %w", err)
	}
	return toDefinitionDomain(&model)
}

// Create inserts a new definition.
func (r *EntitlementDefinitionRepositoryImpl) Create(ctx context.Context, def *entitlement.Definition) error {
	model := &models.EntitlementDefinitionModel{
		Slug:      def.Slug(),
		Kind:      string(def.Kind()),
		CreatedAt: def.CreatedAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("entitlement definition already exists")
		}
		r.logger.Errorw("failed to create entitlement definition", "slug", def.Slug(), "error", err)
		return fmt.Errorf("failed to create entitlement definition: %w", err)
	}

	if err := def.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set definition ID: %w", err)
	}

	r.logger.Infow("entitlement definition created", "id", model.ID, "slug", model.Slug)
	return nil
}

// List returns all definitions.
func (r *EntitlementDefinitionRepositoryImpl) List(ctx context.Context) ([]*entitlement.Definition, error) {
	var rows []models.EntitlementDefinitionModel
	if err := r.db.WithContext(ctx).Order("slug").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list entitlement definitions", "error", err)
		return nil, fmt.Errorf("failed to list entitlement definitions: %w", err)
	}

	defs := make([]*entitlement.Definition, len(rows))
	for i := range rows {
		def, err := toDefinitionDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		defs[i] = def
	}
	return defs, nil
}

func toDefinitionDomain(model *models.EntitlementDefinitionModel) (*entitlement.Definition, error) {
	def, err := entitlement.ReconstructDefinition(model.ID, model.Slug, entitlement.Kind(model.Kind), model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement definition: %w", err)
	}
	return def, nil
}
