package usecases

import (
	"context"
	"fmt"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/domain/user"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// GrantEntitlementCommand targets one (user, entitlement, status) triple.
type GrantEntitlementCommand struct {
	UserID          string
	Email           string
	EntitlementSlug string
	Status          entitlement.Status
	// Metadata carries provider context (subscription id, event type) onto
	// the record for audit.
	Metadata map[string]any
}

// GrantEntitlementUseCase applies a grant idempotently: first grant inserts
// the record, every later grant for the same pair updates status in place.
// Re-delivery of the same event converges to the same final state.
type GrantEntitlementUseCase struct {
	definitionRepo entitlement.DefinitionRepository
	userRepo       user.Repository
	recordRepo     entitlement.RecordRepository
	logger         logger.Interface
}

func NewGrantEntitlementUseCase(
	definitionRepo entitlement.DefinitionRepository,
	userRepo user.Repository,
	recordRepo entitlement.RecordRepository,
	logger logger.Interface,
) *GrantEntitlementUseCase {
	return &GrantEntitlementUseCase{
		definitionRepo: definitionRepo,
		userRepo:       userRepo,
		recordRepo:     recordRepo,
		logger:         logger,
	}
}

func (uc *GrantEntitlementUseCase) Execute(ctx context.Context, cmd GrantEntitlementCommand) error {
	if !cmd.Status.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid entitlement status: %s", cmd.Status))
	}

	def, err := uc.definitionRepo.GetBySlug(ctx, cmd.EntitlementSlug)
	if err != nil {
		uc.logger.Errorw("failed to resolve entitlement definition",
			"slug", cmd.EntitlementSlug, "error", err)
		return errors.NewUpstreamError("failed to resolve entitlement definition")
	}
	if def == nil {
		// Catalog or config drift; retrying would not resolve it.
		return errors.NewValidationError(fmt.Sprintf("unknown entitlement slug: %s", cmd.EntitlementSlug))
	}

	u, err := user.NewUser(cmd.UserID, cmd.Email)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Ensure(ctx, u); err != nil {
		uc.logger.Errorw("failed to ensure user row", "user_id", cmd.UserID, "error", err)
		return errors.NewUpstreamError("failed to ensure user row")
	}

	record, err := uc.recordRepo.Get(ctx, cmd.UserID, def.ID())
	if err != nil {
		uc.logger.Errorw("failed to load entitlement record",
			"user_id", cmd.UserID, "entitlement_id", def.ID(), "error", err)
		return errors.NewUpstreamError("failed to load entitlement record")
	}

	if record == nil {
		record, err = entitlement.NewRecord(cmd.UserID, def.ID(), cmd.Status, entitlement.SourceStripe)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
	} else if err := record.UpdateStatus(cmd.Status); err != nil {
		return errors.NewValidationError(err.Error())
	}
	for k, v := range cmd.Metadata {
		record.SetMetadata(k, v)
	}

	if err := uc.recordRepo.Upsert(ctx, record); err != nil {
		uc.logger.Errorw("failed to upsert entitlement record",
			"user_id", cmd.UserID, "slug", cmd.EntitlementSlug, "error", err)
		return errors.NewUpstreamError("failed to upsert entitlement record")
	}

	uc.logger.Infow("entitlement granted",
		"user_id", cmd.UserID,
		"slug", cmd.EntitlementSlug,
		"status", string(cmd.Status))

	return nil
}
