package usecases

import (
	"context"

	"coursegate/internal/domain/entitlement"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// CheckAccessUseCase decides whether a user may view content gated by an
// access tag. The free sentinel always passes, even for anonymous callers.
// Otherwise access requires an active entitlement matching the tag or the
// all-access membership; past_due and canceled grant nothing.
type CheckAccessUseCase struct {
	recordRepo entitlement.RecordRepository
	logger     logger.Interface
}

func NewCheckAccessUseCase(recordRepo entitlement.RecordRepository, logger logger.Interface) *CheckAccessUseCase {
	return &CheckAccessUseCase{
		recordRepo: recordRepo,
		logger:     logger,
	}
}

func (uc *CheckAccessUseCase) Execute(ctx context.Context, userID, accessTag string) (bool, error) {
	if accessTag == entitlement.FreeAccessSlug {
		return true, nil
	}
	if userID == "" {
		return false, nil
	}

	slugs, err := uc.recordRepo.ListActiveSlugs(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to list active entitlements",
			"user_id", userID, "error", err)
		return false, errors.NewUpstreamError("failed to list active entitlements")
	}

	for _, slug := range slugs {
		if slug == accessTag || slug == entitlement.AllAccessSlug {
			return true, nil
		}
	}
	return false, nil
}
