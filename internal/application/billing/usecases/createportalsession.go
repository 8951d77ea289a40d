package usecases

import (
	"context"

	"coursegate/internal/domain/user"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

type CreatePortalSessionCommand struct {
	UserID string
}

type CreatePortalSessionResult struct {
	URL string
}

// CreatePortalSessionUseCase opens the provider's self-service billing portal
// for a user who already has a linked customer record.
type CreatePortalSessionUseCase struct {
	userRepo user.Repository
	gateway  PaymentGateway
	logger   logger.Interface
}

func NewCreatePortalSessionUseCase(
	userRepo user.Repository,
	gateway PaymentGateway,
	logger logger.Interface,
) *CreatePortalSessionUseCase {
	return &CreatePortalSessionUseCase{
		userRepo: userRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *CreatePortalSessionUseCase) Execute(ctx context.Context, cmd CreatePortalSessionCommand) (*CreatePortalSessionResult, error) {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", cmd.UserID, "error", err)
		return nil, errors.NewUpstreamError("failed to load user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError("no billing account linked to this user")
	}

	customerID, ok := u.CustomerID()
	if !ok {
		return nil, errors.NewNotFoundError("no billing account linked to this user")
	}

	url, err := uc.gateway.CreatePortalSession(ctx, customerID)
	if err != nil {
		if errors.IsConfigurationError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create portal session",
			"user_id", cmd.UserID, "error", err)
		return nil, errors.NewUpstreamError("failed to create portal session")
	}

	return &CreatePortalSessionResult{URL: url}, nil
}
