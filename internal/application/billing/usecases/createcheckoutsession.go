package usecases

import (
	"context"
	"fmt"

	"coursegate/internal/domain/billing"
	"coursegate/internal/domain/entitlement"
	"coursegate/internal/domain/user"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

type CreateCheckoutSessionCommand struct {
	UserID          string
	Email           string
	EntitlementSlug string
}

type CreateCheckoutSessionResult struct {
	URL string
}

// CreateCheckoutSessionUseCase creates a provider-hosted checkout session for
// an authenticated user, lazily provisioning the provider customer record on
// first purchase.
type CreateCheckoutSessionUseCase struct {
	userRepo user.Repository
	catalog  *billing.Catalog
	gateway  PaymentGateway
	logger   logger.Interface
}

func NewCreateCheckoutSessionUseCase(
	userRepo user.Repository,
	catalog *billing.Catalog,
	gateway PaymentGateway,
	logger logger.Interface,
) *CreateCheckoutSessionUseCase {
	return &CreateCheckoutSessionUseCase{
		userRepo: userRepo,
		catalog:  catalog,
		gateway:  gateway,
		logger:   logger,
	}
}

func (uc *CreateCheckoutSessionUseCase) Execute(ctx context.Context, cmd CreateCheckoutSessionCommand) (*CreateCheckoutSessionResult, error) {
	priceID, ok := uc.catalog.PriceForSlug(cmd.EntitlementSlug)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown entitlement slug: %s", cmd.EntitlementSlug))
	}

	u, err := uc.ensureUser(ctx, cmd.UserID, cmd.Email)
	if err != nil {
		return nil, err
	}

	customerID, err := uc.ensureCustomer(ctx, u)
	if err != nil {
		return nil, err
	}

	mode := CheckoutModePayment
	if entitlement.IsMembershipSlug(cmd.EntitlementSlug) {
		mode = CheckoutModeSubscription
	}

	url, err := uc.gateway.CreateCheckoutSession(ctx, CheckoutSessionParams{
		CustomerID: customerID,
		PriceID:    priceID,
		Mode:       mode,
		Metadata: map[string]string{
			"user_id":          cmd.UserID,
			"entitlement_slug": cmd.EntitlementSlug,
		},
	})
	if err != nil {
		if errors.IsConfigurationError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create checkout session",
			"user_id", cmd.UserID, "slug", cmd.EntitlementSlug, "error", err)
		return nil, errors.NewUpstreamError("failed to create checkout session")
	}

	uc.logger.Infow("checkout session created",
		"user_id", cmd.UserID,
		"slug", cmd.EntitlementSlug,
		"mode", string(mode))

	return &CreateCheckoutSessionResult{URL: url}, nil
}

func (uc *CreateCheckoutSessionUseCase) ensureUser(ctx context.Context, userID, email string) (*user.User, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to load user", "user_id", userID, "error", err)
		return nil, errors.NewUpstreamError("failed to load user")
	}
	if u != nil {
		return u, nil
	}

	u, err = user.NewUser(userID, email)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.Ensure(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user row", "user_id", userID, "error", err)
		return nil, errors.NewUpstreamError("failed to create user row")
	}
	return u, nil
}

func (uc *CreateCheckoutSessionUseCase) ensureCustomer(ctx context.Context, u *user.User) (string, error) {
	if customerID, ok := u.CustomerID(); ok {
		return customerID, nil
	}

	customerID, err := uc.gateway.CreateCustomer(ctx, u.Email(), u.ID())
	if err != nil {
		if errors.IsConfigurationError(err) {
			return "", err
		}
		uc.logger.Errorw("failed to create provider customer",
			"user_id", u.ID(), "error", err)
		return "", errors.NewUpstreamError("failed to create provider customer")
	}

	if err := uc.userRepo.AttachCustomerID(ctx, u.ID(), customerID); err != nil {
		if errors.IsConflictError(err) {
			// A concurrent first purchase won the linkage; use its customer.
			fresh, freshErr := uc.userRepo.GetByID(ctx, u.ID())
			if freshErr == nil && fresh != nil {
				if existing, ok := fresh.CustomerID(); ok {
					return existing, nil
				}
			}
		}
		uc.logger.Errorw("failed to persist customer linkage",
			"user_id", u.ID(), "error", err)
		return "", errors.NewUpstreamError("failed to persist customer linkage")
	}

	return customerID, nil
}
