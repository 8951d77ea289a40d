package usecases

import (
	"context"

	"coursegate/internal/domain/billing"
	"coursegate/internal/domain/entitlement"
	"coursegate/internal/domain/user"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

// EntitlementGranter applies one resolved grant.
type EntitlementGranter interface {
	Execute(ctx context.Context, cmd GrantEntitlementCommand) error
}

// ProcessBillingEventUseCase is the reconciliation engine: it maps each
// supported payment event to a target (user, entitlement, status) triple and
// applies it through the granter.
//
// Lookup misses (unknown customer, price, or slug) are permanent
// catalog/config mismatches: they are logged and the event is dropped with a
// nil return so the provider does not retry. Only transient store failures
// propagate as errors, which the HTTP boundary turns into a 500 and the
// provider retries.
type ProcessBillingEventUseCase struct {
	granter  EntitlementGranter
	userRepo user.Repository
	catalog  *billing.Catalog
	logger   logger.Interface
}

func NewProcessBillingEventUseCase(
	granter EntitlementGranter,
	userRepo user.Repository,
	catalog *billing.Catalog,
	logger logger.Interface,
) *ProcessBillingEventUseCase {
	return &ProcessBillingEventUseCase{
		granter:  granter,
		userRepo: userRepo,
		catalog:  catalog,
		logger:   logger,
	}
}

func (uc *ProcessBillingEventUseCase) Execute(ctx context.Context, event billing.Event) error {
	switch ev := event.(type) {
	case billing.CheckoutCompleted:
		return uc.handleCheckoutCompleted(ctx, ev)
	case billing.SubscriptionUpdated:
		return uc.applyByLookup(ctx, ev.Base, ev.CustomerID, ev.PriceID, ev.SubscriptionID,
			statusFromSubscription(ev.Status))
	case billing.SubscriptionDeleted:
		return uc.applyByLookup(ctx, ev.Base, ev.CustomerID, ev.PriceID, ev.SubscriptionID,
			entitlement.StatusCanceled)
	case billing.InvoicePaymentSucceeded:
		if ev.SubscriptionID != "" {
			// The paired customer.subscription.updated event is authoritative
			// for subscription invoices; processing both would double-apply.
			uc.logger.Debugw("skipping subscription invoice",
				"event_id", ev.ID(), "subscription_id", ev.SubscriptionID)
			return nil
		}
		return uc.applyByLookup(ctx, ev.Base, ev.CustomerID, ev.PriceID, "",
			entitlement.StatusActive)
	case billing.InvoicePaymentFailed:
		return uc.applyByLookup(ctx, ev.Base, ev.CustomerID, ev.PriceID, ev.SubscriptionID,
			entitlement.StatusPastDue)
	default:
		uc.logger.Infow("ignoring unrecognized billing event",
			"event_id", event.ID(), "type", event.EventType())
		return nil
	}
}

func (uc *ProcessBillingEventUseCase) handleCheckoutCompleted(ctx context.Context, ev billing.CheckoutCompleted) error {
	if ev.UserID == "" || ev.EntitlementSlug == "" {
		uc.logger.Warnw("checkout completed without session linkage, dropping",
			"event_id", ev.ID(), "customer_id", ev.CustomerID)
		return nil
	}

	cmd := GrantEntitlementCommand{
		UserID:          ev.UserID,
		EntitlementSlug: ev.EntitlementSlug,
		Status:          entitlement.StatusActive,
		Metadata:        eventMetadata(ev.EventType(), ev.SubscriptionID),
	}
	return uc.applyGrant(ctx, ev.Base, cmd)
}

func (uc *ProcessBillingEventUseCase) applyByLookup(
	ctx context.Context,
	base billing.Base,
	customerID, priceID, subscriptionID string,
	status entitlement.Status,
) error {
	if customerID == "" {
		uc.logger.Warnw("billing event without customer id, dropping",
			"event_id", base.ID(), "type", base.EventType())
		return nil
	}

	u, err := uc.userRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		uc.logger.Errorw("failed to resolve user by customer id",
			"event_id", base.ID(), "customer_id", customerID, "error", err)
		return errors.NewUpstreamError("failed to resolve user by customer id")
	}
	if u == nil {
		uc.logger.Warnw("no user linked to customer, dropping event",
			"event_id", base.ID(), "customer_id", customerID)
		return nil
	}

	slug, ok := uc.catalog.SlugForPrice(priceID)
	if !ok {
		uc.logger.Warnw("price not in catalog, dropping event",
			"event_id", base.ID(), "price_id", priceID)
		return nil
	}

	cmd := GrantEntitlementCommand{
		UserID:          u.ID(),
		Email:           u.Email(),
		EntitlementSlug: slug,
		Status:          status,
		Metadata:        eventMetadata(base.EventType(), subscriptionID),
	}
	return uc.applyGrant(ctx, base, cmd)
}

func (uc *ProcessBillingEventUseCase) applyGrant(ctx context.Context, base billing.Base, cmd GrantEntitlementCommand) error {
	err := uc.granter.Execute(ctx, cmd)
	if err == nil {
		return nil
	}
	if errors.IsValidationError(err) {
		// Unknown slug or malformed triple: permanent, drop without retry.
		uc.logger.Warnw("dropping unresolvable billing event",
			"event_id", base.ID(), "type", base.EventType(), "error", err)
		return nil
	}
	return err
}

func eventMetadata(eventType, subscriptionID string) map[string]any {
	md := map[string]any{"last_event_type": eventType}
	if subscriptionID != "" {
		md["subscription_id"] = subscriptionID
	}
	return md
}

// statusFromSubscription maps the provider's subscription status to an
// entitlement status. Unrecognized values fail toward least privilege.
func statusFromSubscription(status string) entitlement.Status {
	switch status {
	case "active", "trialing":
		return entitlement.StatusActive
	case "past_due", "unpaid":
		return entitlement.StatusPastDue
	default:
		return entitlement.StatusCanceled
	}
}
