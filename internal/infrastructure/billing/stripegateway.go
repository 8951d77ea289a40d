package billing

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"

	"coursegate/internal/application/billing/usecases"
	"coursegate/internal/shared/config"
	"coursegate/internal/shared/errors"
)

// StripeGateway implements the payment gateway against the Stripe API. The
// API key is scoped to this instance rather than the SDK's package-level key
// so tests and multi-tenant setups stay isolated.
type StripeGateway struct {
	customers       *customer.Client
	checkoutClient  *checkoutsession.Client
	portalClient    *portalsession.Client
	successURL      string
	cancelURL       string
	portalReturnURL string
	configured      bool
}

func NewStripeGateway(cfg *config.StripeConfig) *StripeGateway {
	backend := stripe.GetBackend(stripe.APIBackend)
	return &StripeGateway{
		customers:       &customer.Client{B: backend, Key: cfg.APIKey},
		checkoutClient:  &checkoutsession.Client{B: backend, Key: cfg.APIKey},
		portalClient:    &portalsession.Client{B: backend, Key: cfg.APIKey},
		successURL:      cfg.SuccessURL,
		cancelURL:       cfg.CancelURL,
		portalReturnURL: cfg.PortalReturnURL,
		configured:      cfg.APIKey != "",
	}
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, userID string) (string, error) {
	if !g.configured {
		return "", errors.NewConfigurationError("payment provider API key is not configured")
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	cust, err := g.customers.New(params)
	if err != nil {
		return "", errors.NewUpstreamError("failed to create billing customer")
	}
	return cust.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p usecases.CheckoutSessionParams) (string, error) {
	if !g.configured {
		return "", errors.NewConfigurationError("payment provider API key is not configured")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(p.Mode)),
		Customer:   stripe.String(p.CustomerID),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := g.checkoutClient.New(params)
	if err != nil {
		return "", errors.NewUpstreamError("failed to create checkout session")
	}
	return sess.URL, nil
}

func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	if !g.configured {
		return "", errors.NewConfigurationError("payment provider API key is not configured")
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(g.portalReturnURL),
	}
	params.Context = ctx

	sess, err := g.portalClient.New(params)
	if err != nil {
		return "", errors.NewUpstreamError("failed to create billing portal session")
	}
	return sess.URL, nil
}
