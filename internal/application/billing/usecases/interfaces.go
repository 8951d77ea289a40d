package usecases

import "context"

// CheckoutMode selects between one-time and recurring purchases.
type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"
	CheckoutModeSubscription CheckoutMode = "subscription"
)

// CheckoutSessionParams describes one provider-hosted checkout session.
type CheckoutSessionParams struct {
	CustomerID string
	PriceID    string
	Mode       CheckoutMode
	// Metadata is attached opaquely to the session so the completion
	// webhook can resolve the grant without further lookups.
	Metadata map[string]string
}

// PaymentGateway is the narrow interface to the payment provider. The
// concrete implementation wraps the provider SDK; tests use fakes.
type PaymentGateway interface {
	// CreateCustomer provisions a provider customer record and returns its id.
	CreateCustomer(ctx context.Context, email, userID string) (string, error)
	// CreateCheckoutSession returns the hosted checkout redirect URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (string, error)
	// CreatePortalSession returns the self-service billing portal URL.
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
}
