package billing

// Event is the decoded form of a payment provider webhook event. The raw
// payload is decoded once at the boundary into one of the variants below;
// everything after the boundary works with the tagged union, never with
// loosely-typed maps.
type Event interface {
	// ID is the provider-assigned event id, used for replay dedupe.
	ID() string
	// EventType is the provider's type string, for logging.
	EventType() string
}

// Base carries the identification fields shared by all variants.
type Base struct {
	EventID string
	Type    string
}

func (e Base) ID() string        { return e.EventID }
func (e Base) EventType() string { return e.Type }

// CheckoutCompleted fires when a hosted checkout finishes. The session
// metadata carries the user id and entitlement slug this service attached at
// session creation, so no catalog lookup is needed.
type CheckoutCompleted struct {
	Base
	CustomerID      string
	UserID          string
	EntitlementSlug string
	SubscriptionID  string
}

// SubscriptionUpdated carries the provider's current subscription status for
// a (customer, price) pair.
type SubscriptionUpdated struct {
	Base
	CustomerID     string
	SubscriptionID string
	PriceID        string
	Status         string
}

// SubscriptionDeleted fires when a subscription ends.
type SubscriptionDeleted struct {
	Base
	CustomerID     string
	SubscriptionID string
	PriceID        string
}

// InvoicePaymentSucceeded fires on successful payment of an invoice.
// SubscriptionID is empty for one-off invoices.
type InvoicePaymentSucceeded struct {
	Base
	CustomerID     string
	SubscriptionID string
	PriceID        string
}

// InvoicePaymentFailed fires when an invoice payment attempt fails.
type InvoicePaymentFailed struct {
	Base
	CustomerID     string
	SubscriptionID string
	PriceID        string
}

// Unrecognized covers every event type this service does not process.
type Unrecognized struct {
	Base
}
