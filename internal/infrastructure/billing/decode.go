package billing

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"

	"coursegate/internal/domain/billing"
)

// Raw payload shapes for the event types this service consumes. Decoding
// against narrow local structs keeps the boundary independent of the SDK's
// full object graph and of provider API version churn in unrelated fields.
type stripeCheckoutSession struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

type stripeSubscription struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
	Items    struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

type stripeInvoice struct {
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	Lines        struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"lines"`
}

// DecodeEvent maps a verified provider event into the domain tagged union.
// Event types outside the handled set decode to Unrecognized so the caller
// can acknowledge them without processing.
func DecodeEvent(event stripe.Event) (billing.Event, error) {
	base := billing.Base{EventID: event.ID, Type: string(event.Type)}

	switch event.Type {
	case "checkout.session.completed":
		var session stripeCheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout session: %w", err)
		}
		return billing.CheckoutCompleted{
			Base:            base,
			CustomerID:      session.Customer,
			UserID:          session.Metadata["user_id"],
			EntitlementSlug: session.Metadata["entitlement_slug"],
			SubscriptionID:  session.Subscription,
		}, nil

	case "customer.subscription.updated":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return billing.SubscriptionUpdated{
			Base:           base,
			CustomerID:     sub.Customer,
			SubscriptionID: sub.ID,
			PriceID:        firstSubscriptionPrice(sub),
			Status:         sub.Status,
		}, nil

	case "customer.subscription.deleted":
		sub, err := decodeSubscription(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return billing.SubscriptionDeleted{
			Base:           base,
			CustomerID:     sub.Customer,
			SubscriptionID: sub.ID,
			PriceID:        firstSubscriptionPrice(sub),
		}, nil

	case "invoice.payment_succeeded":
		inv, err := decodeInvoice(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return billing.InvoicePaymentSucceeded{
			Base:           base,
			CustomerID:     inv.Customer,
			SubscriptionID: inv.Subscription,
			PriceID:        firstInvoicePrice(inv),
		}, nil

	case "invoice.payment_failed":
		inv, err := decodeInvoice(event.Data.Raw)
		if err != nil {
			return nil, err
		}
		return billing.InvoicePaymentFailed{
			Base:           base,
			CustomerID:     inv.Customer,
			SubscriptionID: inv.Subscription,
			PriceID:        firstInvoicePrice(inv),
		}, nil

	default:
		return billing.Unrecognized{Base: base}, nil
	}
}

func decodeSubscription(raw json.RawMessage) (stripeSubscription, error) {
	var sub stripeSubscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		return stripeSubscription{}, fmt.Errorf("decode subscription: %w", err)
	}
	return sub, nil
}

func decodeInvoice(raw json.RawMessage) (stripeInvoice, error) {
	var inv stripeInvoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return stripeInvoice{}, fmt.Errorf("decode invoice: %w", err)
	}
	return inv, nil
}

func firstSubscriptionPrice(sub stripeSubscription) string {
	if len(sub.Items.Data) == 0 {
		return ""
	}
	return sub.Items.Data[0].Price.ID
}

func firstInvoicePrice(inv stripeInvoice) string {
	if len(inv.Lines.Data) == 0 {
		return ""
	}
	return inv.Lines.Data[0].Price.ID
}
