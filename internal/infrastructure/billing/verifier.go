package billing

import (
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"coursegate/internal/shared/errors"
)

// WebhookVerifier authenticates inbound webhook payloads. Verification runs
// over the raw, unparsed body; any reformatting before verification would
// change the byte sequence and break the signature.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Configured reports whether a webhook secret is present.
func (v *WebhookVerifier) Configured() bool {
	return v.secret != ""
}

// VerifyEvent recomputes the expected signature over rawBody and compares it
// in constant time against the signature header. Neither the secret nor the
// presented signature is ever logged.
func (v *WebhookVerifier) VerifyEvent(rawBody []byte, sigHeader string) (stripe.Event, error) {
	if !v.Configured() {
		return stripe.Event{}, errors.NewConfigurationError("webhook secret is not configured")
	}
	if sigHeader == "" {
		return stripe.Event{}, errors.NewVerificationError("missing webhook signature")
	}

	event, err := webhook.ConstructEventWithOptions(rawBody, sigHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, errors.NewVerificationError("invalid webhook signature")
	}
	return event, nil
}
