// Package stripewebhook verifies Stripe webhook deliveries and turns the
// ones the parcel service cares about into payment notices.
package stripewebhook

import (
	"encoding/json"
	"fmt"

	"trackmate/internal/core/domain/model/kernel"
	"trackmate/internal/pkg/errs"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	// SignatureHeader carries the Stripe signature of the payload.
	SignatureHeader = "Stripe-Signature"
	// ParcelIDMetadataKey is set on the PaymentIntent by the checkout.
	ParcelIDMetadataKey = "parcel_id"
)

// PaymentSucceeded reports that a parcel was paid.
type PaymentSucceeded struct {
	ParcelID        kernel.UUID
	PaymentIntentID string
}

type Processor struct {
	secret string
}

func New(secret string) *Processor {
	return &Processor{secret: secret}
}

// VerifyAndParse checks the signature and maps the event. It returns nil
// without error for events that need no action: other event types and
// payment intents that were not created for a parcel.
func (p *Processor) VerifyAndParse(payload []byte, signature string) (*PaymentSucceeded, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.secret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(SignatureHeader, err)
	}

	if event.Type != "payment_intent.succeeded" || event.Data == nil {
		return nil, nil
	}

	var pi stripe.PaymentIntent
	if err = json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("data.object", err)
	}

	raw, ok := pi.Metadata[ParcelIDMetadataKey]
	if !ok {
		return nil, nil
	}

	parcelID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"metadata."+ParcelIDMetadataKey,
			fmt.Errorf("payment intent %s: %w", pi.ID, err),
		)
	}

	return &PaymentSucceeded{ParcelID: parcelID, PaymentIntentID: pi.ID}, nil
}
