package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// IntentResult is the gateway's view of a payment intent at
// confirmation time. Succeeded alone is not enough: the reconciler
// also checks AmountReceivedCents against the expected charge before
// trusting the intent.
type IntentResult struct {
	ID                  string
	ClientSecret        string
	Succeeded           bool
	AmountReceivedCents int64
}

// PaymentGateway is the external billing collaborator. The Stripe
// implementation below is the production one; tests substitute fakes.
type PaymentGateway interface {
	// GetOrCreateCustomer resolves a billing customer for the given
	// identity, reusing existingID when already known.
	GetOrCreateCustomer(ctx context.Context, existingID *string, email, name string) (string, error)

	// CreatePaymentIntent opens an intent for amountCents, tagged with
	// the lease id when applicable, and returns it with ClientSecret
	// populated.
	CreatePaymentIntent(ctx context.Context, customerID string, amountCents int64, leaseID *uuid.UUID) (*IntentResult, error)

	// GetPaymentIntent reports the current state of an intent.
	GetPaymentIntent(ctx context.Context, intentID string) (*IntentResult, error)
}

/* ------------------------------------------------------------------
   Stripe implementation
------------------------------------------------------------------ */

type stripeGateway struct{}

// NewStripeGateway sets the package-level Stripe key and returns the
// gateway. Call once at startup.
func NewStripeGateway(secretKey string) PaymentGateway {
	stripe.Key = secretKey
	return &stripeGateway{}
}

func (g *stripeGateway) GetOrCreateCustomer(ctx context.Context, existingID *string, email, name string) (string, error) {
	if existingID != nil && *existingID != "" {
		return *existingID, nil
	}
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe customer create: %w", err)
	}
	return c.ID, nil
}

func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, customerID string, amountCents int64, leaseID *uuid.UUID) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Customer: stripe.String(customerID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if leaseID != nil {
		params.AddMetadata("lease_id", leaseID.String())
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent create: %w", err)
	}
	return intentResult(pi), nil
}

func (g *stripeGateway) GetPaymentIntent(ctx context.Context, intentID string) (*IntentResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent get: %w", err)
	}
	return intentResult(pi), nil
}

func intentResult(pi *stripe.PaymentIntent) *IntentResult {
	return &IntentResult{
		ID:                  pi.ID,
		ClientSecret:        pi.ClientSecret,
		Succeeded:           pi.Status == stripe.PaymentIntentStatusSucceeded,
		AmountReceivedCents: pi.AmountReceived,
	}
}
