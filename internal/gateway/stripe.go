package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/forevershop/forever-backend/internal/order"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// StripeClient creates hosted checkout sessions. All calls go through a
// circuit breaker so a Stripe outage fails fast instead of piling up
// blocked checkout requests.
type StripeClient struct {
	api     *client.API
	breaker *gobreaker.CircuitBreaker[string]
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{
		api: api,
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:    "stripe",
			Timeout: 30 * time.Second,
		}),
	}
}

func (s *StripeClient) CreateCheckoutSession(ctx context.Context, req order.CheckoutRequest) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for _, line := range req.Lines {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
				UnitAmount: stripe.Int64(line.UnitAmount),
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	url, err := s.breaker.Execute(func() (string, error) {
		return withRetry(ctx, func() (string, error) {
			sess, err := s.api.CheckoutSessions.New(params)
			if err != nil {
				return "", err
			}
			return sess.URL, nil
		})
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrGatewayUnavailable
	}
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return url, nil
}
