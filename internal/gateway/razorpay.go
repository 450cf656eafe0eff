package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sony/gobreaker/v2"

	"github.com/forevershop/forever-backend/internal/order"
)

// RazorpayClient creates and fetches gateway orders. The receipt field
// round-trips the local order id so verification can find the order again.
type RazorpayClient struct {
	client  *razorpay.Client
	breaker *gobreaker.CircuitBreaker[map[string]interface{}]
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		client: razorpay.NewClient(keyID, keySecret),
		breaker: gobreaker.NewCircuitBreaker[map[string]interface{}](gobreaker.Settings{
			Name:    "razorpay",
			Timeout: 30 * time.Second,
		}),
	}
}

func (r *RazorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (order.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := r.execute(ctx, func() (map[string]interface{}, error) {
		return r.client.Order.Create(data, nil)
	})
	if err != nil {
		return order.GatewayOrder{}, fmt.Errorf("razorpay create order: %w", err)
	}
	return parseGatewayOrder(body), nil
}

func (r *RazorpayClient) FetchOrder(ctx context.Context, gatewayOrderID string) (order.GatewayOrder, error) {
	body, err := r.execute(ctx, func() (map[string]interface{}, error) {
		return r.client.Order.Fetch(gatewayOrderID, nil, nil)
	})
	if err != nil {
		return order.GatewayOrder{}, fmt.Errorf("razorpay fetch order: %w", err)
	}
	return parseGatewayOrder(body), nil
}

func (r *RazorpayClient) execute(ctx context.Context, call func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	body, err := r.breaker.Execute(func() (map[string]interface{}, error) {
		return withRetry(ctx, call)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrGatewayUnavailable
	}
	return body, err
}

// parseGatewayOrder pulls the fields the order service needs out of the
// loosely typed response body.
func parseGatewayOrder(body map[string]interface{}) order.GatewayOrder {
	gw := order.GatewayOrder{}
	if v, ok := body["id"].(string); ok {
		gw.ID = v
	}
	if v, ok := body["status"].(string); ok {
		gw.Status = v
	}
	if v, ok := body["receipt"].(string); ok {
		gw.Receipt = v
	}
	if v, ok := body["attempts"].(float64); ok {
		gw.Attempts = int(v)
	}
	return gw
}
