package order

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeApp(s *Service) *fiber.App {
	app := fiber.New()
	h := NewHandler(s)
	h.RegisterProtectedRoutes(app)
	h.RegisterAdminRoutes(app, func(c *fiber.Ctx) error { return c.Next() })
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode, "domain errors still answer 200")

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestPlaceOrderEndpoint(t *testing.T) {
	env := newEnv()
	app := makeApp(newTestService(env))

	out := postJSON(t, app, "/api/order/place",
		`{"userId":7,"items":[{"productId":1,"name":"Round Neck Tee","size":"M","quantity":2,"price":250}],"amount":510,"address":{"firstName":"Asha","email":"asha@example.com"}}`)

	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Order Placed", out["message"])
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	env := newEnv()
	app := makeApp(newTestService(env))

	out := postJSON(t, app, "/api/order/place", `{"userId":7,"items":[],"amount":0,"address":{}}`)

	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Order must contain at least one item", out["message"])
}

func TestVerifyStripeEndpointAcceptsStringSuccess(t *testing.T) {
	env := newEnv()
	env.stripe = fakeStripe{url: "https://checkout.stripe.test/session"}
	s := newTestService(env)
	app := makeApp(s)

	ord, _, err := s.PlaceStripe(context.Background(), placeRequest(), "")
	require.NoError(t, err)

	out := postJSON(t, app, "/api/order/verifyStripe",
		`{"orderId":1,"success":"true","userId":7}`)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, PaymentPaid, env.repo.orders[ord.ID].PaymentStatus)
}

func TestVerifyStripeReplayEnvelope(t *testing.T) {
	env := newEnv()
	env.stripe = fakeStripe{url: "https://checkout.stripe.test/session"}
	s := newTestService(env)
	app := makeApp(s)

	_, _, err := s.PlaceStripe(context.Background(), placeRequest(), "")
	require.NoError(t, err)

	first := postJSON(t, app, "/api/order/verifyStripe", `{"orderId":1,"success":true,"userId":7}`)
	assert.Equal(t, true, first["success"])

	second := postJSON(t, app, "/api/order/verifyStripe", `{"orderId":1,"success":true,"userId":7}`)
	assert.Equal(t, false, second["success"])
	assert.Equal(t, "Payment already processed", second["message"])
}

func TestUpdateStatusEndpointRejectsInvalidTransition(t *testing.T) {
	env := newEnv()
	s := newTestService(env)
	app := makeApp(s)

	_, err := s.PlaceCOD(placeRequest())
	require.NoError(t, err)

	out := postJSON(t, app, "/api/order/status", `{"orderId":1,"status":"Delivered"}`)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Invalid status transition", out["message"])
}

func TestCancelEndpointAfterShipping(t *testing.T) {
	env := newEnv()
	s := newTestService(env)
	app := makeApp(s)

	ord, err := s.PlaceCOD(placeRequest())
	require.NoError(t, err)
	require.NoError(t, s.UpdateStatus(ord.ID, StatusShipped))

	out := postJSON(t, app, "/api/order/cancel", `{"orderId":1,"userId":7}`)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Cannot cancel order after shipping", out["message"])
}

func TestCODCollectedEndpointTwice(t *testing.T) {
	env := newEnv()
	s := newTestService(env)
	app := makeApp(s)

	_, err := s.PlaceCOD(placeRequest())
	require.NoError(t, err)

	first := postJSON(t, app, "/api/order/cod-collected", `{"orderId":1}`)
	assert.Equal(t, true, first["success"])

	second := postJSON(t, app, "/api/order/cod-collected", `{"orderId":1}`)
	assert.Equal(t, false, second["success"])
	assert.Equal(t, "Payment already collected", second["message"])
}

func TestInvoiceEndpointReturnsPDF(t *testing.T) {
	env := newEnv()
	s := newTestService(env)
	app := makeApp(s)

	_, err := s.PlaceCOD(placeRequest())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/order/1/invoice", nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "application/pdf", res.Header.Get("Content-Type"))

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
