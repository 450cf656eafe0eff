package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the order endpoints. Domain failures always come back as
// HTTP 200 with {success:false, message} so the storefront can show the
// message verbatim.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/order/place", h.placeCOD)
	app.Post("/api/order/place/stripe", h.placeStripe)
	app.Post("/api/order/place/razorpay", h.placeRazorpay)
	app.Post("/api/order/verifyStripe", h.verifyStripe)
	app.Post("/api/order/verifyRazorpay", h.verifyRazorpay)
	app.Post("/api/order/userorders", h.userOrders)
	app.Post("/api/order/cancel", h.cancelOrder)
	app.Get("/api/order/:orderId<[0-9]+>/invoice", h.invoice)
	app.Get("/api/order/:orderId<[0-9]+>", h.getOrder)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Post("/api/order/list", adminOnly, h.allOrders)
	app.Post("/api/order/status", adminOnly, h.updateStatus)
	app.Post("/api/order/cod-collected", adminOnly, h.markCODCollected)
}

type placeOrderRequest struct {
	UserID         int     `json:"userId"`
	Items          []Item  `json:"items"`
	Amount         float64 `json:"amount"`
	Address        Address `json:"address"`
	CouponCode     string  `json:"couponCode"`
	DiscountAmount float64 `json:"discountAmount"`
}

func (r placeOrderRequest) toPlaceRequest() PlaceRequest {
	return PlaceRequest{
		UserID:         r.UserID,
		Items:          r.Items,
		Amount:         r.Amount,
		Address:        r.Address,
		CouponCode:     r.CouponCode,
		DiscountAmount: r.DiscountAmount,
	}
}

func (h *Handler) placeCOD(c *fiber.Ctx) error {
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if _, err := h.service.PlaceCOD(payload.toPlaceRequest()); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order Placed"})
}

func (h *Handler) placeStripe(c *fiber.Ctx) error {
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	_, sessionURL, err := h.service.PlaceStripe(c.Context(), payload.toPlaceRequest(), c.Get("Origin"))
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "session_url": sessionURL})
}

func (h *Handler) placeRazorpay(c *fiber.Ctx) error {
	payload := new(placeOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	_, gw, err := h.service.PlaceRazorpay(c.Context(), payload.toPlaceRequest())
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "order": fiber.Map{
		"id":       gw.ID,
		"status":   gw.Status,
		"receipt":  gw.Receipt,
		"attempts": gw.Attempts,
	}})
}

type verifyStripeRequest struct {
	OrderID int         `json:"orderId"`
	Success interface{} `json:"success"`
	UserID  int         `json:"userId"`
}

func (h *Handler) verifyStripe(c *fiber.Ctx) error {
	payload := new(verifyStripeRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	err := h.service.VerifyStripe(payload.OrderID, isTrue(payload.Success), payload.UserID)
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true})
}

type verifyRazorpayRequest struct {
	UserID          int    `json:"userId"`
	RazorpayOrderID string `json:"razorpay_order_id"`
}

func (h *Handler) verifyRazorpay(c *fiber.Ctx) error {
	payload := new(verifyRazorpayRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	err := h.service.VerifyRazorpay(c.Context(), payload.UserID, payload.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, ErrPaymentFailed) {
			return fail(c, "Payment Failed")
		}
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Payment Successful"})
}

func (h *Handler) allOrders(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

type userOrdersRequest struct {
	UserID int `json:"userId"`
}

func (h *Handler) userOrders(c *fiber.Ctx) error {
	payload := new(userOrdersRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	orders, err := h.service.ListByUser(payload.UserID)
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders})
}

type updateStatusRequest struct {
	OrderID int    `json:"orderId"`
	Status  string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.UpdateStatus(payload.OrderID, payload.Status); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return fail(c, "Invalid status transition")
		}
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Status Updated"})
}

type cancelOrderRequest struct {
	OrderID int `json:"orderId"`
	UserID  int `json:"userId"`
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	payload := new(cancelOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Cancel(payload.OrderID, payload.UserID); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return fail(c, "Cannot cancel order after shipping")
		}
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Order cancelled successfully"})
}

type codCollectedRequest struct {
	OrderID int `json:"orderId"`
}

func (h *Handler) markCODCollected(c *fiber.Ctx) error {
	payload := new(codCollectedRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.MarkCODCollected(payload.OrderID); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "COD payment marked as collected"})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return fail(c, "Order not found")
	}
	ord, err := h.service.GetByID(orderID)
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "order": ord})
}

func (h *Handler) invoice(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return fail(c, "Order not found")
	}
	ord, err := h.service.GetByID(orderID)
	if err != nil {
		return fail(c, domainMessage(err))
	}
	pdf, err := RenderInvoice(ord)
	if err != nil {
		return fail(c, err.Error())
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", "attachment; filename=invoice-"+ord.InvoiceNumber+".pdf")
	return c.Send(pdf)
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}

func domainMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Order not found"
	case errors.Is(err, ErrNotOwner):
		return "Not authorized"
	case errors.Is(err, ErrNotCOD):
		return "This is not a COD order"
	case errors.Is(err, ErrAlreadyCollected):
		return "Payment already collected"
	case errors.Is(err, ErrAlreadyProcessed):
		return "Payment already processed"
	case errors.Is(err, ErrPaymentFailed):
		return "Payment Failed"
	case errors.Is(err, ErrEmptyOrder):
		return "Order must contain at least one item"
	default:
		return err.Error()
	}
}

// isTrue accepts both the boolean and the stringly-typed success flag the
// storefront sends from the redirect query parameters.
func isTrue(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}
