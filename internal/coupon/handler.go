package coupon

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/coupon/validate", h.validate)
	app.Post("/api/coupon/apply", h.apply)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Post("/api/coupon/create", adminOnly, h.create)
	app.Get("/api/coupon/list", adminOnly, h.list)
	app.Post("/api/coupon/update", adminOnly, h.update)
	app.Post("/api/coupon/delete", adminOnly, h.delete)
	app.Post("/api/coupon/toggle-status", adminOnly, h.toggleStatus)
}

type validateRequest struct {
	Code        string  `json:"code"`
	OrderAmount float64 `json:"orderAmount"`
}

func (h *Handler) validate(c *fiber.Ctx) error {
	payload := new(validateRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}

	discount, cp, err := h.service.Validate(payload.Code, payload.OrderAmount)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fail(c, "Invalid coupon code")
		case errors.Is(err, ErrInactive):
			return fail(c, "This coupon is no longer active")
		case errors.Is(err, ErrExpired):
			return fail(c, "This coupon has expired")
		case errors.Is(err, ErrUsageLimitReached):
			return fail(c, "This coupon has reached its usage limit")
		case errors.Is(err, ErrMinimumNotMet):
			return fail(c, fmt.Sprintf("Minimum order amount of %.0f required for this coupon", cp.MinOrderAmount))
		default:
			return fail(c, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Coupon applied successfully",
		"discount": discount,
		"coupon": fiber.Map{
			"code":        cp.Code,
			"type":        cp.Type,
			"value":       cp.Value,
			"description": cp.Description,
		},
	})
}

type applyRequest struct {
	Code string `json:"code"`
}

func (h *Handler) apply(c *fiber.Ctx) error {
	payload := new(applyRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Apply(payload.Code); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fail(c, "Invalid coupon code")
		case errors.Is(err, ErrUsageLimitReached):
			return fail(c, "This coupon has reached its usage limit")
		default:
			return fail(c, err.Error())
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

type createCouponRequest struct {
	Code           string  `json:"code"`
	Type           string  `json:"type"`
	Value          float64 `json:"value"`
	MinOrderAmount float64 `json:"minOrderAmount"`
	MaxDiscount    float64 `json:"maxDiscount"`
	MaxUses        int     `json:"maxUses"`
	ExpiryDate     string  `json:"expiryDate"`
	Description    string  `json:"description"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createCouponRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	expiry, err := parseDate(payload.ExpiryDate)
	if err != nil {
		return fail(c, "Invalid expiry date")
	}

	created, err := h.service.Create(Coupon{
		Code:           payload.Code,
		Type:           payload.Type,
		Value:          payload.Value,
		MinOrderAmount: payload.MinOrderAmount,
		MaxDiscount:    payload.MaxDiscount,
		MaxUses:        payload.MaxUses,
		ExpiryDate:     expiry,
		IsActive:       true,
		Description:    payload.Description,
	})
	if err != nil {
		if errors.Is(err, ErrCodeExists) {
			return fail(c, "Coupon code already exists")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon created successfully", "coupon": created})
}

func (h *Handler) list(c *fiber.Ctx) error {
	coupons, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "coupons": coupons})
}

type updateCouponRequest struct {
	CouponID int `json:"couponId"`
	createCouponRequest
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(updateCouponRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	expiry, err := parseDate(payload.ExpiryDate)
	if err != nil {
		return fail(c, "Invalid expiry date")
	}
	err = h.service.Update(payload.CouponID, Coupon{
		Code:           payload.Code,
		Type:           payload.Type,
		Value:          payload.Value,
		MinOrderAmount: payload.MinOrderAmount,
		MaxDiscount:    payload.MaxDiscount,
		MaxUses:        payload.MaxUses,
		ExpiryDate:     expiry,
		Description:    payload.Description,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Coupon not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon updated successfully"})
}

type couponIDRequest struct {
	CouponID int `json:"couponId"`
}

func (h *Handler) delete(c *fiber.Ctx) error {
	payload := new(couponIDRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Delete(payload.CouponID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Coupon not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon deleted successfully"})
}

type toggleStatusRequest struct {
	CouponID int  `json:"couponId"`
	IsActive bool `json:"isActive"`
}

func (h *Handler) toggleStatus(c *fiber.Ctx) error {
	payload := new(toggleStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.SetActive(payload.CouponID, payload.IsActive); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Coupon not found")
		}
		return fail(c, err.Error())
	}
	verb := "deactivated"
	if payload.IsActive {
		verb = "activated"
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon " + verb + " successfully"})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}
