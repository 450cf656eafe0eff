package newsletter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/newsletter/subscribe", h.subscribe)
	app.Get("/api/newsletter/unsubscribe/:token", h.unsubscribe)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Get("/api/newsletter/subscribers", adminOnly, h.subscribers)
	app.Post("/api/newsletter/delete", adminOnly, h.delete)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (h *Handler) subscribe(c *fiber.Ctx) error {
	payload := new(subscribeRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if _, err := h.service.Subscribe(payload.Email); err != nil {
		switch {
		case errors.Is(err, ErrInvalidEmail):
			return fail(c, "Please enter a valid email")
		case errors.Is(err, ErrAlreadySubscribed):
			return fail(c, "Email already subscribed")
		default:
			return fail(c, err.Error())
		}
	}
	return c.JSON(fiber.Map{"success": true, "message": "Subscribed to newsletter"})
}

func (h *Handler) unsubscribe(c *fiber.Ctx) error {
	if err := h.service.Unsubscribe(c.Params("token")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Invalid unsubscribe link")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Unsubscribed from newsletter"})
}

func (h *Handler) subscribers(c *fiber.Ctx) error {
	subs, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "subscribers": subs})
}

type deleteRequest struct {
	SubscriberID int `json:"subscriberId"`
}

func (h *Handler) delete(c *fiber.Ctx) error {
	payload := new(deleteRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Delete(payload.SubscriberID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Subscriber not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Subscriber removed"})
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}
