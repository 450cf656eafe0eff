package cart

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/cart/get", h.get)
	app.Post("/api/cart/add", h.add)
	app.Post("/api/cart/update", h.update)
}

type cartRequest struct {
	UserID   int    `json:"userId"`
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) get(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	data, err := h.service.Get(payload.UserID)
	if err != nil {
		return fail(c, message(err))
	}
	return c.JSON(fiber.Map{"success": true, "cartData": data})
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	data, err := h.service.Add(payload.UserID, payload.ItemID, payload.Size)
	if err != nil {
		return fail(c, message(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Added To Cart", "cartData": data})
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	data, err := h.service.Update(payload.UserID, payload.ItemID, payload.Size, payload.Quantity)
	if err != nil {
		return fail(c, message(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Cart Updated", "cartData": data})
}

func message(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.Is(err, ErrInvalidItem):
		return "Invalid item"
	}
	return err.Error()
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}
