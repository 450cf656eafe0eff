package banner

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
	app.Get("/api/banner/active", h.active)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Get("/api/banner/all", adminOnly, h.all)
	app.Post("/api/banner/add", adminOnly, h.add)
	app.Post("/api/banner/update", adminOnly, h.update)
	app.Post("/api/banner/delete", adminOnly, h.delete)
	app.Post("/api/banner/toggle", adminOnly, h.toggle)
}

func (h *Handler) active(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "banners": h.service.ListActive()})
}

func (h *Handler) all(c *fiber.Ctx) error {
	banners, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "banners": banners})
}

type bannerRequest struct {
	BannerID     int    `json:"bannerId"`
	Title        string `json:"title"`
	MobileImage  string `json:"mobileImage"`
	DesktopImage string `json:"desktopImage"`
	Link         string `json:"link"`
	IsActive     bool   `json:"isActive"`
	Ord          int    `json:"ord"`
}

func (r bannerRequest) toBanner() Banner {
	return Banner{
		Title:        r.Title,
		MobileImage:  r.MobileImage,
		DesktopImage: r.DesktopImage,
		Link:         r.Link,
		IsActive:     r.IsActive,
		Ord:          r.Ord,
	}
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(bannerRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if payload.Title == "" || payload.DesktopImage == "" {
		return fail(c, "Title and desktop image are required")
	}
	created, err := h.service.Create(payload.toBanner())
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "banner": created})
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(bannerRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	updated, err := h.service.Update(payload.BannerID, payload.toBanner())
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "banner": updated})
}

type bannerIDRequest struct {
	BannerID int `json:"bannerId"`
}

func (h *Handler) delete(c *fiber.Ctx) error {
	payload := new(bannerIDRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Delete(payload.BannerID); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Banner deleted"})
}

type toggleBannerRequest struct {
	BannerID int  `json:"bannerId"`
	IsActive bool `json:"isActive"`
}

func (h *Handler) toggle(c *fiber.Ctx) error {
	payload := new(toggleBannerRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.SetActive(payload.BannerID, payload.IsActive); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Banner updated"})
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}

func domainMessage(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "Banner not found"
	}
	return err.Error()
}
