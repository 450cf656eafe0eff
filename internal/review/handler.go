package review

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/review/product/:productId<[0-9]+>", h.productReviews)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/review/can-review", h.canReview)
	app.Post("/api/review/add", h.add)
	app.Post("/api/review/update", h.update)
	app.Post("/api/review/delete", h.delete)
	app.Post("/api/review/helpful", h.helpful)
	app.Post("/api/review/user", h.userReviews)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Get("/api/review/admin/list", adminOnly, h.adminList)
	app.Post("/api/review/admin/moderate", adminOnly, h.moderate)
	app.Post("/api/review/admin/delete", adminOnly, h.adminDelete)
}

func (h *Handler) productReviews(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return fail(c, "Product not found")
	}
	reviews, summary, err := h.service.ListByProduct(productID)
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"reviews":       reviews,
		"averageRating": summary.AverageRating,
		"reviewCount":   summary.ReviewCount,
	})
}

type canReviewRequest struct {
	UserID    int `json:"userId"`
	ProductID int `json:"productId"`
}

func (h *Handler) canReview(c *fiber.Ctx) error {
	payload := new(canReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	ok, err := h.service.CanReview(payload.UserID, payload.ProductID)
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "canReview": ok})
}

type addReviewRequest struct {
	UserID    int    `json:"userId"`
	UserName  string `json:"userName"`
	ProductID int    `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(addReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	created, err := h.service.Add(Review{
		UserID:    payload.UserID,
		UserName:  payload.UserName,
		ProductID: payload.ProductID,
		Rating:    payload.Rating,
		Title:     payload.Title,
		Comment:   payload.Comment,
	})
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review added", "review": created})
}

type updateReviewRequest struct {
	ReviewID int    `json:"reviewId"`
	UserID   int    `json:"userId"`
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Comment  string `json:"comment"`
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(updateReviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	updated, err := h.service.Update(payload.ReviewID, payload.UserID, payload.Rating, payload.Title, payload.Comment)
	if err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review updated", "review": updated})
}

type reviewIDRequest struct {
	ReviewID int `json:"reviewId"`
	UserID   int `json:"userId"`
}

func (h *Handler) delete(c *fiber.Ctx) error {
	payload := new(reviewIDRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Delete(payload.ReviewID, payload.UserID); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review deleted"})
}

func (h *Handler) helpful(c *fiber.Ctx) error {
	payload := new(reviewIDRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.MarkHelpful(payload.ReviewID); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Marked as helpful"})
}

type userReviewsRequest struct {
	UserID int `json:"userId"`
}

func (h *Handler) userReviews(c *fiber.Ctx) error {
	payload := new(userReviewsRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	reviews, err := h.service.ListByUser(payload.UserID)
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "reviews": reviews})
}

func (h *Handler) adminList(c *fiber.Ctx) error {
	reviews, err := h.service.ListAll()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "reviews": reviews})
}

type moderateRequest struct {
	ReviewID int  `json:"reviewId"`
	Approved bool `json:"approved"`
}

func (h *Handler) moderate(c *fiber.Ctx) error {
	payload := new(moderateRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Moderate(payload.ReviewID, payload.Approved); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review moderated"})
}

func (h *Handler) adminDelete(c *fiber.Ctx) error {
	payload := new(reviewIDRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.AdminDelete(payload.ReviewID); err != nil {
		return fail(c, domainMessage(err))
	}
	return c.JSON(fiber.Map{"success": true, "message": "Review deleted"})
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}

func domainMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Review not found"
	case errors.Is(err, ErrNotPurchased):
		return "You can only review products from delivered orders"
	case errors.Is(err, ErrAlreadyReviewed):
		return "You have already reviewed this product"
	case errors.Is(err, ErrInvalidRating):
		return "Rating must be between 1 and 5"
	case errors.Is(err, ErrNotOwner):
		return "Not authorized"
	default:
		return err.Error()
	}
}
