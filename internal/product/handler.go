package product

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/product/list", h.list)
	app.Post("/api/product/single", h.single)
}

func (h *Handler) RegisterAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	app.Post("/api/product/add", adminOnly, h.add)
	app.Post("/api/product/upload", adminOnly, h.upload)
	app.Post("/api/product/remove", adminOnly, h.remove)
	app.Post("/api/product/update-stock", adminOnly, h.updateStock)
	app.Get("/api/product/low-stock", adminOnly, h.lowStock)
}

func (h *Handler) list(c *fiber.Ctx) error {
	products, err := h.service.List()
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "products": products})
}

type singleRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) single(c *fiber.Ctx) error {
	payload := new(singleRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	p, err := h.service.GetByID(payload.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Product not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

type addProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"image"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Sizes       []string `json:"sizes"`
	Bestseller  bool     `json:"bestseller"`
	Stock       int      `json:"stock"`
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(addProductRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	created, err := h.service.Create(Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Images:      payload.Images,
		Category:    payload.Category,
		SubCategory: payload.SubCategory,
		Sizes:       payload.Sizes,
		Bestseller:  payload.Bestseller,
		Stock:       payload.Stock,
	})
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product Added", "product": created})
}

type removeRequest struct {
	ProductID int `json:"productId"`
}

func (h *Handler) remove(c *fiber.Ctx) error {
	payload := new(removeRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.Delete(payload.ProductID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fail(c, "Product not found")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product Removed"})
}

type updateStockRequest struct {
	ProductID int `json:"productId"`
	Stock     int `json:"stock"`
}

func (h *Handler) updateStock(c *fiber.Ctx) error {
	payload := new(updateStockRequest)
	if err := c.BodyParser(payload); err != nil {
		return fail(c, err.Error())
	}
	if err := h.service.SetStock(payload.ProductID, payload.Stock); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fail(c, "Product not found")
		case errors.Is(err, ErrInvalidQuantity):
			return fail(c, "Stock must be non-negative")
		}
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "message": "Stock updated"})
}

// upload stores product images on local disk under ./uploads/products
// and answers with the public URLs to put in the product payload.
func (h *Handler) upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, "No files uploaded")
	}
	files := form.File["images"]
	if len(files) == 0 {
		if f, ferr := c.FormFile("file"); ferr == nil && f != nil {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return fail(c, "No files uploaded")
	}

	if err := os.MkdirAll("./uploads/products", 0755); err != nil {
		return fail(c, err.Error())
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, "./uploads/products/"+name); err != nil {
			return fail(c, err.Error())
		}
		urls = append(urls, "/uploads/products/"+name)
	}
	return c.JSON(fiber.Map{"success": true, "urls": urls})
}

func (h *Handler) lowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 10)
	products, err := h.service.ListLowStock(threshold)
	if err != nil {
		return fail(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true, "products": products})
}

func fail(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": false, "message": message})
}
