package handlers

import (
	"fmt"
	"strconv"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:term", h.HandleGetProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a product and its images.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperrors.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts lists products using ?limit= and ?offset=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	page, err := parsePagination(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.validate.Struct(page); err != nil {
		return respondValidation(c, err)
	}

	products, err := h.service.FindAll(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a product by id, title or slug.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.FindOnePlain(c.UserContext(), c.Params("term"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleUpdateProduct applies a partial update.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return respondError(c, err)
	}

	var patch dto.UpdateProductRequest
	if err := c.BodyParser(&patch); err != nil {
		return respondError(c, apperrors.InvalidInput("Invalid request body"))
	}
	if err := h.validate.Struct(patch); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its images.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := uuidParam(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.Remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", id),
	})
}

func uuidParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return "", apperrors.InvalidInput("Validation failed (uuid is expected)")
	}
	return id, nil
}

func parsePagination(c *fiber.Ctx) (dto.Pagination, error) {
	var page dto.Pagination
	for key, dst := range map[string]**int{"limit": &page.Limit, "offset": &page.Offset} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, apperrors.InvalidInput(fmt.Sprintf("%s must be an integer", key))
		}
		*dst = &v
	}
	return page, nil
}
