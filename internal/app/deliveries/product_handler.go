package deliveries

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siamaraya/araya-core/internal/app/middlewares"
	"github.com/siamaraya/araya-core/internal/app/models"
	"github.com/siamaraya/araya-core/internal/app/pkg"
	"github.com/siamaraya/araya-core/internal/app/services"
)

type ProductHandler struct {
	productService     *services.ProductService
	adminKeyMiddleware *middlewares.AdminKeyMiddleware
}

func NewProductHandler(productService *services.ProductService, adminKeyMiddleware *middlewares.AdminKeyMiddleware) *ProductHandler {
	return &ProductHandler{
		productService:     productService,
		adminKeyMiddleware: adminKeyMiddleware,
	}
}

func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productGroup := router.Group("/products")
	productGroup.Get("/", h.ListProducts)
	productGroup.Get("/:id", h.GetProduct)

	adminGroup := router.Group("/admin/products", h.adminKeyMiddleware.RequireAdminKey)
	adminGroup.Post("/", h.CreateProduct)
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	var category *models.ProductCategory
	if categoryStr := c.Query("category"); categoryStr != "" {
		productCategory := models.ProductCategory(categoryStr)
		category = &productCategory
	}

	products, err := h.productService.ListProducts(category)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.productService.GetProduct(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req models.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, product)
}
