package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"domemily/internal/models"
	"domemily/internal/repositories"
	"domemily/internal/services"
)

// CatalogHandler serves the public read surface: the home feed, product
// detail pages, the machine-consumable product list, and contact messages.
type CatalogHandler struct {
	catalog *services.CatalogService
	contact *services.ContactService
	log     *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, contact *services.ContactService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		contact: contact,
		log:     log,
	}
}

// RegisterRoutes registers the public routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleHomeFeed)
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:slug", h.HandleProductDetail)
	router.Post("/contact", h.HandleCreateContact)
}

// ProductResponse is the public field subset of a product.
type ProductResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Slug             string           `json:"slug"`
	Category         models.Category  `json:"category"`
	DressType        models.DressType `json:"dress_type"`
	DressTypeDisplay string           `json:"dress_type_display"`
	Description      string           `json:"description"`
	Price            string           `json:"price"`
	ImageURL         string           `json:"image_url"`
	IsAvailable      bool             `json:"is_available"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NewProductResponse maps a product onto its public representation.
func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Category:         p.Category,
		DressType:        p.DressType,
		DressTypeDisplay: p.DressType.Label(),
		Description:      p.Description,
		Price:            p.Price.StringFixed(2),
		ImageURL:         p.ImageURL,
		IsAvailable:      p.IsAvailable,
		CreatedAt:        p.CreatedAt,
	}
}

// NewProductResponses maps a product slice onto its public representation.
func NewProductResponses(products []models.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, NewProductResponse(p))
	}
	return responses
}

// HandleHomeFeed returns the latest available products for the collection
// grid.
func (h *CatalogHandler) HandleHomeFeed(c *fiber.Ctx) error {
	products, err := h.catalog.HomeFeed()
	if err != nil {
		h.log.Error("failed to load home feed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(fiber.Map{"products": NewProductResponses(products)})
}

// HandleListProducts returns every available product.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.catalog.AvailableProducts()
	if err != nil {
		h.log.Error("failed to list products", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(NewProductResponses(products))
}

// HandleProductDetail returns a product by slug together with its related
// products.
func (h *CatalogHandler) HandleProductDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.catalog.ProductBySlug(slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		h.log.Error("failed to get product", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
		})
	}

	related, err := h.catalog.RelatedProducts(product)
	if err != nil {
		h.log.Error("failed to load related products", zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve related products",
		})
	}

	return c.JSON(fiber.Map{
		"product":          NewProductResponse(*product),
		"related_products": NewProductResponses(related),
	})
}

// HandleCreateContact persists a contact message and returns the created
// record.
func (h *CatalogHandler) HandleCreateContact(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	record, err := h.contact.CreateMessage(body.Name, body.Email, body.Message)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": vErr.Problems,
			})
		}
		h.log.Error("failed to create contact message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}
