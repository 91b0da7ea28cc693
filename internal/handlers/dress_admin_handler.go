package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"domemily/internal/repositories"
	"domemily/internal/services"
)

// DressAdminHandler serves the admin surface: the managed dress listing, the
// upload, edit, toggle, and delete flows, and the contact message inbox.
type DressAdminHandler struct {
	catalog *services.CatalogService
	contact *services.ContactService
	log     *zap.Logger
}

// NewDressAdminHandler creates a new DressAdminHandler.
func NewDressAdminHandler(catalog *services.CatalogService, contact *services.ContactService, log *zap.Logger) *DressAdminHandler {
	return &DressAdminHandler{
		catalog: catalog,
		contact: contact,
		log:     log,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *DressAdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/messages", h.HandleListMessages)

	dressRoutes := adminRoutes.Group("/dresses")
	dressRoutes.Get("/", h.HandleManagedListing)
	dressRoutes.Post("/", h.HandleCreateDress)
	dressRoutes.Put("/:id", h.HandleUpdateDress)
	dressRoutes.Post("/:id/toggle", h.HandleToggleDress)
	dressRoutes.Delete("/:id", h.HandleDeleteDress)
}

// HandleListMessages returns every contact message, newest first.
func (h *DressAdminHandler) HandleListMessages(c *fiber.Ctx) error {
	messages, err := h.contact.Messages()
	if err != nil {
		h.log.Error("failed to load contact messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve messages",
		})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

// HandleManagedListing returns the dress listing narrowed by the filter and
// search query, plus counts over the full dress collection.
func (h *DressAdminHandler) HandleManagedListing(c *fiber.Ctx) error {
	filter := repositories.DressFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}
	switch c.Query("filter") {
	case string(repositories.AvailabilityAvailable):
		filter.Availability = repositories.AvailabilityAvailable
	case string(repositories.AvailabilityHidden):
		filter.Availability = repositories.AvailabilityHidden
	}

	listing, err := h.catalog.ManagedDressListing(filter)
	if err != nil {
		h.log.Error("failed to load managed dress listing", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve dresses",
		})
	}

	return c.JSON(fiber.Map{
		"products":       NewProductResponses(listing.Products),
		"counts":         listing.Counts,
		"current_filter": string(filter.Availability),
		"search_query":   filter.Search,
	})
}

// HandleCreateDress creates a new dress from a multipart form. The image
// file is required; all validation problems come back in one response with
// the submitted fields echoed for repopulation.
func (h *DressAdminHandler) HandleCreateDress(c *fiber.Ctx) error {
	form := dressFormFromRequest(c)

	image, file, err := imageFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image upload",
		})
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.catalog.CreateDress(c.Context(), form, image)
	if err != nil {
		return h.respondCatalogError(c, form, err)
	}

	h.log.Info("dress created",
		zap.String("product_id", product.ID),
		zap.String("slug", product.Slug))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("%q has been uploaded successfully!", product.Name),
		"product": NewProductResponse(*product),
	})
}

// HandleUpdateDress edits an existing dress. The image is optional; when it
// is omitted the prior image is retained.
func (h *DressAdminHandler) HandleUpdateDress(c *fiber.Ctx) error {
	id := c.Params("id")
	form := dressFormFromRequest(c)

	image, file, err := imageFromRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid image upload",
		})
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.catalog.UpdateDress(c.Context(), id, form, image)
	if err != nil {
		return h.respondCatalogError(c, form, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%q has been updated.", product.Name),
		"product": NewProductResponse(*product),
	})
}

// HandleToggleDress flips a dress between visible and hidden.
func (h *DressAdminHandler) HandleToggleDress(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.catalog.ToggleAvailability(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		h.log.Error("failed to toggle dress", zap.String("product_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}

	status := "hidden"
	if product.IsAvailable {
		status = "visible"
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%q is now %s.", product.Name, status),
		"product": NewProductResponse(*product),
	})
}

// HandleDeleteDress permanently removes a dress.
func (h *DressAdminHandler) HandleDeleteDress(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.catalog.DeleteDress(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		h.log.Error("failed to delete dress", zap.String("product_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product has been deleted.",
	})
}

// respondCatalogError maps service errors onto HTTP responses. Validation
// failures echo the submitted form so the admin screen can repopulate.
func (h *DressAdminHandler) respondCatalogError(c *fiber.Ctx, form services.DressForm, err error) error {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": vErr.Problems,
			"form": fiber.Map{
				"name":        form.Name,
				"price":       form.Price,
				"description": form.Description,
				"dress_type":  form.DressType,
			},
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	h.log.Error("catalog operation failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not save product",
	})
}

// dressFormFromRequest reads the submitted form fields. The availability
// checkbox is a three-state input: absent, checked, or explicitly off.
func dressFormFromRequest(c *fiber.Ctx) services.DressForm {
	form := services.DressForm{
		Name:        strings.TrimSpace(c.FormValue("name")),
		Price:       strings.TrimSpace(c.FormValue("price")),
		Description: strings.TrimSpace(c.FormValue("description")),
		DressType:   strings.TrimSpace(c.FormValue("dress_type")),
	}

	switch strings.ToLower(c.FormValue("is_available")) {
	case "":
		// not submitted: create defaults to available, edit keeps the
		// current value
	case "on", "true", "1":
		available := true
		form.IsAvailable = &available
	default:
		available := false
		form.IsAvailable = &available
	}

	return form
}

// imageFromRequest opens the uploaded image file when one was attached. The
// returned file must be closed by the caller when non-nil.
func imageFromRequest(c *fiber.Ctx) (*services.ImageUpload, multipart.File, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// no file attached
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &services.ImageUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, file, nil
}
