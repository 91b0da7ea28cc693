package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"domemily/internal/models"
	"domemily/internal/repositories"
	"domemily/pkg/media"
)

const (
	homeFeedLimit = 8
	relatedLimit  = 4
	// maxSlugRetries bounds the insert retry loop when a concurrent writer
	// takes the chosen slug between the probe and the insert.
	maxSlugRetries = 5
)

// EventPublisher publishes product lifecycle events for downstream
// consumers. A nil publisher disables events.
type EventPublisher interface {
	PublishProductEvent(eventType string, payload map[string]interface{}) error
}

// ImageUpload is an image blob submitted with a create or edit request.
type ImageUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}

// DressForm carries the raw form fields of a create or edit request. Price
// arrives as the submitted string so format errors can be reported alongside
// the other field problems. A nil IsAvailable means "not submitted": new
// products default to available, edits keep their current value.
type DressForm struct {
	Name        string `form:"name"`
	Price       string `form:"price"`
	Description string `form:"description"`
	DressType   string `form:"dress_type"`
	IsAvailable *bool  `form:"is_available"`
}

// DressListing is the managed admin view: the filtered dress set plus counts
// computed over the full collection.
type DressListing struct {
	Products []models.Product         `json:"products"`
	Counts   repositories.DressCounts `json:"counts"`
}

// CatalogService handles business logic for the product catalog: slug
// assignment, availability filtering, and the admin create/edit/toggle/delete
// flows.
type CatalogService struct {
	repo      repositories.ProductRepository
	uploader  media.Uploader
	publisher EventPublisher
	validate  *validator.Validate
	log       *zap.Logger
}

// NewCatalogService creates a new CatalogService. uploader and publisher may
// be nil: a nil uploader makes image uploads fail validation, a nil publisher
// disables lifecycle events.
func NewCatalogService(repo repositories.ProductRepository, uploader media.Uploader, publisher EventPublisher, log *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		uploader:  uploader,
		publisher: publisher,
		validate:  validator.New(),
		log:       log,
	}
}

// HomeFeed returns the latest available products for the collection grid.
func (s *CatalogService) HomeFeed() ([]models.Product, error) {
	return s.repo.ListAvailable(homeFeedLimit)
}

// AvailableProducts returns every available product, newest first.
func (s *CatalogService) AvailableProducts() ([]models.Product, error) {
	return s.repo.ListAvailable(0)
}

// ProductBySlug retrieves a single product for its detail page.
func (s *CatalogService) ProductBySlug(slug string) (*models.Product, error) {
	return s.repo.GetBySlug(slug)
}

// ProductByID retrieves a single product by its store identity.
func (s *CatalogService) ProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// RelatedProducts returns available products sharing the given product's
// category, excluding the product itself.
func (s *CatalogService) RelatedProducts(product *models.Product) ([]models.Product, error) {
	return s.repo.ListRelated(product.Category, product.ID, relatedLimit)
}

// ManagedDressListing returns the admin dress listing narrowed by the filter,
// together with all/available/hidden counts over the full dress collection.
func (s *CatalogService) ManagedDressListing(filter repositories.DressFilter) (*DressListing, error) {
	products, err := s.repo.ListDresses(filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountDresses()
	if err != nil {
		return nil, err
	}
	return &DressListing{Products: products, Counts: counts}, nil
}

// CreateDress validates the form, uploads the image, and persists a new
// dress with a freshly assigned unique slug. All violations are accumulated
// into a single ValidationError; nothing is persisted unless every step
// succeeds.
func (s *CatalogService) CreateDress(ctx context.Context, form DressForm, image *ImageUpload) (*models.Product, error) {
	problems, price := s.validateDressForm(form)
	if image == nil {
		problems = append(problems, "Please upload an image.")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	imageURL, uploadProblem := s.uploadImage(ctx, image)
	if uploadProblem != "" {
		return nil, &ValidationError{Problems: []string{uploadProblem}}
	}

	available := true
	if form.IsAvailable != nil {
		available = *form.IsAvailable
	}

	product := &models.Product{
		Name:        form.Name,
		Category:    models.CategoryDresses,
		DressType:   models.DressType(form.DressType),
		Description: form.Description,
		Price:       price,
		ImageURL:    imageURL,
		IsAvailable: available,
	}

	if err := s.createWithUniqueSlug(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.created", product)
	return product, nil
}

// UpdateDress validates the form and applies it to an existing dress. The
// image is optional; when omitted the prior image URL is retained. The slug
// is never recomputed, even when the name changes. Products outside the
// dresses category are not editable through this surface and report NotFound.
func (s *CatalogService) UpdateDress(ctx context.Context, id string, form DressForm, image *ImageUpload) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product.Category != models.CategoryDresses {
		return nil, repositories.ErrNotFound
	}

	problems, price := s.validateDressForm(form)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if image != nil {
		imageURL, uploadProblem := s.uploadImage(ctx, image)
		if uploadProblem != "" {
			return nil, &ValidationError{Problems: []string{uploadProblem}}
		}
		product.ImageURL = imageURL
	}

	product.Name = form.Name
	product.DressType = models.DressType(form.DressType)
	product.Description = form.Description
	product.Price = price
	if form.IsAvailable != nil {
		product.IsAvailable = *form.IsAvailable
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", product)
	return product, nil
}

// ToggleAvailability flips the visibility flag of a single product.
func (s *CatalogService) ToggleAvailability(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.IsAvailable = !product.IsAvailable
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}

	s.publishEvent("product.updated", product)
	return product, nil
}

// DeleteDress permanently removes a product.
func (s *CatalogService) DeleteDress(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publishEvent("product.deleted", product)
	return nil
}

// validateDressForm accumulates every violated rule and returns the parsed
// price when it is usable.
func (s *CatalogService) validateDressForm(form DressForm) ([]string, decimal.Decimal) {
	var problems []string
	var price decimal.Decimal

	if form.Name == "" {
		problems = append(problems, "Dress name is required.")
	} else if err := s.validate.Var(form.Name, "max=150"); err != nil {
		problems = append(problems, "Dress name must be 150 characters or fewer.")
	}

	if form.Price == "" {
		problems = append(problems, "Price is required.")
	} else {
		parsed, err := decimal.NewFromString(form.Price)
		switch {
		case err != nil:
			problems = append(problems, "Invalid price format.")
		case parsed.IsNegative():
			problems = append(problems, "Price must be a positive number.")
		default:
			price = parsed.Round(2)
		}
	}

	if form.Description == "" {
		problems = append(problems, "Description is required.")
	}

	if form.DressType == "" {
		problems = append(problems, "Please select a dress type.")
	} else if !models.DressType(form.DressType).Valid() {
		problems = append(problems, "Please select a valid dress type.")
	}

	return problems, price
}

// uploadImage sends the blob to the media gateway and returns the hosted
// URL, or a problem message when the gateway is absent or fails. Gateway
// failures are recoverable validation problems, never crashes.
func (s *CatalogService) uploadImage(ctx context.Context, image *ImageUpload) (string, string) {
	if s.uploader == nil {
		s.log.Warn("media uploader not configured, rejecting image upload")
		return "", "Failed to upload image. Please try again."
	}

	url, err := s.uploader.Upload(ctx, image.Reader, image.Size, image.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrInvalidImageType):
			return "", "Only JPEG, PNG and WebP images are allowed."
		case errors.Is(err, media.ErrFileTooBig):
			return "", "Image is too large. Please upload a smaller file."
		default:
			s.log.Error("image upload failed", zap.Error(err))
			return "", "Failed to upload image. Please try again."
		}
	}
	return url, ""
}

// createWithUniqueSlug assigns the lowest free slug suffix and inserts the
// product. The storage layer's unique constraint is the arbiter: when a
// concurrent writer wins the chosen slug, the insert is retried with the
// next free suffix instead of surfacing the constraint error.
func (s *CatalogService) createWithUniqueSlug(product *models.Product) error {
	for attempt := 0; attempt < maxSlugRetries; attempt++ {
		if product.Slug == "" {
			if err := s.assignSlug(product); err != nil {
				return err
			}
		}

		err := s.repo.Create(product)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicateSlug) {
			return err
		}
		product.Slug = ""
	}
	return fmt.Errorf("could not assign a unique slug for %q", product.Name)
}

// assignSlug derives a slug from the product name, appending -1, -2, ...
// until it finds one no other product holds. It runs only when the product
// has no slug yet; an existing slug is never recomputed.
func (s *CatalogService) assignSlug(product *models.Product) error {
	if product.Slug != "" {
		return nil
	}

	base := Slugify(product.Name)
	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		exists, err := s.repo.SlugExists(candidate, product.ID)
		if err != nil {
			return fmt.Errorf("failed to probe slug %s: %w", candidate, err)
		}
		if !exists {
			product.Slug = candidate
			return nil
		}
	}
}

// publishEvent emits a product lifecycle event. Publish failures are logged
// and never fail the request.
func (s *CatalogService) publishEvent(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}

	payload := map[string]interface{}{
		"id":           product.ID,
		"slug":         product.Slug,
		"name":         product.Name,
		"is_available": product.IsAvailable,
	}
	if err := s.publisher.PublishProductEvent(eventType, payload); err != nil {
		s.log.Warn("failed to publish catalog event",
			zap.String("event", eventType),
			zap.String("product_id", product.ID),
			zap.Error(err))
	}
}
