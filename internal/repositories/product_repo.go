package repositories

import (
	"errors"

	"domemily/internal/models"
)

var (
	// ErrNotFound is returned when a product lookup matches no row.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateSlug is returned when an insert or update violates the
	// unique slug constraint. Callers are expected to pick a new slug and
	// retry rather than surface this.
	ErrDuplicateSlug = errors.New("slug already in use")
)

// Availability narrows a dress listing by visibility.
type Availability string

const (
	AvailabilityAny       Availability = ""
	AvailabilityAvailable Availability = "available"
	AvailabilityHidden    Availability = "hidden"
)

// DressFilter narrows the managed dress listing.
type DressFilter struct {
	Availability Availability
	// Search is a case-insensitive substring match on the product name.
	Search string
}

// DressCounts reports totals over the full dress collection, ignoring any
// active search or availability filter.
type DressCounts struct {
	All       int64 `json:"all_count"`
	Available int64 `json:"available_count"`
	Hidden    int64 `json:"hidden_count"`
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	// SlugExists reports whether any product other than excludeID holds slug.
	SlugExists(slug, excludeID string) (bool, error)
	// ListAvailable returns available products, newest first. A limit of 0
	// or less means no limit.
	ListAvailable(limit int) ([]models.Product, error)
	// ListRelated returns available products of the given category excluding
	// excludeID, newest first.
	ListRelated(category models.Category, excludeID string, limit int) ([]models.Product, error)
	// ListDresses returns dresses matching the filter, newest first.
	ListDresses(filter DressFilter) ([]models.Product, error)
	CountDresses() (DressCounts, error)
}
