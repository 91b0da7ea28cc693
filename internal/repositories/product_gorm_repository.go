package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"domemily/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// The gorm.DB should be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product, assigning an ID when missing.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product. created_at is never
// rewritten.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("*").Omit("id", "created_at").
		Updates(product)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates does not return ErrRecordNotFound for a missing row, so
		// we check RowsAffected.
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetBySlug retrieves a single product by its slug.
func (r *GORMProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// SlugExists reports whether any product other than excludeID holds slug.
func (r *GORMProductRepository) SlugExists(slug, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// ListAvailable returns available products ordered newest first.
func (r *GORMProductRepository) ListAvailable(limit int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Where("is_available = ?", true).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list available products: %w", err)
	}
	return products, nil
}

// ListRelated returns available products sharing a category, excluding the
// product they relate to.
func (r *GORMProductRepository) ListRelated(category models.Category, excludeID string, limit int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.
		Where("category = ? AND is_available = ?", category, true).
		Where("id <> ?", excludeID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	return products, nil
}

// ListDresses returns dresses matching the filter, newest first.
func (r *GORMProductRepository) ListDresses(filter DressFilter) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Where("category = ?", models.CategoryDresses)

	switch filter.Availability {
	case AvailabilityAvailable:
		query = query.Where("is_available = ?", true)
	case AvailabilityHidden:
		query = query.Where("is_available = ?", false)
	}

	if filter.Search != "" {
		// LIKE is case-insensitive on sqlite already; LOWER keeps postgres
		// behaving the same way.
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list dresses: %w", err)
	}
	return products, nil
}

// CountDresses reports all/available/hidden totals over every dress,
// regardless of any listing filter.
func (r *GORMProductRepository) CountDresses() (DressCounts, error) {
	var counts DressCounts
	dresses := r.db.Model(&models.Product{}).Where("category = ?", models.CategoryDresses)

	if err := dresses.Session(&gorm.Session{}).Count(&counts.All).Error; err != nil {
		return counts, fmt.Errorf("failed to count dresses: %w", err)
	}
	if err := dresses.Session(&gorm.Session{}).Where("is_available = ?", true).Count(&counts.Available).Error; err != nil {
		return counts, fmt.Errorf("failed to count available dresses: %w", err)
	}
	counts.Hidden = counts.All - counts.Available
	return counts, nil
}
