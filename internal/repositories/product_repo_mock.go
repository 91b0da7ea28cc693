package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"domemily/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same slug uniqueness as the relational store so slug
// assignment can be exercised without a database.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product, rejecting duplicate slugs.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slugTaken(product.Slug, product.ID) {
		return ErrDuplicateSlug
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	if r.slugTaken(product.Slug, product.ID) {
		return ErrDuplicateSlug
	}
	product.UpdatedAt = time.Now()
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// GetBySlug returns a product by its slug.
func (r *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// SlugExists reports whether any product other than excludeID holds slug.
func (r *MockProductRepository) SlugExists(slug, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.slugTaken(slug, excludeID), nil
}

func (r *MockProductRepository) slugTaken(slug, excludeID string) bool {
	for _, p := range r.products {
		if p.Slug == slug && p.ID != excludeID {
			return true
		}
	}
	return false
}

// ListAvailable returns available products, newest first.
func (r *MockProductRepository) ListAvailable(limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, p := range r.products {
		if p.IsAvailable {
			products = append(products, p)
		}
	}
	return capped(sortNewestFirst(products), limit), nil
}

// ListRelated returns available products of a category, excluding one ID.
func (r *MockProductRepository) ListRelated(category models.Category, excludeID string, limit int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, p := range r.products {
		if p.Category == category && p.IsAvailable && p.ID != excludeID {
			products = append(products, p)
		}
	}
	return capped(sortNewestFirst(products), limit), nil
}

// ListDresses returns dresses matching the filter, newest first.
func (r *MockProductRepository) ListDresses(filter DressFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var products []models.Product
	for _, p := range r.products {
		if p.Category != models.CategoryDresses {
			continue
		}
		if filter.Availability == AvailabilityAvailable && !p.IsAvailable {
			continue
		}
		if filter.Availability == AvailabilityHidden && p.IsAvailable {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		products = append(products, p)
	}
	return sortNewestFirst(products), nil
}

// CountDresses reports all/available/hidden totals over every dress.
func (r *MockProductRepository) CountDresses() (DressCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var counts DressCounts
	for _, p := range r.products {
		if p.Category != models.CategoryDresses {
			continue
		}
		counts.All++
		if p.IsAvailable {
			counts.Available++
		} else {
			counts.Hidden++
		}
	}
	return counts, nil
}

func sortNewestFirst(products []models.Product) []models.Product {
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products
}

func capped(products []models.Product, limit int) []models.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
