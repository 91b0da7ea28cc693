package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"domemily/internal/models"
	"domemily/internal/repositories"
)

var dbSeq int64

// openTestDB opens a fresh in-memory sqlite database. Each test gets its own
// named shared-cache DB so GORM's connection pool sees the same schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ContactMessage{}))
	return db
}

func seedProduct(t *testing.T, repo *repositories.GORMProductRepository, name, slug string, category models.Category, available bool, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Slug:        slug,
		Category:    category,
		Description: "seeded",
		Price:       decimal.NewFromInt(100),
		IsAvailable: available,
		CreatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(product))
	return product
}

func TestGORMProductRepository_CreateRejectsDuplicateSlug(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	seedProduct(t, repo, "Red Gown", "red-gown", models.CategoryDresses, true, time.Now())

	dup := &models.Product{
		Name:        "Red Gown",
		Slug:        "red-gown",
		Category:    models.CategoryDresses,
		Description: "duplicate",
		Price:       decimal.NewFromInt(100),
	}
	assert.ErrorIs(t, repo.Create(dup), repositories.ErrDuplicateSlug)
}

func TestGORMProductRepository_SlugExists(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	product := seedProduct(t, repo, "Red Gown", "red-gown", models.CategoryDresses, true, time.Now())

	exists, err := repo.SlugExists("red-gown", "")
	assert.NoError(t, err)
	assert.True(t, exists)

	// The product being edited does not block its own slug.
	exists, err = repo.SlugExists("red-gown", product.ID)
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SlugExists("blue-gown", "")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestGORMProductRepository_GetBySlug(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	seedProduct(t, repo, "Red Gown", "red-gown", models.CategoryDresses, true, time.Now())

	product, err := repo.GetBySlug("red-gown")
	assert.NoError(t, err)
	assert.Equal(t, "Red Gown", product.Name)

	_, err = repo.GetBySlug("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_ListAvailable(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 10; i++ {
		seedProduct(t, repo, "Dress", fmt.Sprintf("dress-%d", i), models.CategoryDresses, true, base.Add(time.Duration(i)*time.Minute))
	}
	seedProduct(t, repo, "Hidden Dress", "hidden-dress", models.CategoryDresses, false, base.Add(2*time.Hour))

	feed, err := repo.ListAvailable(8)
	assert.NoError(t, err)
	assert.Len(t, feed, 8)
	for i, p := range feed {
		assert.True(t, p.IsAvailable)
		if i > 0 {
			assert.False(t, feed[i-1].CreatedAt.Before(p.CreatedAt), "expected newest first")
		}
	}
	assert.Equal(t, "dress-9", feed[0].Slug)

	all, err := repo.ListAvailable(0)
	assert.NoError(t, err)
	assert.Len(t, all, 10, "no limit should return every available product")
}

func TestGORMProductRepository_ListRelated(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	base := time.Now().Add(-time.Hour)
	source := seedProduct(t, repo, "Source", "source", models.CategoryDresses, true, base)
	for i := 0; i < 6; i++ {
		seedProduct(t, repo, "Sibling", fmt.Sprintf("sibling-%d", i), models.CategoryDresses, true, base.Add(time.Duration(i+1)*time.Minute))
	}
	seedProduct(t, repo, "Hidden Sibling", "hidden-sibling", models.CategoryDresses, false, base.Add(time.Hour))
	seedProduct(t, repo, "Silk Top", "silk-top", models.CategoryTops, true, base.Add(time.Hour))

	related, err := repo.ListRelated(models.CategoryDresses, source.ID, 4)
	assert.NoError(t, err)
	assert.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, source.ID, p.ID)
		assert.Equal(t, models.CategoryDresses, p.Category)
		assert.True(t, p.IsAvailable)
	}
}

func TestGORMProductRepository_ListDressesAndCounts(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	base := time.Now().Add(-time.Hour)
	seedProduct(t, repo, "Kente Gown", "kente-gown", models.CategoryDresses, true, base)
	seedProduct(t, repo, "Ankara Maxi", "ankara-maxi", models.CategoryDresses, true, base.Add(time.Minute))
	seedProduct(t, repo, "Office Shift", "office-shift", models.CategoryDresses, false, base.Add(2*time.Minute))
	seedProduct(t, repo, "Silk Top", "silk-top", models.CategoryTops, true, base.Add(3*time.Minute))

	dresses, err := repo.ListDresses(repositories.DressFilter{})
	assert.NoError(t, err)
	assert.Len(t, dresses, 3)

	available, err := repo.ListDresses(repositories.DressFilter{Availability: repositories.AvailabilityAvailable})
	assert.NoError(t, err)
	assert.Len(t, available, 2)

	hidden, err := repo.ListDresses(repositories.DressFilter{Availability: repositories.AvailabilityHidden})
	assert.NoError(t, err)
	assert.Len(t, hidden, 1)
	assert.Equal(t, "Office Shift", hidden[0].Name)

	searched, err := repo.ListDresses(repositories.DressFilter{Search: "ANKARA"})
	assert.NoError(t, err)
	assert.Len(t, searched, 1)
	assert.Equal(t, "Ankara Maxi", searched[0].Name)

	counts, err := repo.CountDresses()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), counts.All)
	assert.Equal(t, int64(2), counts.Available)
	assert.Equal(t, int64(1), counts.Hidden)
	assert.Equal(t, counts.All, counts.Available+counts.Hidden)
}

func TestGORMProductRepository_UpdatePreservesCreatedAt(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	created := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	product := seedProduct(t, repo, "Red Gown", "red-gown", models.CategoryDresses, true, created)

	product.Name = "Scarlet Gown"
	product.CreatedAt = time.Now()
	require.NoError(t, repo.Update(product))

	reloaded, err := repo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Scarlet Gown", reloaded.Name)
	assert.True(t, reloaded.CreatedAt.Equal(created), "created_at must never be rewritten")
}

func TestGORMProductRepository_UpdateAndDeleteNotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t))

	missing := &models.Product{
		ID:          "does-not-exist",
		Name:        "Ghost",
		Slug:        "ghost",
		Description: "x",
		Price:       decimal.NewFromInt(1),
	}
	assert.ErrorIs(t, repo.Update(missing), repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete("does-not-exist"), repositories.ErrNotFound)
}

func TestGORMContactRepository_Create(t *testing.T) {
	repo := repositories.NewGORMContactRepository(openTestDB(t))

	message := &models.ContactMessage{
		Name:    "Ama",
		Email:   "ama@example.com",
		Message: "Do you ship abroad?",
	}
	require.NoError(t, repo.Create(message))
	assert.NotEmpty(t, message.ID)

	messages, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "Ama", messages[0].Name)
}
