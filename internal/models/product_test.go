package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"domemily/internal/models"
)

func TestCategoryValid(t *testing.T) {
	assert.True(t, models.CategoryDresses.Valid())
	assert.True(t, models.CategoryAccessories.Valid())
	assert.False(t, models.Category("shoes").Valid())
	assert.False(t, models.Category("").Valid())
}

func TestDressTypeValid(t *testing.T) {
	assert.True(t, models.DressTypeKente.Valid())
	assert.True(t, models.DressType("").Valid(), "empty dress type means not applicable")
	assert.False(t, models.DressType("spacesuit").Valid())
}

func TestDressTypeLabel(t *testing.T) {
	assert.Equal(t, "Evening Gown", models.DressTypeEveningGown.Label())
	assert.Equal(t, "Kaba & Slit", models.DressTypeKabaSlit.Label())
	assert.Equal(t, "", models.DressType("").Label(), "absent value maps to empty string, not a sentinel label")
}

func TestDressTypesCoversEveryLabel(t *testing.T) {
	types := models.DressTypes()
	assert.Len(t, types, 22)
	for _, dt := range types {
		assert.True(t, dt.Valid())
		assert.NotEmpty(t, dt.Label())
	}
}
