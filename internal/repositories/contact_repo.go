package repositories

import (
	"domemily/internal/models"
)

// ContactRepository defines the interface for contact message persistence.
// Messages are insert-only; nothing in the system mutates or deletes them.
type ContactRepository interface {
	Create(message *models.ContactMessage) error
	GetAll() ([]models.ContactMessage, error)
}
