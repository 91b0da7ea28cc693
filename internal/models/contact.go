package models

import "time"

// ContactMessage is a message submitted through the public contact form.
// Messages are created once and never mutated or deleted by this system.
type ContactMessage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Email     string    `json:"email" gorm:"type:varchar(254);not null" validate:"required,email"`
	Message   string    `json:"message" gorm:"type:text;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
