package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"domemily/internal/models"
	"domemily/internal/repositories"
)

// ContactService handles contact message submissions from the public site.
type ContactService struct {
	repo     repositories.ContactRepository
	validate *validator.Validate
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository) *ContactService {
	return &ContactService{
		repo:     repo,
		validate: validator.New(),
	}
}

// CreateMessage validates and persists a contact message, returning the
// created record. Every violated rule is reported in one ValidationError.
func (s *ContactService) CreateMessage(name, email, message string) (*models.ContactMessage, error) {
	record := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}

	if err := s.validate.Struct(record); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		problems := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			problems = append(problems, contactProblem(fe))
		}
		return nil, &ValidationError{Problems: problems}
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Messages returns every contact message, newest first.
func (s *ContactService) Messages() ([]models.ContactMessage, error) {
	return s.repo.GetAll()
}

func contactProblem(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "Name must be 100 characters or fewer."
		}
		return "Name is required."
	case "Email":
		if fe.Tag() == "email" {
			return "A valid email address is required."
		}
		return "Email is required."
	case "Message":
		return "Message is required."
	default:
		return "Invalid value for " + fe.Field() + "."
	}
}
