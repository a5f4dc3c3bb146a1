package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// EnsureInput holds the profile fields taken from the identity token when a
// user is seen for the first time.
type EnsureInput struct {
	Name  string
	Email string
}

// Validate validates the ensure input.
func (i EnsureInput) Validate() error {
	var errs []domain.FieldError

	if utf8.RuneCountInString(i.Name) > 255 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	errs = validateEmail(errs, i.Email)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for a partial profile update.
// nil = don't change; ptr("") clears country and image.
type UpdateInput struct {
	Name      *string
	Email     *string
	BirthDate *time.Time
	Country   *string
	ImagePath *string
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == nil && i.Email == nil && i.BirthDate == nil && i.Country == nil && i.ImagePath == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		if name == "" {
			errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
		} else if utf8.RuneCountInString(name) > 255 {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}
	if i.Email != nil {
		errs = validateEmail(errs, *i.Email)
	}
	if i.BirthDate != nil && i.BirthDate.After(time.Now()) {
		errs = append(errs, domain.FieldError{Field: "birth_date", Message: "must be in the past"})
	}
	if i.Country != nil && utf8.RuneCountInString(*i.Country) > 100 {
		errs = append(errs, domain.FieldError{Field: "country", Message: "too long"})
	}
	if i.ImagePath != nil && len(*i.ImagePath) > 512 {
		errs = append(errs, domain.FieldError{Field: "image_path", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SaveInput names a bookmark.
type SaveInput struct {
	Kind   domain.SavedKind
	ItemID uuid.UUID
}

// Validate validates the save input.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be mushrooms, locations or recipes"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(errs []domain.FieldError, email string) []domain.FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs
	}
	if len(email) > 320 {
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	return errs
}
