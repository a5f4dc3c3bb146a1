package mushroom

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const (
	maxNameLength             = 200
	maxShortDescriptionLength = 500
	maxLongDescriptionLength  = 20000
	maxSearchLength           = 200
	maxListLimit              = 500
)

// ListInput holds the parameters for listing mushrooms.
type ListInput struct {
	Search   *string
	AuthorID *uuid.UUID
	Toxicity *domain.Toxicity
	Limit    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Search != nil && utf8.RuneCountInString(*i.Search) > maxSearchLength {
		errs = append(errs, domain.FieldError{Field: "search", Message: "max 200 characters"})
	}
	if i.Toxicity != nil && !i.Toxicity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "toxicity", Message: "invalid value"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateInput holds the parameters for adding a mushroom to the atlas.
type CreateInput struct {
	Name             string
	ImagePath        *string
	ShortDescription string
	LongDescription  string
	// Toxicity defaults to UNKNOWN when empty.
	Toxicity domain.Toxicity
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = validateName(errs, i.Name)
	errs = validateDescriptions(errs, &i.ShortDescription, &i.LongDescription)
	if i.Toxicity != "" && !i.Toxicity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "toxicity", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a mushroom.
type UpdateInput struct {
	MushroomID       uuid.UUID
	Name             *string
	ImagePath        *string // ptr("") clears the image
	ShortDescription *string
	LongDescription  *string
	Toxicity         *domain.Toxicity
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.MushroomID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "mushroom_id", Message: "required"})
	}
	if i.Name == nil && i.ImagePath == nil && i.ShortDescription == nil &&
		i.LongDescription == nil && i.Toxicity == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = validateName(errs, *i.Name)
	}
	errs = validateDescriptions(errs, i.ShortDescription, i.LongDescription)
	if i.Toxicity != nil && !i.Toxicity.IsValid() {
		errs = append(errs, domain.FieldError{Field: "toxicity", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateName(errs []domain.FieldError, name string) []domain.FieldError {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	return errs
}

func validateDescriptions(errs []domain.FieldError, short, long *string) []domain.FieldError {
	if short != nil && utf8.RuneCountInString(*short) > maxShortDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "short_description", Message: "max 500 characters"})
	}
	if long != nil && utf8.RuneCountInString(*long) > maxLongDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "long_description", Message: "max 20000 characters"})
	}
	return errs
}
