package recipe

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const (
	maxNameLength = 200
	maxTextLength = 20000
	maxServings   = 100
	maxHours      = 240
	maxListLimit  = 500
)

// ListInput holds the parameters for listing recipes.
type ListInput struct {
	Search   *string
	AuthorID *uuid.UUID
	Limit    int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	if i.Limit < 0 || i.Limit > maxListLimit {
		return domain.NewValidationError("limit", "must be between 0 and 500")
	}
	return nil
}

// CreateInput holds the parameters for publishing a recipe.
type CreateInput struct {
	Name        string
	ImagePath   *string
	Rating      float64
	Servings    int
	Duration    domain.CookingDuration
	Ingredients string
	Method      string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = validateName(errs, i.Name)
	errs = validateRating(errs, i.Rating)
	errs = validateServings(errs, i.Servings)
	errs = validateDuration(errs, i.Duration)
	errs = validateText(errs, "ingredients", i.Ingredients, true)
	errs = validateText(errs, "method", i.Method, false)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a recipe.
type UpdateInput struct {
	RecipeID    uuid.UUID
	Name        *string
	ImagePath   *string // ptr("") clears the image
	Rating      *float64
	Servings    *int
	Duration    *domain.CookingDuration
	Ingredients *string
	Method      *string
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.RecipeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "recipe_id", Message: "required"})
	}
	if i.Name == nil && i.ImagePath == nil && i.Rating == nil && i.Servings == nil &&
		i.Duration == nil && i.Ingredients == nil && i.Method == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = validateName(errs, *i.Name)
	}
	if i.Rating != nil {
		errs = validateRating(errs, *i.Rating)
	}
	if i.Servings != nil {
		errs = validateServings(errs, *i.Servings)
	}
	if i.Duration != nil {
		errs = validateDuration(errs, *i.Duration)
	}
	if i.Ingredients != nil {
		errs = validateText(errs, "ingredients", *i.Ingredients, true)
	}
	if i.Method != nil {
		errs = validateText(errs, "method", *i.Method, false)
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

func validateRating(errs []domain.FieldError, rating float64) []domain.FieldError {
	if math.IsNaN(rating) || rating < 0 || rating > 5 {
		return append(errs, domain.FieldError{Field: "rating", Message: "must be between 0 and 5"})
	}
	return errs
}

func validateServings(errs []domain.FieldError, servings int) []domain.FieldError {
	if servings < 1 || servings > maxServings {
		return append(errs, domain.FieldError{Field: "servings", Message: "must be between 1 and 100"})
	}
	return errs
}

func validateDuration(errs []domain.FieldError, d domain.CookingDuration) []domain.FieldError {
	if d.Hours < 0 || d.Hours > maxHours {
		errs = append(errs, domain.FieldError{Field: "duration.hours", Message: "must be between 0 and 240"})
	}
	if d.Minutes < 0 || d.Minutes > 59 {
		errs = append(errs, domain.FieldError{Field: "duration.minutes", Message: "must be between 0 and 59"})
	}
	return errs
}

func validateText(errs []domain.FieldError, field, text string, required bool) []domain.FieldError {
	trimmed := strings.TrimSpace(text)
	if required && trimmed == "" {
		return append(errs, domain.FieldError{Field: field, Message: "required"})
	}
	if utf8.RuneCountInString(trimmed) > maxTextLength {
		return append(errs, domain.FieldError{Field: field, Message: "max 20000 characters"})
	}
	return errs
}
