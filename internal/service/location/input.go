package location

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 5000
	maxCommentLength     = 2000
	maxMushroomsPerSpot  = 200
	maxListLimit         = 1000
	maxRating            = 5
)

// ListInput holds the parameters for listing locations.
type ListInput struct {
	Search     *string
	AuthorID   *uuid.UUID
	MushroomID *uuid.UUID
	Box        *domain.BoundingBox
	Limit      int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Box != nil {
		lo := domain.Coordinates{Lat: i.Box.MinLat, Lng: i.Box.MinLng}
		hi := domain.Coordinates{Lat: i.Box.MaxLat, Lng: i.Box.MaxLng}
		if !lo.Valid() || !hi.Valid() || i.Box.MinLat > i.Box.MaxLat {
			errs = append(errs, domain.FieldError{Field: "bbox", Message: "invalid bounding box"})
		}
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 1000"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateInput holds the parameters for pinning a new location.
type CreateInput struct {
	Name        string
	Coordinates domain.Coordinates
	Rating      int
	Description string
	ImagePath   *string
	MushroomIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	errs = validateName(errs, i.Name)
	if !i.Coordinates.Valid() {
		errs = append(errs, domain.FieldError{Field: "coordinates", Message: "out of range"})
	}
	errs = validateRating(errs, "rating", i.Rating)
	if utf8.RuneCountInString(i.Description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	errs = validateMushroomIDs(errs, i.MushroomIDs)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput holds the parameters for editing a location.
type UpdateInput struct {
	LocationID  uuid.UUID
	Name        *string
	Coordinates *domain.Coordinates
	Rating      *int
	Description *string
	ImagePath   *string // ptr("") clears the image
	MushroomIDs *[]uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.LocationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "location_id", Message: "required"})
	}
	if i.Name == nil && i.Coordinates == nil && i.Rating == nil &&
		i.Description == nil && i.ImagePath == nil && i.MushroomIDs == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = validateName(errs, *i.Name)
	}
	if i.Coordinates != nil && !i.Coordinates.Valid() {
		errs = append(errs, domain.FieldError{Field: "coordinates", Message: "out of range"})
	}
	if i.Rating != nil {
		errs = validateRating(errs, "rating", *i.Rating)
	}
	if i.Description != nil && utf8.RuneCountInString(*i.Description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}
	if i.MushroomIDs != nil {
		errs = validateMushroomIDs(errs, *i.MushroomIDs)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CommentInput holds the parameters for commenting on a location.
type CommentInput struct {
	LocationID uuid.UUID
	Rating     int
	Body       string
}

// Validate checks all fields and collects all errors.
func (i CommentInput) Validate() error {
	var errs []domain.FieldError

	if i.LocationID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "location_id", Message: "required"})
	}
	errs = validateRating(errs, "rating", i.Rating)
	errs = validateBody(errs, i.Body)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateCommentInput holds the parameters for editing a comment.
type UpdateCommentInput struct {
	CommentID uuid.UUID
	Rating    *int
	Body      *string
}

// Validate checks all fields and collects all errors.
func (i UpdateCommentInput) Validate() error {
	var errs []domain.FieldError

	if i.CommentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "comment_id", Message: "required"})
	}
	if i.Rating == nil && i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Rating != nil {
		errs = validateRating(errs, "rating", *i.Rating)
	}
	if i.Body != nil {
		errs = validateBody(errs, *i.Body)
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

func validateRating(errs []domain.FieldError, field string, rating int) []domain.FieldError {
	if rating < 0 || rating > maxRating {
		return append(errs, domain.FieldError{Field: field, Message: "must be between 0 and 5"})
	}
	return errs
}

func validateBody(errs []domain.FieldError, body string) []domain.FieldError {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return append(errs, domain.FieldError{Field: "body", Message: "required"})
	}
	if utf8.RuneCountInString(trimmed) > maxCommentLength {
		return append(errs, domain.FieldError{Field: "body", Message: "max 2000 characters"})
	}
	return errs
}

func validateMushroomIDs(errs []domain.FieldError, ids []uuid.UUID) []domain.FieldError {
	if len(ids) > maxMushroomsPerSpot {
		return append(errs, domain.FieldError{Field: "mushroom_ids", Message: "max 200 items"})
	}
	for _, id := range ids {
		if id == uuid.Nil {
			return append(errs, domain.FieldError{Field: "mushroom_ids", Message: "contains empty id"})
		}
	}
	return errs
}
