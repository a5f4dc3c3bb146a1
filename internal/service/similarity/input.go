package similarity

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// LinkInput names two mushrooms that look alike.
type LinkInput struct {
	MushroomA uuid.UUID
	MushroomB uuid.UUID
}

// Validate checks that both ids are set and distinct.
func (i LinkInput) Validate() error {
	var errs []domain.FieldError

	if i.MushroomA == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "mushroom_a", Message: "required"})
	}
	if i.MushroomB == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "mushroom_b", Message: "required"})
	}
	if len(errs) == 0 && i.MushroomA == i.MushroomB {
		errs = append(errs, domain.FieldError{Field: "mushroom_b", Message: "must differ from mushroom_a"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
