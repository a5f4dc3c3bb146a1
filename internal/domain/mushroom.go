package domain

import (
	"time"

	"github.com/google/uuid"
)

// Mushroom is an atlas species entry.
type Mushroom struct {
	ID               uuid.UUID
	Name             string
	ImagePath        *string
	ShortDescription string
	LongDescription  string
	Toxicity         Toxicity
	AuthorID         uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MushroomUpdateParams holds the fields that may change on a mushroom.
type MushroomUpdateParams struct {
	Name             *string
	ImagePath        *string
	ShortDescription *string
	LongDescription  *string
	Toxicity         *Toxicity
}

// IsEmpty reports whether no field is set.
func (p MushroomUpdateParams) IsEmpty() bool {
	return p.Name == nil && p.ImagePath == nil && p.ShortDescription == nil &&
		p.LongDescription == nil && p.Toxicity == nil
}

// MushroomFilter narrows mushroom listings.
type MushroomFilter struct {
	Search   *string
	AuthorID *uuid.UUID
	Toxicity *Toxicity
	IDs      []uuid.UUID
	Limit    int
}
