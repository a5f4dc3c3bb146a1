package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a cooking recipe that may feature atlas mushrooms.
type Recipe struct {
	ID          uuid.UUID
	Name        string
	ImagePath   *string
	Rating      float64
	Servings    int
	Duration    CookingDuration
	Ingredients string
	Method      string
	AuthorID    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CookingDuration is the preparation time split the way recipes display it.
type CookingDuration struct {
	Hours   int
	Minutes int
}

// TotalMinutes returns the duration in minutes.
func (d CookingDuration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// RecipeUpdateParams holds the fields that may change on a recipe.
type RecipeUpdateParams struct {
	Name        *string
	ImagePath   *string
	Rating      *float64
	Servings    *int
	Duration    *CookingDuration
	Ingredients *string
	Method      *string
}

// IsEmpty reports whether no field is set.
func (p RecipeUpdateParams) IsEmpty() bool {
	return p.Name == nil && p.ImagePath == nil && p.Rating == nil && p.Servings == nil &&
		p.Duration == nil && p.Ingredients == nil && p.Method == nil
}

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	Search   *string
	AuthorID *uuid.UUID
	IDs      []uuid.UUID
	Limit    int
}
