package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a community member. The ID is the subject of the identity token
// issued by the external identity provider.
type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	BirthDate      *time.Time
	Country        *string
	ImagePath      *string
	SavedMushrooms []uuid.UUID
	SavedLocations []uuid.UUID
	SavedRecipes   []uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SavedIDs returns the bookmark list for kind.
func (u *User) SavedIDs(kind SavedKind) []uuid.UUID {
	switch kind {
	case SavedKindMushrooms:
		return u.SavedMushrooms
	case SavedKindLocations:
		return u.SavedLocations
	case SavedKindRecipes:
		return u.SavedRecipes
	}
	return nil
}

// UserUpdateParams holds the profile fields that may change.
type UserUpdateParams struct {
	Name      *string
	Email     *string
	BirthDate *time.Time
	Country   *string
	ImagePath *string
}

// IsEmpty reports whether no field is set.
func (p UserUpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.BirthDate == nil &&
		p.Country == nil && p.ImagePath == nil
}

// SavedItems groups resolved bookmarks for profile pages.
type SavedItems struct {
	Mushrooms []Mushroom
	Locations []Location
	Recipes   []Recipe
}

// AuthoredItems groups everything a user has published.
type AuthoredItems struct {
	Mushrooms []Mushroom
	Locations []Location
	Recipes   []Recipe
}
