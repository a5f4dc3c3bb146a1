package domain

import (
	"time"

	"github.com/google/uuid"
)

// Location is a foraging spot pinned on the map.
type Location struct {
	ID          uuid.UUID
	Name        string
	Coordinates Coordinates
	Rating      int
	Description string
	ImagePath   *string
	AuthorID    uuid.UUID
	MushroomIDs []uuid.UUID
	CommentIDs  []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are within WGS84 bounds.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// HasMushroom reports whether the mushroom was recorded at this location.
func (l *Location) HasMushroom(id uuid.UUID) bool {
	for _, m := range l.MushroomIDs {
		if m == id {
			return true
		}
	}
	return false
}

// LocationUpdateParams holds the fields that may change on a location.
// nil means "leave as is".
type LocationUpdateParams struct {
	Name        *string
	Coordinates *Coordinates
	Rating      *int
	Description *string
	ImagePath   *string
	MushroomIDs *[]uuid.UUID
}

// IsEmpty reports whether no field is set.
func (p LocationUpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Coordinates == nil && p.Rating == nil &&
		p.Description == nil && p.ImagePath == nil && p.MushroomIDs == nil
}

// BoundingBox limits location searches to a map viewport.
type BoundingBox struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// LocationFilter narrows location listings. Zero value lists everything.
type LocationFilter struct {
	Search     *string
	AuthorID   *uuid.UUID
	MushroomID *uuid.UUID
	Box        *BoundingBox
	IDs        []uuid.UUID
	Limit      int
}

// Comment is a rated remark left on a location.
type Comment struct {
	ID        uuid.UUID
	Rating    int
	Body      string
	AuthorID  uuid.UUID
	CreatedAt time.Time
}

// CommentUpdateParams holds the fields that may change on a comment.
type CommentUpdateParams struct {
	Rating *int
	Body   *string
}
