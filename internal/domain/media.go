package domain

import (
	"io"
	"time"
)

// MediaBucket groups uploaded images by the entity family they illustrate.
type MediaBucket string

const (
	MediaBucketMushrooms MediaBucket = "mushrooms"
	MediaBucketLocations MediaBucket = "locations"
	MediaBucketRecipes   MediaBucket = "recipes"
	MediaBucketUsers     MediaBucket = "users"
)

func (b MediaBucket) String() string { return string(b) }

func (b MediaBucket) IsValid() bool {
	switch b {
	case MediaBucketMushrooms, MediaBucketLocations, MediaBucketRecipes, MediaBucketUsers:
		return true
	}
	return false
}

// MediaObject is a stored image opened for reading. The caller must close Body.
type MediaObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ModifiedAt  time.Time
}
