package rest

import (
	"time"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// imageLinker turns a stored image path into a public URL.
type imageLinker interface {
	PublicURL(bucket domain.MediaBucket, path string) string
}

type mushroomResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ImagePath        *string   `json:"imagePath"`
	ImageURL         *string   `json:"imageUrl"`
	ShortDescription string    `json:"shortDescription"`
	LongDescription  string    `json:"longDescription"`
	Toxicity         string    `json:"toxicity"`
	AuthorID         string    `json:"authorId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type locationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	ImagePath   *string   `json:"imagePath"`
	ImageURL    *string   `json:"imageUrl"`
	AuthorID    string    `json:"authorId"`
	MushroomIDs []string  `json:"mushroomIds"`
	CommentIDs  []string  `json:"commentIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type commentResponse struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ratingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type recipeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ImagePath       *string   `json:"imagePath"`
	ImageURL        *string   `json:"imageUrl"`
	Rating          float64   `json:"rating"`
	Servings        int       `json:"servings"`
	DurationHours   int       `json:"durationHours"`
	DurationMinutes int       `json:"durationMinutes"`
	Ingredients     string    `json:"ingredients"`
	Method          string    `json:"method"`
	AuthorID        string    `json:"authorId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// profileResponse is the authenticated user's own view.
type profileResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	BirthDate      *time.Time `json:"birthDate"`
	Country        *string    `json:"country"`
	ImagePath      *string    `json:"imagePath"`
	ImageURL       *string    `json:"imageUrl"`
	SavedMushrooms []string   `json:"savedMushrooms"`
	SavedLocations []string   `json:"savedLocations"`
	SavedRecipes   []string   `json:"savedRecipes"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// publicUserResponse is what other users see.
type publicUserResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Country  *string `json:"country"`
	ImageURL *string `json:"imageUrl"`
}

type collectionResponse struct {
	Mushrooms []mushroomResponse `json:"mushrooms"`
	Locations []locationResponse `json:"locations"`
	Recipes   []recipeResponse   `json:"recipes"`
}

type groupResponse struct {
	ID          string    `json:"id"`
	MushroomIDs []string  `json:"mushroomIds"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func imageURL(links imageLinker, bucket domain.MediaBucket, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := links.PublicURL(bucket, *path)
	return &u
}

func toMushroom(links imageLinker, m domain.Mushroom) mushroomResponse {
	return mushroomResponse{
		ID:               m.ID.String(),
		Name:             m.Name,
		ImagePath:        m.ImagePath,
		ImageURL:         imageURL(links, domain.MediaBucketMushrooms, m.ImagePath),
		ShortDescription: m.ShortDescription,
		LongDescription:  m.LongDescription,
		Toxicity:         m.Toxicity.String(),
		AuthorID:         m.AuthorID.String(),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toMushrooms(links imageLinker, list []domain.Mushroom) []mushroomResponse {
	out := make([]mushroomResponse, len(list))
	for i, m := range list {
		out[i] = toMushroom(links, m)
	}
	return out
}

func toLocation(links imageLinker, l domain.Location) locationResponse {
	return locationResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Lat:         l.Coordinates.Lat,
		Lng:         l.Coordinates.Lng,
		Rating:      l.Rating,
		Description: l.Description,
		ImagePath:   l.ImagePath,
		ImageURL:    imageURL(links, domain.MediaBucketLocations, l.ImagePath),
		AuthorID:    l.AuthorID.String(),
		MushroomIDs: idStrings(l.MushroomIDs),
		CommentIDs:  idStrings(l.CommentIDs),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toLocations(links imageLinker, list []domain.Location) []locationResponse {
	out := make([]locationResponse, len(list))
	for i, l := range list {
		out[i] = toLocation(links, l)
	}
	return out
}

func toComment(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID.String(),
		Rating:    c.Rating,
		Body:      c.Body,
		AuthorID:  c.AuthorID.String(),
		CreatedAt: c.CreatedAt,
	}
}

func toComments(list []domain.Comment) []commentResponse {
	out := make([]commentResponse, len(list))
	for i, c := range list {
		out[i] = toComment(c)
	}
	return out
}

func toRecipe(links imageLinker, r domain.Recipe) recipeResponse {
	return recipeResponse{
		ID:              r.ID.String(),
		Name:            r.Name,
		ImagePath:       r.ImagePath,
		ImageURL:        imageURL(links, domain.MediaBucketRecipes, r.ImagePath),
		Rating:          r.Rating,
		Servings:        r.Servings,
		DurationHours:   r.Duration.Hours,
		DurationMinutes: r.Duration.Minutes,
		Ingredients:     r.Ingredients,
		Method:          r.Method,
		AuthorID:        r.AuthorID.String(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toRecipes(links imageLinker, list []domain.Recipe) []recipeResponse {
	out := make([]recipeResponse, len(list))
	for i, r := range list {
		out[i] = toRecipe(links, r)
	}
	return out
}

func toProfile(links imageLinker, u *domain.User) profileResponse {
	return profileResponse{
		ID:             u.ID.String(),
		Name:           u.Name,
		Email:          u.Email,
		BirthDate:      u.BirthDate,
		Country:        u.Country,
		ImagePath:      u.ImagePath,
		ImageURL:       imageURL(links, domain.MediaBucketUsers, u.ImagePath),
		SavedMushrooms: idStrings(u.SavedMushrooms),
		SavedLocations: idStrings(u.SavedLocations),
		SavedRecipes:   idStrings(u.SavedRecipes),
		CreatedAt:      u.CreatedAt,
	}
}

func toPublicUser(links imageLinker, u *domain.User) publicUserResponse {
	return publicUserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Country:  u.Country,
		ImageURL: imageURL(links, domain.MediaBucketUsers, u.ImagePath),
	}
}

func toCollection(links imageLinker, mushrooms []domain.Mushroom, locations []domain.Location, recipes []domain.Recipe) collectionResponse {
	return collectionResponse{
		Mushrooms: toMushrooms(links, mushrooms),
		Locations: toLocations(links, locations),
		Recipes:   toRecipes(links, recipes),
	}
}

func toGroups(list []domain.SimilarityGroup) []groupResponse {
	out := make([]groupResponse, len(list))
	for i, g := range list {
		out[i] = groupResponse{
			ID:          g.ID.String(),
			MushroomIDs: idStrings(g.MushroomIDs),
			UpdatedAt:   g.UpdatedAt,
		}
	}
	return out
}
