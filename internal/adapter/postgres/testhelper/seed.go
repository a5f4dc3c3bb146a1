package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUser creates a user with empty bookmark lists.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	ts := now()
	user := domain.User{
		ID:             uuid.New(),
		Name:           "Forager " + suffix,
		Email:          "forager-" + suffix + "@example.com",
		SavedMushrooms: []uuid.UUID{},
		SavedLocations: []uuid.UUID{},
		SavedRecipes:   []uuid.UUID{},
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedMushroom creates an atlas entry authored by authorID.
func SeedMushroom(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, name string) domain.Mushroom {
	t.Helper()

	ts := now()
	m := domain.Mushroom{
		ID:               uuid.New(),
		Name:             name,
		ShortDescription: "short " + name,
		LongDescription:  "long " + name,
		Toxicity:         domain.ToxicityEdible,
		AuthorID:         authorID,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO mushrooms (id, name, short_description, long_description, toxicity, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Name, m.ShortDescription, m.LongDescription, string(m.Toxicity), m.AuthorID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMushroom: %v", err)
	}

	return m
}

// SeedLocation creates a location at the given coordinates listing mushroomIDs.
func SeedLocation(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, lat, lng float64, mushroomIDs ...uuid.UUID) domain.Location {
	t.Helper()

	if mushroomIDs == nil {
		mushroomIDs = []uuid.UUID{}
	}

	ts := now()
	loc := domain.Location{
		ID:          uuid.New(),
		Name:        "Spot " + uniqueSuffix(),
		Coordinates: domain.Coordinates{Lat: lat, Lng: lng},
		Rating:      3,
		Description: "mossy clearing",
		AuthorID:    authorID,
		MushroomIDs: mushroomIDs,
		CommentIDs:  []uuid.UUID{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO locations (id, name, lat, lng, rating, description, author_id, mushroom_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		loc.ID, loc.Name, lat, lng, loc.Rating, loc.Description, loc.AuthorID, loc.MushroomIDs, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLocation: %v", err)
	}

	return loc
}

// SeedRecipe creates a recipe whose ingredient text is ingredients.
func SeedRecipe(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, ingredients string) domain.Recipe {
	t.Helper()

	ts := now()
	r := domain.Recipe{
		ID:          uuid.New(),
		Name:        "Recipe " + uniqueSuffix(),
		Rating:      4.5,
		Servings:    2,
		Duration:    domain.CookingDuration{Hours: 0, Minutes: 40},
		Ingredients: ingredients,
		Method:      "fry gently",
		AuthorID:    authorID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO recipes (id, name, rating, servings, duration_hours, duration_minutes, ingredients, method, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.Name, r.Rating, r.Servings, r.Duration.Hours, r.Duration.Minutes, r.Ingredients, r.Method, r.AuthorID, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRecipe: %v", err)
	}

	return r
}
