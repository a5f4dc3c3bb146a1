// Package recipe implements the Recipe repository using PostgreSQL.
package recipe

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

const table = "recipes"

var columns = []string{
	"id", "name", "image_path", "rating", "servings", "duration_hours", "duration_minutes",
	"ingredients", "method", "author_id", "created_at", "updated_at",
}

// Repo provides recipe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recipe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	ImagePath       *string   `db:"image_path"`
	Rating          float64   `db:"rating"`
	Servings        int       `db:"servings"`
	DurationHours   int       `db:"duration_hours"`
	DurationMinutes int       `db:"duration_minutes"`
	Ingredients     string    `db:"ingredients"`
	Method          string    `db:"method"`
	AuthorID        uuid.UUID `db:"author_id"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		ImagePath:   r.ImagePath,
		Rating:      r.Rating,
		Servings:    r.Servings,
		Duration:    domain.CookingDuration{Hours: r.DurationHours, Minutes: r.DurationMinutes},
		Ingredients: r.Ingredients,
		Method:      r.Method,
		AuthorID:    r.AuthorID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, b sq.Sqlizer) (*domain.Recipe, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipe query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "recipe", id)
	}

	rec := rw.toDomain()
	return &rec, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a recipe by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	return r.getOne(ctx, id, postgres.Builder.Select(columns...).From(table).Where("id = ?", id))
}

// List returns recipes matching filter, best rated first.
// An empty (non-nil) IDs filter returns an empty slice without querying.
func (r *Repo) List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	if postgres.EmptyIDFilter(filter.IDs) {
		return []domain.Recipe{}, nil
	}

	b := postgres.Builder.Select(columns...).From(table).OrderBy("rating DESC", "created_at DESC", "id ASC")
	if filter.Search != nil {
		pattern := postgres.ContainsPattern(*filter.Search)
		b = b.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"ingredients": pattern}})
	}
	if filter.AuthorID != nil {
		b = b.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.IDs != nil {
		b = b.Where("id = ANY(?::uuid[])", filter.IDs)
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recipes: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	out := make([]domain.Recipe, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts rec and returns the stored row.
func (r *Repo) Create(ctx context.Context, rec *domain.Recipe) (*domain.Recipe, error) {
	b := postgres.Builder.Insert(table).
		Columns("id", "name", "image_path", "rating", "servings", "duration_hours", "duration_minutes",
			"ingredients", "method", "author_id").
		Values(rec.ID, rec.Name, rec.ImagePath, rec.Rating, rec.Servings, rec.Duration.Hours, rec.Duration.Minutes,
			rec.Ingredients, rec.Method, rec.AuthorID).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, rec.ID, b)
}

// Update applies the non-nil fields of params.
// Returns domain.ErrNotFound if the recipe does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.RecipeUpdateParams) (*domain.Recipe, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.ImagePath != nil {
		set["image_path"] = postgres.NullIfEmpty(*params.ImagePath)
	}
	if params.Rating != nil {
		set["rating"] = *params.Rating
	}
	if params.Servings != nil {
		set["servings"] = *params.Servings
	}
	if params.Duration != nil {
		set["duration_hours"] = params.Duration.Hours
		set["duration_minutes"] = params.Duration.Minutes
	}
	if params.Ingredients != nil {
		set["ingredients"] = *params.Ingredients
	}
	if params.Method != nil {
		set["method"] = *params.Method
	}

	b := postgres.Builder.Update(table).
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, id, b)
}

// Delete removes a recipe. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "recipe", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
