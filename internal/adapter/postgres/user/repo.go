// Package user implements the User repository using PostgreSQL, including
// the per-user bookmark lists stored as uuid arrays.
package user

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

const table = "users"

var columns = []string{
	"id", "name", "email", "birth_date", "country", "image_path",
	"saved_mushrooms", "saved_locations", "saved_recipes", "created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID             uuid.UUID   `db:"id"`
	Name           string      `db:"name"`
	Email          string      `db:"email"`
	BirthDate      *time.Time  `db:"birth_date"`
	Country        *string     `db:"country"`
	ImagePath      *string     `db:"image_path"`
	SavedMushrooms []uuid.UUID `db:"saved_mushrooms"`
	SavedLocations []uuid.UUID `db:"saved_locations"`
	SavedRecipes   []uuid.UUID `db:"saved_recipes"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (r row) toDomain() domain.User {
	return domain.User{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		BirthDate:      r.BirthDate,
		Country:        r.Country,
		ImagePath:      r.ImagePath,
		SavedMushrooms: postgres.NonNilIDs(r.SavedMushrooms),
		SavedLocations: postgres.NonNilIDs(r.SavedLocations),
		SavedRecipes:   postgres.NonNilIDs(r.SavedRecipes),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// savedColumn maps a bookmark kind to its column. Kinds are validated by the
// service; an unknown kind here is a programming error.
func savedColumn(kind domain.SavedKind) (string, error) {
	switch kind {
	case domain.SavedKindMushrooms:
		return "saved_mushrooms", nil
	case domain.SavedKindLocations:
		return "saved_locations", nil
	case domain.SavedKindRecipes:
		return "saved_recipes", nil
	}
	return "", fmt.Errorf("saved kind %q: %w", kind, domain.ErrValidation)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, b sq.Sqlizer) (*domain.User, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := rw.toDomain()
	return &u, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, id, postgres.Builder.Select(columns...).From(table).Where("id = ?", id))
}

// GetByEmail returns a user by email address (case-insensitive).
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, uuid.Nil, postgres.Builder.Select(columns...).From(table).Where("lower(email) = lower(?)", email))
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts u. Returns domain.ErrAlreadyExists on a duplicate id or email.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	b := postgres.Builder.Insert(table).
		Columns("id", "name", "email", "birth_date", "country", "image_path").
		Values(u.ID, u.Name, u.Email, u.BirthDate, u.Country, u.ImagePath).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, u.ID, b)
}

// Update applies the non-nil fields of params. Empty strings clear the
// optional country and image columns.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.UserUpdateParams) (*domain.User, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Email != nil {
		set["email"] = *params.Email
	}
	if params.BirthDate != nil {
		set["birth_date"] = *params.BirthDate
	}
	if params.Country != nil {
		set["country"] = postgres.NullIfEmpty(*params.Country)
	}
	if params.ImagePath != nil {
		set["image_path"] = postgres.NullIfEmpty(*params.ImagePath)
	}

	b := postgres.Builder.Update(table).
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, id, b)
}

// Delete removes a user. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Bookmarks
// ---------------------------------------------------------------------------

// AddSaved appends itemID to the user's list for kind unless already present.
func (r *Repo) AddSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error) {
	col, err := savedColumn(kind)
	if err != nil {
		return nil, err
	}

	expr := sq.Expr(fmt.Sprintf(
		"CASE WHEN %[1]s @> ARRAY[?::uuid] THEN %[1]s ELSE array_append(%[1]s, ?::uuid) END", col),
		itemID, itemID)

	b := postgres.Builder.Update(table).
		Set(col, expr).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", userID).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, userID, b)
}

// RemoveSaved removes itemID from the user's list for kind.
func (r *Repo) RemoveSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error) {
	col, err := savedColumn(kind)
	if err != nil {
		return nil, err
	}

	b := postgres.Builder.Update(table).
		Set(col, sq.Expr(fmt.Sprintf("array_remove(%s, ?::uuid)", col), itemID)).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", userID).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, userID, b)
}

// RemoveSavedEverywhere drops itemID from every user's list for kind, used
// when the bookmarked entity is deleted. Returns the number of users touched.
func (r *Repo) RemoveSavedEverywhere(ctx context.Context, kind domain.SavedKind, itemID uuid.UUID) (int64, error) {
	col, err := savedColumn(kind)
	if err != nil {
		return 0, err
	}

	query, args, err := postgres.Builder.Update(table).
		Set(col, sq.Expr(fmt.Sprintf("array_remove(%s, ?::uuid)", col), itemID)).
		Where(fmt.Sprintf("%s @> ARRAY[?::uuid]", col), itemID).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build remove saved: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("remove saved %s %s: %w", kind, itemID, err)
	}
	return tag.RowsAffected(), nil
}
