// Package location implements the Location and Comment repositories using
// PostgreSQL. Comments are owned by a location through locations.comment_ids.
package location

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

const table = "locations"

var columns = []string{
	"id", "name", "lat", "lng", "rating", "description", "image_path",
	"author_id", "mushroom_ids", "comment_ids", "created_at", "updated_at",
}

// Repo provides location and comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new location repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID   `db:"id"`
	Name        string      `db:"name"`
	Lat         float64     `db:"lat"`
	Lng         float64     `db:"lng"`
	Rating      int         `db:"rating"`
	Description string      `db:"description"`
	ImagePath   *string     `db:"image_path"`
	AuthorID    uuid.UUID   `db:"author_id"`
	MushroomIDs []uuid.UUID `db:"mushroom_ids"`
	CommentIDs  []uuid.UUID `db:"comment_ids"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r row) toDomain() domain.Location {
	return domain.Location{
		ID:          r.ID,
		Name:        r.Name,
		Coordinates: domain.Coordinates{Lat: r.Lat, Lng: r.Lng},
		Rating:      r.Rating,
		Description: r.Description,
		ImagePath:   r.ImagePath,
		AuthorID:    r.AuthorID,
		MushroomIDs: postgres.NonNilIDs(r.MushroomIDs),
		CommentIDs:  postgres.NonNilIDs(r.CommentIDs),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, b sq.Sqlizer) (*domain.Location, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build location query: %w", err)
	}
	return r.scanOne(ctx, id, query, args...)
}

func (r *Repo) scanOne(ctx context.Context, id uuid.UUID, query string, args ...any) (*domain.Location, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "location", id)
	}

	loc := rw.toDomain()
	return &loc, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a location by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return r.getOne(ctx, id, postgres.Builder.Select(columns...).From(table).Where("id = ?", id))
}

// GetForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Comment attach and detach on the row wait for it.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return r.getOne(ctx, id, postgres.Builder.Select(columns...).From(table).Where("id = ?", id).Suffix("FOR UPDATE"))
}

// List returns locations matching filter, newest first.
// An empty (non-nil) IDs filter returns an empty slice without querying.
func (r *Repo) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	if postgres.EmptyIDFilter(filter.IDs) {
		return []domain.Location{}, nil
	}

	b := postgres.Builder.Select(columns...).From(table).OrderBy("created_at DESC", "id ASC")
	if filter.Search != nil {
		b = b.Where(sq.ILike{"name": postgres.ContainsPattern(*filter.Search)})
	}
	if filter.AuthorID != nil {
		b = b.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.MushroomID != nil {
		b = b.Where("mushroom_ids @> ARRAY[?::uuid]", *filter.MushroomID)
	}
	if box := filter.Box; box != nil {
		b = b.Where(sq.And{sq.GtOrEq{"lat": box.MinLat}, sq.LtOrEq{"lat": box.MaxLat}})
		if box.MinLng <= box.MaxLng {
			b = b.Where(sq.And{sq.GtOrEq{"lng": box.MinLng}, sq.LtOrEq{"lng": box.MaxLng}})
		} else {
			// viewport crosses the antimeridian
			b = b.Where(sq.Or{sq.GtOrEq{"lng": box.MinLng}, sq.LtOrEq{"lng": box.MaxLng}})
		}
	}
	if filter.IDs != nil {
		b = b.Where("id = ANY(?::uuid[])", filter.IDs)
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list locations: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	out := make([]domain.Location, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts loc and returns the stored row.
func (r *Repo) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	b := postgres.Builder.Insert(table).
		Columns("id", "name", "lat", "lng", "rating", "description", "image_path", "author_id", "mushroom_ids").
		Values(loc.ID, loc.Name, loc.Coordinates.Lat, loc.Coordinates.Lng, loc.Rating, loc.Description,
			loc.ImagePath, loc.AuthorID, postgres.NonNilIDs(loc.MushroomIDs)).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, loc.ID, b)
}

// Update applies the non-nil fields of params.
// Returns domain.ErrNotFound if the location does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.LocationUpdateParams) (*domain.Location, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.Coordinates != nil {
		set["lat"] = params.Coordinates.Lat
		set["lng"] = params.Coordinates.Lng
	}
	if params.Rating != nil {
		set["rating"] = *params.Rating
	}
	if params.Description != nil {
		set["description"] = *params.Description
	}
	if params.ImagePath != nil {
		set["image_path"] = postgres.NullIfEmpty(*params.ImagePath)
	}
	if params.MushroomIDs != nil {
		set["mushroom_ids"] = postgres.NonNilIDs(domain.UnionIDs(*params.MushroomIDs, nil))
	}

	b := postgres.Builder.Update(table).
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + postgres.ColumnList(columns))
	return r.getOne(ctx, id, b)
}

// Delete removes the location row only; callers delete its comments in the
// same transaction. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "location", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("location %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Atomic list-field operations
// ---------------------------------------------------------------------------

const addMushroomSQL = `
UPDATE locations
SET mushroom_ids = CASE WHEN mushroom_ids @> ARRAY[$2::uuid] THEN mushroom_ids
                        ELSE array_append(mushroom_ids, $2::uuid) END,
    updated_at = now()
WHERE id = $1
RETURNING id, name, lat, lng, rating, description, image_path,
          author_id, mushroom_ids, comment_ids, created_at, updated_at`

const removeMushroomSQL = `
UPDATE locations
SET mushroom_ids = array_remove(mushroom_ids, $2::uuid), updated_at = now()
WHERE id = $1
RETURNING id, name, lat, lng, rating, description, image_path,
          author_id, mushroom_ids, comment_ids, created_at, updated_at`

const removeMushroomEverywhereSQL = `
UPDATE locations
SET mushroom_ids = array_remove(mushroom_ids, $1::uuid), updated_at = now()
WHERE mushroom_ids @> ARRAY[$1::uuid]`

// AddMushroom appends mushroomID to the location's list unless present.
func (r *Repo) AddMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return r.scanOne(ctx, locationID, addMushroomSQL, locationID, mushroomID)
}

// RemoveMushroom removes every occurrence of mushroomID from the location's list.
func (r *Repo) RemoveMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return r.scanOne(ctx, locationID, removeMushroomSQL, locationID, mushroomID)
}

// RemoveMushroomEverywhere drops mushroomID from all locations and returns
// the number of locations touched.
func (r *Repo) RemoveMushroomEverywhere(ctx context.Context, mushroomID uuid.UUID) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, removeMushroomEverywhereSQL, mushroomID)
	if err != nil {
		return 0, fmt.Errorf("remove mushroom %s from locations: %w", mushroomID, err)
	}
	return tag.RowsAffected(), nil
}
