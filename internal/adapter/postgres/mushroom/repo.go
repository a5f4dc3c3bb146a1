// Package mushroom implements the atlas Mushroom repository using PostgreSQL.
package mushroom

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

const table = "mushrooms"

var columns = []string{
	"id", "name", "image_path", "short_description", "long_description",
	"toxicity", "author_id", "created_at", "updated_at",
}

// Repo provides mushroom persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new mushroom repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID               uuid.UUID `db:"id"`
	Name             string    `db:"name"`
	ImagePath        *string   `db:"image_path"`
	ShortDescription string    `db:"short_description"`
	LongDescription  string    `db:"long_description"`
	Toxicity         string    `db:"toxicity"`
	AuthorID         uuid.UUID `db:"author_id"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (r row) toDomain() domain.Mushroom {
	return domain.Mushroom{
		ID:               r.ID,
		Name:             r.Name,
		ImagePath:        r.ImagePath,
		ShortDescription: r.ShortDescription,
		LongDescription:  r.LongDescription,
		Toxicity:         domain.Toxicity(r.Toxicity),
		AuthorID:         r.AuthorID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a mushroom by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error) {
	query, args, err := postgres.Builder.Select(columns...).From(table).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get mushroom: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "mushroom", id)
	}

	m := rw.toDomain()
	return &m, nil
}

// ExistByIDs reports which of ids exist.
func (r *Repo) ExistByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var found []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &found,
		`SELECT id FROM mushrooms WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("exist mushrooms: %w", err)
	}

	for _, id := range ids {
		result[id] = false
	}
	for _, id := range found {
		result[id] = true
	}
	return result, nil
}

// List returns mushrooms matching filter ordered by name.
// An empty (non-nil) IDs filter returns an empty slice without querying.
func (r *Repo) List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error) {
	if postgres.EmptyIDFilter(filter.IDs) {
		return []domain.Mushroom{}, nil
	}

	b := postgres.Builder.Select(columns...).From(table).OrderBy("name ASC", "id ASC")
	if filter.Search != nil {
		b = b.Where(sq.ILike{"name": postgres.ContainsPattern(*filter.Search)})
	}
	if filter.AuthorID != nil {
		b = b.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Toxicity != nil {
		b = b.Where(sq.Eq{"toxicity": string(*filter.Toxicity)})
	}
	if filter.IDs != nil {
		b = b.Where("id = ANY(?::uuid[])", filter.IDs)
	}
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list mushrooms: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list mushrooms: %w", err)
	}

	out := make([]domain.Mushroom, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts m and returns the stored row.
func (r *Repo) Create(ctx context.Context, m *domain.Mushroom) (*domain.Mushroom, error) {
	query, args, err := postgres.Builder.Insert(table).
		Columns("id", "name", "image_path", "short_description", "long_description", "toxicity", "author_id").
		Values(m.ID, m.Name, m.ImagePath, m.ShortDescription, m.LongDescription, string(m.Toxicity), m.AuthorID).
		Suffix("RETURNING " + postgres.ColumnList(columns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create mushroom: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "mushroom", m.ID)
	}

	created := rw.toDomain()
	return &created, nil
}

// Update applies the non-nil fields of params.
// Returns domain.ErrNotFound if the mushroom does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.MushroomUpdateParams) (*domain.Mushroom, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if params.Name != nil {
		set["name"] = *params.Name
	}
	if params.ImagePath != nil {
		set["image_path"] = postgres.NullIfEmpty(*params.ImagePath)
	}
	if params.ShortDescription != nil {
		set["short_description"] = *params.ShortDescription
	}
	if params.LongDescription != nil {
		set["long_description"] = *params.LongDescription
	}
	if params.Toxicity != nil {
		set["toxicity"] = string(*params.Toxicity)
	}

	query, args, err := postgres.Builder.Update(table).
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + postgres.ColumnList(columns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update mushroom: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "mushroom", id)
	}

	updated := rw.toDomain()
	return &updated, nil
}

// Delete removes a mushroom. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM mushrooms WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "mushroom", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mushroom %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
