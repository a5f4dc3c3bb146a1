// Package similarity implements storage for similarity groups. Each row of
// similar_mushrooms is one group; the service keeps every mushroom id in at
// most one row.
package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// lockKey serializes group read-modify-write cycles across server instances.
const lockKey int64 = 0x6d79636f73696d // ASCII "mycosim"

// Repo provides similarity group persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new similarity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type row struct {
	ID          uuid.UUID   `db:"id"`
	MushroomIDs []uuid.UUID `db:"mushroom_ids"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r row) toDomain() domain.SimilarityGroup {
	return domain.SimilarityGroup{
		ID:          r.ID,
		MushroomIDs: postgres.NonNilIDs(r.MushroomIDs),
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainGroups(rows []row) []domain.SimilarityGroup {
	out := make([]domain.SimilarityGroup, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

// @> uses the GIN index on mushroom_ids.
const findByMushroomSQL = `
SELECT id, mushroom_ids, updated_at
FROM similar_mushrooms
WHERE mushroom_ids @> ARRAY[$1::uuid]
ORDER BY updated_at, id`

const listSQL = `
SELECT id, mushroom_ids, updated_at
FROM similar_mushrooms
WHERE cardinality(mushroom_ids) >= $1
ORDER BY updated_at, id`

const createSQL = `
INSERT INTO similar_mushrooms (mushroom_ids)
VALUES ($1::uuid[])
RETURNING id, mushroom_ids, updated_at`

const updateMembersSQL = `
UPDATE similar_mushrooms
SET mushroom_ids = $2::uuid[], updated_at = now()
WHERE id = $1
RETURNING id, mushroom_ids, updated_at`

// ---------------------------------------------------------------------------
// Locking
// ---------------------------------------------------------------------------

// Lock takes the transaction-scoped similarity lock. Must run inside a transaction.
func (r *Repo) Lock(ctx context.Context) error {
	return postgres.AdvisoryLock(ctx, r.pool, lockKey)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByMushroom returns every group whose member list contains id.
// Normally zero or one; more indicates a partition violation left by older data.
func (r *Repo) FindByMushroom(ctx context.Context, id uuid.UUID) ([]domain.SimilarityGroup, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, findByMushroomSQL, id); err != nil {
		return nil, fmt.Errorf("find similarity groups by mushroom %s: %w", id, err)
	}
	return toDomainGroups(rows), nil
}

// List returns groups having at least minMembers members.
func (r *Repo) List(ctx context.Context, minMembers int) ([]domain.SimilarityGroup, error) {
	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, listSQL, minMembers); err != nil {
		return nil, fmt.Errorf("list similarity groups: %w", err)
	}
	return toDomainGroups(rows), nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new group with the given members.
func (r *Repo) Create(ctx context.Context, mushroomIDs []uuid.UUID) (*domain.SimilarityGroup, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, createSQL, postgres.NonNilIDs(mushroomIDs)); err != nil {
		return nil, postgres.MapError(err, "similarity_group", uuid.Nil)
	}
	g := rw.toDomain()
	return &g, nil
}

// UpdateMembers replaces the member list of a group.
func (r *Repo) UpdateMembers(ctx context.Context, id uuid.UUID, mushroomIDs []uuid.UUID) (*domain.SimilarityGroup, error) {
	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, updateMembersSQL, id, postgres.NonNilIDs(mushroomIDs)); err != nil {
		return nil, postgres.MapError(err, "similarity_group", id)
	}
	g := rw.toDomain()
	return &g, nil
}

// Delete removes a group. Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM similar_mushrooms WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "similarity_group", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("similarity_group %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
