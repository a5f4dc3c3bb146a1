package location

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

var commentColumns = []string{"id", "rating", "body", "author_id", "created_at"}

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	Rating    int       `db:"rating"`
	Body      string    `db:"body"`
	AuthorID  uuid.UUID `db:"author_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		Rating:    r.Rating,
		Body:      r.Body,
		AuthorID:  r.AuthorID,
		CreatedAt: r.CreatedAt,
	}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const attachCommentSQL = `
UPDATE locations
SET comment_ids = array_append(comment_ids, $2::uuid), updated_at = now()
WHERE id = $1 AND NOT comment_ids @> ARRAY[$2::uuid]`

const detachCommentSQL = `
UPDATE locations
SET comment_ids = array_remove(comment_ids, $2::uuid), updated_at = now()
WHERE id = $1 AND comment_ids @> ARRAY[$2::uuid]`

const ownerOfCommentSQL = `
SELECT id FROM locations WHERE comment_ids @> ARRAY[$1::uuid] LIMIT 1`

const averageRatingSQL = `
SELECT coalesce(avg(c.rating), 0)::double precision AS avg, count(c.id) AS n
FROM locations l
LEFT JOIN comments c ON c.id = ANY(l.comment_ids)
WHERE l.id = $1
GROUP BY l.id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetComment returns a comment by primary key.
func (r *Repo) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query, args, err := postgres.Builder.Select(commentColumns...).From("comments").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get comment: %w", err)
	}

	var rw commentRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	c := rw.toDomain()
	return &c, nil
}

// ListComments returns the comments with the given ids, newest first.
// Empty ids return an empty slice without querying.
func (r *Repo) ListComments(ctx context.Context, ids []uuid.UUID) ([]domain.Comment, error) {
	if len(ids) == 0 {
		return []domain.Comment{}, nil
	}

	query, args, err := postgres.Builder.Select(commentColumns...).From("comments").
		Where("id = ANY(?::uuid[])", ids).
		OrderBy("created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments: %w", err)
	}

	var rows []commentRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	out := make([]domain.Comment, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// LocationOfComment returns the id of the location owning commentID.
// Returns domain.ErrNotFound for orphaned or unknown comments.
func (r *Repo) LocationOfComment(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, ownerOfCommentSQL, commentID).Scan(&id); err != nil {
		return uuid.Nil, postgres.MapError(err, "comment", commentID)
	}
	return id, nil
}

// AverageRating returns the mean comment rating of a location and the
// number of comments it is computed from.
func (r *Repo) AverageRating(ctx context.Context, locationID uuid.UUID) (float64, int, error) {
	var avg float64
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, averageRatingSQL, locationID).Scan(&avg, &n); err != nil {
		return 0, 0, postgres.MapError(err, "location", locationID)
	}
	return avg, n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateComment inserts a comment row. Callers attach it to a location.
func (r *Repo) CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	query, args, err := postgres.Builder.Insert("comments").
		Columns("id", "rating", "body", "author_id").
		Values(c.ID, c.Rating, c.Body, c.AuthorID).
		Suffix("RETURNING " + postgres.ColumnList(commentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create comment: %w", err)
	}

	var rw commentRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "comment", c.ID)
	}
	created := rw.toDomain()
	return &created, nil
}

// UpdateComment applies the non-nil fields of params.
func (r *Repo) UpdateComment(ctx context.Context, id uuid.UUID, params domain.CommentUpdateParams) (*domain.Comment, error) {
	set := map[string]any{}
	if params.Rating != nil {
		set["rating"] = *params.Rating
	}
	if params.Body != nil {
		set["body"] = *params.Body
	}
	if len(set) == 0 {
		return r.GetComment(ctx, id)
	}

	query, args, err := postgres.Builder.Update("comments").
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + postgres.ColumnList(commentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update comment: %w", err)
	}

	var rw commentRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}
	updated := rw.toDomain()
	return &updated, nil
}

// DeleteComments removes comment rows by id and returns how many were deleted.
func (r *Repo) DeleteComments(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := postgres.Builder.Delete("comments").Where(sq.Expr("id = ANY(?::uuid[])", ids)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete comments: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete comments: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AttachComment appends commentID to the location's comment list.
// Returns domain.ErrNotFound if the location does not exist.
func (r *Repo) AttachComment(ctx context.Context, locationID, commentID uuid.UUID) error {
	return r.execOnLocation(ctx, locationID, attachCommentSQL, locationID, commentID)
}

// DetachComment removes commentID from the location's comment list.
// Returns domain.ErrNotFound if the location does not list the comment.
func (r *Repo) DetachComment(ctx context.Context, locationID, commentID uuid.UUID) error {
	return r.execOnLocation(ctx, locationID, detachCommentSQL, locationID, commentID)
}

func (r *Repo) execOnLocation(ctx context.Context, locationID uuid.UUID, query string, args ...any) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "location", locationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("location %s: %w", locationID, domain.ErrNotFound)
	}
	return nil
}
