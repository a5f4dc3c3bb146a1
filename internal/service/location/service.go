// Package location manages foraging spots, their mushroom sightings and
// the comments left on them.
package location

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type locationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	Update(ctx context.Context, id uuid.UUID, params domain.LocationUpdateParams) (*domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
	RemoveMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
}

type commentRepo interface {
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListComments(ctx context.Context, ids []uuid.UUID) ([]domain.Comment, error)
	LocationOfComment(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error)
	AverageRating(ctx context.Context, locationID uuid.UUID) (float64, int, error)
	CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	UpdateComment(ctx context.Context, id uuid.UUID, params domain.CommentUpdateParams) (*domain.Comment, error)
	DeleteComments(ctx context.Context, ids []uuid.UUID) (int64, error)
	AttachComment(ctx context.Context, locationID, commentID uuid.UUID) error
	DetachComment(ctx context.Context, locationID, commentID uuid.UUID) error
}

type mushroomChecker interface {
	ExistByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
}

type savedRepo interface {
	RemoveSavedEverywhere(ctx context.Context, kind domain.SavedKind, itemID uuid.UUID) (int64, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements location and comment operations.
type Service struct {
	locations locationRepo
	comments  commentRepo
	mushrooms mushroomChecker
	saved     savedRepo
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new location service. The postgres location repo
// serves both locations and comments.
func NewService(
	log *slog.Logger,
	locations locationRepo,
	comments commentRepo,
	mushrooms mushroomChecker,
	saved savedRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		locations: locations,
		comments:  comments,
		mushrooms: mushrooms,
		saved:     saved,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "location"),
	}
}
