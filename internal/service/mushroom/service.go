// Package mushroom manages the mushroom atlas.
package mushroom

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
)

type mushroomRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error)
	List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)
	Create(ctx context.Context, m *domain.Mushroom) (*domain.Mushroom, error)
	Update(ctx context.Context, id uuid.UUID, params domain.MushroomUpdateParams) (*domain.Mushroom, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type similarityService interface {
	UnlinkAll(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error)
	SimilarMushrooms(ctx context.Context, mushroomID uuid.UUID) ([]domain.Mushroom, error)
}

type locationRepo interface {
	RemoveMushroomEverywhere(ctx context.Context, mushroomID uuid.UUID) (int64, error)
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

// Service implements mushroom atlas operations.
type Service struct {
	mushrooms  mushroomRepo
	similarity similarityService
	locations  locationRepo
	saved      savedRepo
	audit      auditLogger
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new mushroom service.
func NewService(
	log *slog.Logger,
	mushrooms mushroomRepo,
	similarity similarityService,
	locations locationRepo,
	saved savedRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		mushrooms:  mushrooms,
		similarity: similarity,
		locations:  locations,
		saved:      saved,
		audit:      audit,
		tx:         tx,
		log:        log.With("service", "mushroom"),
	}
}
