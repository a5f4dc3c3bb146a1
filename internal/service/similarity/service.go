// Package similarity maintains groups of look-alike mushrooms. Groups form a
// partition: a mushroom belongs to at most one group, and linking two
// mushrooms creates, joins or merges groups so that this stays true.
package similarity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type groupRepo interface {
	Lock(ctx context.Context) error
	FindByMushroom(ctx context.Context, mushroomID uuid.UUID) ([]domain.SimilarityGroup, error)
	List(ctx context.Context, minMembers int) ([]domain.SimilarityGroup, error)
	Create(ctx context.Context, mushroomIDs []uuid.UUID) (*domain.SimilarityGroup, error)
	UpdateMembers(ctx context.Context, id uuid.UUID, mushroomIDs []uuid.UUID) (*domain.SimilarityGroup, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mushroomRepo interface {
	ExistByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MinVisibleMembers is the smallest group size returned by reads.
// Smaller rows are leftovers that Repair removes.
const MinVisibleMembers = 2

// Service provides similarity group operations.
type Service struct {
	groups    groupRepo
	mushrooms mushroomRepo
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new similarity service.
func NewService(
	log *slog.Logger,
	groups groupRepo,
	mushrooms mushroomRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		groups:    groups,
		mushrooms: mushrooms,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "similarity"),
	}
}
