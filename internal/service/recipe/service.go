// Package recipe manages cooking recipes.
package recipe

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

type recipeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error)
	Create(ctx context.Context, r *domain.Recipe) (*domain.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, params domain.RecipeUpdateParams) (*domain.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mushroomLister interface {
	List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)
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

// Service implements recipe operations.
type Service struct {
	recipes   recipeRepo
	mushrooms mushroomLister
	saved     savedRepo
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new recipe service.
func NewService(
	log *slog.Logger,
	recipes recipeRepo,
	mushrooms mushroomLister,
	saved savedRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		recipes:   recipes,
		mushrooms: mushrooms,
		saved:     saved,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "recipe"),
	}
}
