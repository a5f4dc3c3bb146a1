// Package user manages community profiles, bookmarks and the composite
// views shown on profile pages.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, params domain.UserUpdateParams) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error)
	RemoveSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error)
}

type mushroomLister interface {
	List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)
}

type locationLister interface {
	List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)
}

type recipeLister interface {
	List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error)
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements user profile and bookmark operations.
type Service struct {
	log       *slog.Logger
	users     userRepo
	mushrooms mushroomLister
	locations locationLister
	recipes   recipeLister
	audit     auditLogger
	tx        txManager
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	mushrooms mushroomLister,
	locations locationLister,
	recipes recipeLister,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:       logger.With("service", "user"),
		users:     users,
		mushrooms: mushrooms,
		locations: locations,
		recipes:   recipes,
		audit:     audit,
		tx:        tx,
	}
}
