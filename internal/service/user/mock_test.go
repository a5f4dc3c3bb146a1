package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

var (
	_ userRepo       = &userRepoMock{}
	_ mushroomLister = &mushroomListerMock{}
	_ locationLister = &locationListerMock{}
	_ recipeLister   = &recipeListerMock{}
)

type userRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CreateFunc      func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, params domain.UserUpdateParams) (*domain.User, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	AddSavedFunc    func(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error)
	RemoveSavedFunc func(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error)

	lock  sync.RWMutex
	calls struct {
		GetByID []uuid.UUID
		Create  []*domain.User
	}
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	m.lock.Lock()
	m.calls.GetByID = append(m.calls.GetByID, id)
	m.lock.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByIDCalls() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.GetByID
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if m.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, u)
	m.lock.Unlock()
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) CreateCalls() []*domain.User {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *userRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.UserUpdateParams) (*domain.User, error) {
	if m.UpdateFunc == nil {
		panic("userRepoMock.UpdateFunc: method is nil but userRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, id, params)
}

func (m *userRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("userRepoMock.DeleteFunc: method is nil but userRepo.Delete was just called")
	}
	return m.DeleteFunc(ctx, id)
}

func (m *userRepoMock) AddSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error) {
	if m.AddSavedFunc == nil {
		panic("userRepoMock.AddSavedFunc: method is nil but userRepo.AddSaved was just called")
	}
	return m.AddSavedFunc(ctx, userID, kind, itemID)
}

func (m *userRepoMock) RemoveSaved(ctx context.Context, userID uuid.UUID, kind domain.SavedKind, itemID uuid.UUID) (*domain.User, error) {
	if m.RemoveSavedFunc == nil {
		panic("userRepoMock.RemoveSavedFunc: method is nil but userRepo.RemoveSaved was just called")
	}
	return m.RemoveSavedFunc(ctx, userID, kind, itemID)
}

type mushroomListerMock struct {
	ListFunc func(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)

	lock  sync.RWMutex
	calls []domain.MushroomFilter
}

func (m *mushroomListerMock) List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error) {
	if m.ListFunc == nil {
		panic("mushroomListerMock.ListFunc: method is nil but mushroomLister.List was just called")
	}
	m.lock.Lock()
	m.calls = append(m.calls, filter)
	m.lock.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *mushroomListerMock) ListCalls() []domain.MushroomFilter {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls
}

type locationListerMock struct {
	ListFunc func(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error)

	lock  sync.RWMutex
	calls []domain.LocationFilter
}

func (m *locationListerMock) List(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	if m.ListFunc == nil {
		panic("locationListerMock.ListFunc: method is nil but locationLister.List was just called")
	}
	m.lock.Lock()
	m.calls = append(m.calls, filter)
	m.lock.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *locationListerMock) ListCalls() []domain.LocationFilter {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls
}

type recipeListerMock struct {
	ListFunc func(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error)

	lock  sync.RWMutex
	calls []domain.RecipeFilter
}

func (m *recipeListerMock) List(ctx context.Context, filter domain.RecipeFilter) ([]domain.Recipe, error) {
	if m.ListFunc == nil {
		panic("recipeListerMock.ListFunc: method is nil but recipeLister.List was just called")
	}
	m.lock.Lock()
	m.calls = append(m.calls, filter)
	m.lock.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *recipeListerMock) ListCalls() []domain.RecipeFilter {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls
}

type auditLoggerMock struct {
	lock    sync.Mutex
	records []domain.AuditRecord
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.records = append(m.records, record)
	return nil
}

type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
