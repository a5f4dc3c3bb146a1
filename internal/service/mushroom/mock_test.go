package mushroom

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
)

var (
	_ mushroomRepo      = &mushroomRepoMock{}
	_ similarityService = &similarityServiceMock{}
	_ locationRepo      = &locationRepoMock{}
	_ savedRepo         = &savedRepoMock{}
	_ auditLogger       = &auditLoggerMock{}
	_ txManager         = &txManagerMock{}
)

type mushroomRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error)
	ListFunc    func(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error)
	CreateFunc  func(ctx context.Context, m *domain.Mushroom) (*domain.Mushroom, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, params domain.MushroomUpdateParams) (*domain.Mushroom, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	mu    sync.RWMutex
	calls struct {
		List   []domain.MushroomFilter
		Create []*domain.Mushroom
		Update []domain.MushroomUpdateParams
		Delete []uuid.UUID
	}
}

func (m *mushroomRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error) {
	if m.GetByIDFunc == nil {
		panic("mushroomRepoMock.GetByIDFunc: method is nil but mushroomRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *mushroomRepoMock) List(ctx context.Context, filter domain.MushroomFilter) ([]domain.Mushroom, error) {
	if m.ListFunc == nil {
		panic("mushroomRepoMock.ListFunc: method is nil but mushroomRepo.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, filter)
	m.mu.Unlock()
	return m.ListFunc(ctx, filter)
}

func (m *mushroomRepoMock) ListCalls() []domain.MushroomFilter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.List
}

func (m *mushroomRepoMock) Create(ctx context.Context, mushroom *domain.Mushroom) (*domain.Mushroom, error) {
	if m.CreateFunc == nil {
		panic("mushroomRepoMock.CreateFunc: method is nil but mushroomRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, mushroom)
	m.mu.Unlock()
	return m.CreateFunc(ctx, mushroom)
}

func (m *mushroomRepoMock) CreateCalls() []*domain.Mushroom {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Create
}

func (m *mushroomRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.MushroomUpdateParams) (*domain.Mushroom, error) {
	if m.UpdateFunc == nil {
		panic("mushroomRepoMock.UpdateFunc: method is nil but mushroomRepo.Update was just called")
	}
	m.mu.Lock()
	m.calls.Update = append(m.calls.Update, params)
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, params)
}

func (m *mushroomRepoMock) UpdateCalls() []domain.MushroomUpdateParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Update
}

func (m *mushroomRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("mushroomRepoMock.DeleteFunc: method is nil but mushroomRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *mushroomRepoMock) DeleteCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls.Delete
}

type similarityServiceMock struct {
	UnlinkAllFunc        func(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error)
	SimilarMushroomsFunc func(ctx context.Context, mushroomID uuid.UUID) ([]domain.Mushroom, error)

	mu          sync.RWMutex
	unlinkCalls []uuid.UUID
}

func (m *similarityServiceMock) UnlinkAll(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error) {
	if m.UnlinkAllFunc == nil {
		panic("similarityServiceMock.UnlinkAllFunc: method is nil but similarityService.UnlinkAll was just called")
	}
	m.mu.Lock()
	m.unlinkCalls = append(m.unlinkCalls, mushroomID)
	m.mu.Unlock()
	return m.UnlinkAllFunc(ctx, mushroomID)
}

func (m *similarityServiceMock) UnlinkAllCalls() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unlinkCalls
}

func (m *similarityServiceMock) SimilarMushrooms(ctx context.Context, mushroomID uuid.UUID) ([]domain.Mushroom, error) {
	if m.SimilarMushroomsFunc == nil {
		panic("similarityServiceMock.SimilarMushroomsFunc: method is nil but similarityService.SimilarMushrooms was just called")
	}
	return m.SimilarMushroomsFunc(ctx, mushroomID)
}

type locationRepoMock struct {
	RemoveMushroomEverywhereFunc func(ctx context.Context, mushroomID uuid.UUID) (int64, error)
}

func (m *locationRepoMock) RemoveMushroomEverywhere(ctx context.Context, mushroomID uuid.UUID) (int64, error) {
	if m.RemoveMushroomEverywhereFunc == nil {
		panic("locationRepoMock.RemoveMushroomEverywhereFunc: method is nil but locationRepo.RemoveMushroomEverywhere was just called")
	}
	return m.RemoveMushroomEverywhereFunc(ctx, mushroomID)
}

type savedRepoMock struct {
	RemoveSavedEverywhereFunc func(ctx context.Context, kind domain.SavedKind, itemID uuid.UUID) (int64, error)
}

func (m *savedRepoMock) RemoveSavedEverywhere(ctx context.Context, kind domain.SavedKind, itemID uuid.UUID) (int64, error) {
	if m.RemoveSavedEverywhereFunc == nil {
		panic("savedRepoMock.RemoveSavedEverywhereFunc: method is nil but savedRepo.RemoveSavedEverywhere was just called")
	}
	return m.RemoveSavedEverywhereFunc(ctx, kind, itemID)
}

type auditLoggerMock struct {
	LogFunc func(ctx context.Context, record domain.AuditRecord) error

	mu    sync.RWMutex
	calls []domain.AuditRecord
}

func (m *auditLoggerMock) Log(ctx context.Context, record domain.AuditRecord) error {
	if m.LogFunc == nil {
		panic("auditLoggerMock.LogFunc: method is nil but auditLogger.Log was just called")
	}
	m.mu.Lock()
	m.calls = append(m.calls, record)
	m.mu.Unlock()
	return m.LogFunc(ctx, record)
}

func (m *auditLoggerMock) LogCalls() []domain.AuditRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}
