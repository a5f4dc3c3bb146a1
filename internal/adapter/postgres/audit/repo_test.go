package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/mycoforage-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

func newRepo(t *testing.T) *audit.Repo {
	t.Helper()
	return audit.New(testhelper.SetupTestDB(t))
}

func buildAuditRecord(userID uuid.UUID, entityType domain.EntityType, entityID *uuid.UUID, action domain.AuditAction, changes map[string]any) domain.AuditRecord {
	return domain.AuditRecord{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Changes:    changes,
	}
}

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	userID, entityID := uuid.New(), uuid.New()
	input := buildAuditRecord(userID, domain.EntityTypeLocation, &entityID, domain.AuditActionUpdate, map[string]any{
		"name": map[string]any{"old": "Spot", "new": "Birch grove"},
	})

	got, err := repo.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID == uuid.Nil {
		t.Error("expected ID to be generated")
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if got.EntityType != domain.EntityTypeLocation || got.Action != domain.AuditActionUpdate {
		t.Errorf("unexpected type/action: %s/%s", got.EntityType, got.Action)
	}
	if got.EntityID == nil || *got.EntityID != entityID {
		t.Errorf("EntityID mismatch: got %v, want %s", got.EntityID, entityID)
	}
	name, ok := got.Changes["name"].(map[string]any)
	if !ok || name["new"] != "Birch grove" {
		t.Errorf("Changes round-trip mismatch: %v", got.Changes)
	}
}

func TestRepo_Create_NilEntityIDAndChanges(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	got, err := repo.Create(context.Background(),
		buildAuditRecord(uuid.New(), domain.EntityTypeSimilarityGroup, nil, domain.AuditActionDelete, nil))
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if got.EntityID != nil {
		t.Errorf("expected nil EntityID, got %v", got.EntityID)
	}
	if got.Changes != nil {
		t.Errorf("expected nil Changes, got %v", got.Changes)
	}
}

func TestRepo_GetByEntity_NewestFirstAndLimited(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	userID, entityID := uuid.New(), uuid.New()
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := range 3 {
		rec := buildAuditRecord(userID, domain.EntityTypeMushroom, &entityID, domain.AuditActionUpdate, map[string]any{"i": i})
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Log(ctx, rec); err != nil {
			t.Fatalf("Log #%d: %v", i, err)
		}
	}
	other := uuid.New()
	if err := repo.Log(ctx, buildAuditRecord(userID, domain.EntityTypeMushroom, &other, domain.AuditActionCreate, nil)); err != nil {
		t.Fatalf("Log other: %v", err)
	}

	got, err := repo.GetByEntity(ctx, domain.EntityTypeMushroom, entityID, 2)
	if err != nil {
		t.Fatalf("GetByEntity: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Changes["i"] != float64(2) {
		t.Errorf("expected newest record first, got %v", got[0].Changes)
	}

	none, err := repo.GetByEntity(ctx, domain.EntityTypeRecipe, entityID, 10)
	if err != nil {
		t.Fatalf("GetByEntity other type: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected entity types to be isolated, got %d records", len(none))
	}
}

func TestRepo_GetByUser_Pagination(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	userID := uuid.New()
	for range 3 {
		id := uuid.New()
		if err := repo.Log(ctx, buildAuditRecord(userID, domain.EntityTypeComment, &id, domain.AuditActionCreate, nil)); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	page1, err := repo.GetByUser(ctx, userID, 2, 0)
	if err != nil {
		t.Fatalf("GetByUser page1: %v", err)
	}
	page2, err := repo.GetByUser(ctx, userID, 2, 2)
	if err != nil {
		t.Fatalf("GetByUser page2: %v", err)
	}
	if len(page1) != 2 || len(page2) != 1 {
		t.Errorf("expected pages of 2 and 1, got %d and %d", len(page1), len(page2))
	}
}
