package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// List returns locations matching input, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Location, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.LocationFilter{
		AuthorID:   input.AuthorID,
		MushroomID: input.MushroomID,
		Box:        input.Box,
		Limit:      input.Limit,
	}
	if input.Search != nil {
		if q := strings.TrimSpace(*input.Search); q != "" {
			filter.Search = &q
		}
	}

	locations, err := s.locations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// Get returns a location by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return loc, nil
}

// Create pins a new location authored by the current user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Location, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	loc := &domain.Location{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Coordinates: input.Coordinates,
		Rating:      input.Rating,
		Description: strings.TrimSpace(input.Description),
		ImagePath:   input.ImagePath,
		AuthorID:    userID,
		MushroomIDs: domain.UnionIDs(input.MushroomIDs, nil),
	}

	var created *domain.Location
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkMushrooms(txCtx, loc.MushroomIDs); err != nil {
			return err
		}

		var err error
		created, err = s.locations.Create(txCtx, loc)
		if err != nil {
			return fmt.Errorf("create location: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeLocation,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name":      map[string]any{"new": created.Name},
				"mushrooms": map[string]any{"new": len(created.MushroomIDs)},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "location created",
		slog.String("user_id", userID.String()),
		slog.String("location_id", created.ID.String()),
	)

	return created, nil
}

// Update edits a location. Only its author may do so.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Location, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.LocationUpdateParams{
		Name:        trimmed(input.Name),
		Coordinates: input.Coordinates,
		Rating:      input.Rating,
		Description: trimmed(input.Description),
		ImagePath:   input.ImagePath,
		MushroomIDs: input.MushroomIDs,
	}

	var updated *domain.Location
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.authored(txCtx, userID, input.LocationID)
		if err != nil {
			return err
		}
		if params.MushroomIDs != nil {
			if err := s.checkMushrooms(txCtx, *params.MushroomIDs); err != nil {
				return err
			}
		}

		updated, err = s.locations.Update(txCtx, input.LocationID, params)
		if err != nil {
			return fmt.Errorf("update location: %w", err)
		}

		changes := buildChanges(old, updated)
		if len(changes) == 0 {
			return nil
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeLocation,
			EntityID:   &input.LocationID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "location updated",
		slog.String("user_id", userID.String()),
		slog.String("location_id", input.LocationID.String()),
	)

	return updated, nil
}

// Delete removes a location, its comments and the bookmarks pointing at it
// in one transaction. Only its author may do so.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var comments int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// The row lock keeps comment_ids stable until the location is gone.
		loc, err := s.locations.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock location: %w", err)
		}
		if loc.AuthorID != userID {
			return domain.ErrForbidden
		}

		if comments, err = s.comments.DeleteComments(txCtx, loc.CommentIDs); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if _, err := s.saved.RemoveSavedEverywhere(txCtx, domain.SavedKindLocations, id); err != nil {
			return fmt.Errorf("remove bookmarks: %w", err)
		}
		if err := s.locations.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete location: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeLocation,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"name":     map[string]any{"old": loc.Name},
				"comments": map[string]any{"old": len(loc.CommentIDs)},
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "location deleted",
		slog.String("user_id", userID.String()),
		slog.String("location_id", id.String()),
		slog.Int64("comments_deleted", comments),
	)

	return nil
}

// authored loads a location and checks that userID wrote it.
func (s *Service) authored(ctx context.Context, userID, id uuid.UUID) (*domain.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	if loc.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return loc, nil
}

// checkMushrooms fails with a validation error naming mushroom_ids when any
// id is not in the atlas.
func (s *Service) checkMushrooms(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	exist, err := s.mushrooms.ExistByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check mushrooms: %w", err)
	}
	for _, id := range ids {
		if !exist[id] {
			return domain.NewValidationError("mushroom_ids", "unknown mushroom "+id.String())
		}
	}
	return nil
}

func buildChanges(old, updated *domain.Location) map[string]any {
	changes := make(map[string]any)
	if old.Name != updated.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
	}
	if old.Coordinates != updated.Coordinates {
		changes["coordinates"] = map[string]any{
			"old": []float64{old.Coordinates.Lat, old.Coordinates.Lng},
			"new": []float64{updated.Coordinates.Lat, updated.Coordinates.Lng},
		}
	}
	if old.Rating != updated.Rating {
		changes["rating"] = map[string]any{"old": old.Rating, "new": updated.Rating}
	}
	if old.Description != updated.Description {
		changes["description"] = map[string]any{"changed": true}
	}
	if deref(old.ImagePath) != deref(updated.ImagePath) {
		changes["image_path"] = map[string]any{"old": old.ImagePath, "new": updated.ImagePath}
	}
	if !sameIDs(old.MushroomIDs, updated.MushroomIDs) {
		changes["mushrooms"] = map[string]any{"old": len(old.MushroomIDs), "new": len(updated.MushroomIDs)}
	}
	return changes
}

func sameIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
