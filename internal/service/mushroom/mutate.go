package mushroom

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// Create adds a mushroom authored by the current user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Mushroom, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	toxicity := input.Toxicity
	if toxicity == "" {
		toxicity = domain.ToxicityUnknown
	}

	m := &domain.Mushroom{
		ID:               uuid.New(),
		Name:             strings.TrimSpace(input.Name),
		ImagePath:        input.ImagePath,
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		LongDescription:  strings.TrimSpace(input.LongDescription),
		Toxicity:         toxicity,
		AuthorID:         userID,
	}

	var created *domain.Mushroom
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.mushrooms.Create(txCtx, m)
		if createErr != nil {
			return fmt.Errorf("create mushroom: %w", createErr)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMushroom,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name":     map[string]any{"new": created.Name},
				"toxicity": map[string]any{"new": string(created.Toxicity)},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mushroom created",
		slog.String("user_id", userID.String()),
		slog.String("mushroom_id", created.ID.String()),
	)

	return created, nil
}

// Update edits a mushroom. Only its author may do so.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Mushroom, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.MushroomUpdateParams{
		ImagePath:        input.ImagePath,
		ShortDescription: trimmed(input.ShortDescription),
		LongDescription:  trimmed(input.LongDescription),
		Toxicity:         input.Toxicity,
		Name:             trimmed(input.Name),
	}

	var updated *domain.Mushroom
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.authored(txCtx, userID, input.MushroomID)
		if err != nil {
			return err
		}

		updated, err = s.mushrooms.Update(txCtx, input.MushroomID, params)
		if err != nil {
			return fmt.Errorf("update mushroom: %w", err)
		}

		changes := buildChanges(old, updated)
		if len(changes) == 0 {
			return nil
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMushroom,
			EntityID:   &input.MushroomID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mushroom updated",
		slog.String("user_id", userID.String()),
		slog.String("mushroom_id", input.MushroomID.String()),
	)

	return updated, nil
}

// Delete removes a mushroom together with every reference to it: its
// similarity links, location sightings and user bookmarks. Only its author
// may do so.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var (
		m         *domain.Mushroom
		locations int64
		bookmarks int64
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		m, err = s.authored(txCtx, userID, id)
		if err != nil {
			return err
		}

		if _, err := s.similarity.UnlinkAll(txCtx, id); err != nil {
			return fmt.Errorf("unlink similarity: %w", err)
		}
		if locations, err = s.locations.RemoveMushroomEverywhere(txCtx, id); err != nil {
			return fmt.Errorf("remove from locations: %w", err)
		}
		if bookmarks, err = s.saved.RemoveSavedEverywhere(txCtx, domain.SavedKindMushrooms, id); err != nil {
			return fmt.Errorf("remove bookmarks: %w", err)
		}
		if err := s.mushrooms.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete mushroom: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeMushroom,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"name": map[string]any{"old": m.Name},
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "mushroom deleted",
		slog.String("user_id", userID.String()),
		slog.String("mushroom_id", id.String()),
		slog.Int64("locations_touched", locations),
		slog.Int64("bookmarks_removed", bookmarks),
	)

	return nil
}

// authored loads a mushroom and checks that userID wrote it.
func (s *Service) authored(ctx context.Context, userID, id uuid.UUID) (*domain.Mushroom, error) {
	m, err := s.mushrooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mushroom: %w", err)
	}
	if m.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

func buildChanges(old, updated *domain.Mushroom) map[string]any {
	changes := make(map[string]any)
	if old.Name != updated.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
	}
	if old.Toxicity != updated.Toxicity {
		changes["toxicity"] = map[string]any{"old": string(old.Toxicity), "new": string(updated.Toxicity)}
	}
	if old.ShortDescription != updated.ShortDescription {
		changes["short_description"] = map[string]any{"old": old.ShortDescription, "new": updated.ShortDescription}
	}
	if old.LongDescription != updated.LongDescription {
		changes["long_description"] = map[string]any{"changed": true}
	}
	if deref(old.ImagePath) != deref(updated.ImagePath) {
		changes["image_path"] = map[string]any{"old": old.ImagePath, "new": updated.ImagePath}
	}
	return changes
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
