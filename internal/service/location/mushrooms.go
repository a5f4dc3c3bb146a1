package location

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// AddMushroom records a sighting of mushroomID at a location. Adding a
// mushroom that is already listed leaves the list unchanged.
func (s *Service) AddMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return s.changeMushrooms(ctx, locationID, mushroomID, true)
}

// RemoveMushroom drops mushroomID from a location's list.
func (s *Service) RemoveMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return s.changeMushrooms(ctx, locationID, mushroomID, false)
}

func (s *Service) changeMushrooms(ctx context.Context, locationID, mushroomID uuid.UUID, add bool) (*domain.Location, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if mushroomID == uuid.Nil {
		return nil, domain.NewValidationError("mushroom_id", "required")
	}

	var loc *domain.Location
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.authored(txCtx, userID, locationID)
		if err != nil {
			return err
		}

		if add {
			if err := s.checkMushrooms(txCtx, []uuid.UUID{mushroomID}); err != nil {
				return err
			}
			loc, err = s.locations.AddMushroom(txCtx, locationID, mushroomID)
		} else {
			loc, err = s.locations.RemoveMushroom(txCtx, locationID, mushroomID)
		}
		if err != nil {
			return fmt.Errorf("update location mushrooms: %w", err)
		}

		if old.HasMushroom(mushroomID) == add {
			return nil
		}

		key := "removed_mushroom_id"
		if add {
			key = "added_mushroom_id"
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeLocation,
			EntityID:   &locationID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{key: mushroomID.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "location mushrooms changed",
		slog.String("user_id", userID.String()),
		slog.String("location_id", locationID.String()),
		slog.String("mushroom_id", mushroomID.String()),
		slog.Bool("added", add),
	)

	return loc, nil
}
