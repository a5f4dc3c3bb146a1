package similarity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// UnlinkAll removes mushroomID from every group containing it. A group left
// empty is deleted; otherwise its reduced member list is stored.
func (s *Service) UnlinkAll(ctx context.Context, mushroomID uuid.UUID) (*UnlinkResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if mushroomID == uuid.Nil {
		return nil, domain.NewValidationError("mushroom_id", "required")
	}

	result := &UnlinkResult{}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Lock(txCtx); err != nil {
			return fmt.Errorf("lock similarity groups: %w", err)
		}

		groups, err := s.groups.FindByMushroom(txCtx, mushroomID)
		if err != nil {
			return fmt.Errorf("find similarity groups: %w", err)
		}

		for _, g := range groups {
			rest := domain.WithoutID(g.MushroomIDs, mushroomID)

			action := domain.AuditActionUpdate
			if len(rest) == 0 {
				if err := s.groups.Delete(txCtx, g.ID); err != nil {
					return fmt.Errorf("delete similarity group: %w", err)
				}
				action = domain.AuditActionDelete
				result.GroupsDeleted++
			} else {
				if _, err := s.groups.UpdateMembers(txCtx, g.ID, rest); err != nil {
					return fmt.Errorf("update similarity group: %w", err)
				}
				result.GroupsUpdated++
			}

			groupID := g.ID
			if err := s.audit.Log(txCtx, domain.AuditRecord{
				UserID:     userID,
				EntityType: domain.EntityTypeSimilarityGroup,
				EntityID:   &groupID,
				Action:     action,
				Changes: map[string]any{
					"removed_mushroom_id": mushroomID.String(),
					"mushroom_ids":        idStrings(rest),
				},
			}); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mushroom unlinked",
		slog.String("user_id", userID.String()),
		slog.String("mushroom_id", mushroomID.String()),
		slog.Int("groups_updated", result.GroupsUpdated),
		slog.Int("groups_deleted", result.GroupsDeleted),
	)

	return result, nil
}
