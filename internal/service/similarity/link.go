package similarity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// Link records that two mushrooms look alike. The whole read-modify-write
// runs in one transaction holding the similarity lock.
func (s *Service) Link(ctx context.Context, input LinkInput) (*LinkResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	a, b := input.MushroomA, input.MushroomB

	var result *LinkResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Lock(txCtx); err != nil {
			return fmt.Errorf("lock similarity groups: %w", err)
		}

		exist, err := s.mushrooms.ExistByIDs(txCtx, []uuid.UUID{a, b})
		if err != nil {
			return fmt.Errorf("check mushrooms: %w", err)
		}
		for _, id := range []uuid.UUID{a, b} {
			if !exist[id] {
				return fmt.Errorf("mushroom %s: %w", id, domain.ErrNotFound)
			}
		}

		groupA, err := s.groupOf(txCtx, a)
		if err != nil {
			return err
		}
		groupB, err := s.groupOf(txCtx, b)
		if err != nil {
			return err
		}

		result, err = s.link(txCtx, a, b, groupA, groupB)
		if err != nil {
			return err
		}
		if result.Outcome == LinkAlreadyLinked {
			return nil
		}

		return s.logLink(txCtx, userID, result)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mushrooms linked",
		slog.String("user_id", userID.String()),
		slog.String("mushroom_a", a.String()),
		slog.String("mushroom_b", b.String()),
		slog.String("outcome", string(result.Outcome)),
		slog.String("group_id", result.Group.ID.String()),
	)

	return result, nil
}

// link applies the create / join / merge decision for a and b given the
// group each currently belongs to (nil when ungrouped).
func (s *Service) link(ctx context.Context, a, b uuid.UUID, groupA, groupB *domain.SimilarityGroup) (*LinkResult, error) {
	switch {
	case groupA == nil && groupB == nil:
		created, err := s.groups.Create(ctx, []uuid.UUID{a, b})
		if err != nil {
			return nil, fmt.Errorf("create similarity group: %w", err)
		}
		return &LinkResult{Outcome: LinkCreated, Group: *created}, nil

	case groupA != nil && groupB != nil && groupA.ID == groupB.ID:
		return &LinkResult{Outcome: LinkAlreadyLinked, Group: *groupA}, nil

	case groupA != nil && groupB != nil:
		merged, err := s.groups.UpdateMembers(ctx, groupA.ID, domain.UnionIDs(groupA.MushroomIDs, groupB.MushroomIDs))
		if err != nil {
			return nil, fmt.Errorf("merge similarity groups: %w", err)
		}
		if err := s.groups.Delete(ctx, groupB.ID); err != nil {
			return nil, fmt.Errorf("delete merged similarity group: %w", err)
		}
		removed := groupB.ID
		return &LinkResult{Outcome: LinkMerged, Group: *merged, RemovedGroupID: &removed}, nil

	default:
		target, joiner := groupA, b
		if target == nil {
			target, joiner = groupB, a
		}
		joined, err := s.groups.UpdateMembers(ctx, target.ID, domain.UnionIDs(target.MushroomIDs, []uuid.UUID{joiner}))
		if err != nil {
			return nil, fmt.Errorf("join similarity group: %w", err)
		}
		return &LinkResult{Outcome: LinkJoined, Group: *joined}, nil
	}
}

// groupOf returns the group containing id, or nil. If stored data holds id
// in several groups, they are merged into the first before returning.
func (s *Service) groupOf(ctx context.Context, id uuid.UUID) (*domain.SimilarityGroup, error) {
	groups, err := s.groups.FindByMushroom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find similarity group: %w", err)
	}

	switch len(groups) {
	case 0:
		return nil, nil
	case 1:
		return &groups[0], nil
	}

	s.log.WarnContext(ctx, "mushroom found in several similarity groups",
		slog.String("mushroom_id", id.String()),
		slog.Int("groups", len(groups)),
	)

	return s.collapse(ctx, groups)
}

// collapse merges groups into groups[0] and deletes the rest.
func (s *Service) collapse(ctx context.Context, groups []domain.SimilarityGroup) (*domain.SimilarityGroup, error) {
	members := groups[0].MushroomIDs
	for _, g := range groups[1:] {
		members = domain.UnionIDs(members, g.MushroomIDs)
	}

	kept, err := s.groups.UpdateMembers(ctx, groups[0].ID, members)
	if err != nil {
		return nil, fmt.Errorf("collapse similarity groups: %w", err)
	}
	for _, g := range groups[1:] {
		if err := s.groups.Delete(ctx, g.ID); err != nil {
			return nil, fmt.Errorf("delete collapsed similarity group: %w", err)
		}
	}
	return kept, nil
}

func (s *Service) logLink(ctx context.Context, userID uuid.UUID, result *LinkResult) error {
	action := domain.AuditActionUpdate
	if result.Outcome == LinkCreated {
		action = domain.AuditActionCreate
	}

	changes := map[string]any{
		"outcome":      string(result.Outcome),
		"mushroom_ids": idStrings(result.Group.MushroomIDs),
	}
	if result.RemovedGroupID != nil {
		changes["merged_group_id"] = result.RemovedGroupID.String()
	}

	if err := s.audit.Log(ctx, domain.AuditRecord{
		UserID:     userID,
		EntityType: domain.EntityTypeSimilarityGroup,
		EntityID:   &result.Group.ID,
		Action:     action,
		Changes:    changes,
	}); err != nil {
		return fmt.Errorf("audit log: %w", err)
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
