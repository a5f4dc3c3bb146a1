package similarity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// MembersOf returns the mushrooms grouped with mushroomID, excluding
// mushroomID itself. Returns an empty slice when it is not grouped.
func (s *Service) MembersOf(ctx context.Context, mushroomID uuid.UUID) ([]uuid.UUID, error) {
	if mushroomID == uuid.Nil {
		return nil, domain.NewValidationError("mushroom_id", "required")
	}

	groups, err := s.groups.FindByMushroom(ctx, mushroomID)
	if err != nil {
		return nil, fmt.Errorf("find similarity group: %w", err)
	}

	var members []uuid.UUID
	for _, g := range groups {
		members = domain.UnionIDs(members, g.MushroomIDs)
	}
	return domain.WithoutID(members, mushroomID), nil
}

// SimilarMushrooms resolves MembersOf into mushrooms, in group order.
func (s *Service) SimilarMushrooms(ctx context.Context, mushroomID uuid.UUID) ([]domain.Mushroom, error) {
	ids, err := s.MembersOf(ctx, mushroomID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Mushroom{}, nil
	}

	found, err := s.mushrooms.List(ctx, domain.MushroomFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list similar mushrooms: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Mushroom, len(found))
	for _, m := range found {
		byID[m.ID] = m
	}

	out := make([]domain.Mushroom, 0, len(found))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// ListGroups returns every group with at least MinVisibleMembers members.
func (s *Service) ListGroups(ctx context.Context) ([]domain.SimilarityGroup, error) {
	groups, err := s.groups.List(ctx, MinVisibleMembers)
	if err != nil {
		return nil, fmt.Errorf("list similarity groups: %w", err)
	}
	return groups, nil
}
