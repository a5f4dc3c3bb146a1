package mushroom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// List returns atlas mushrooms ordered by name.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Mushroom, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.MushroomFilter{
		AuthorID: input.AuthorID,
		Toxicity: input.Toxicity,
		Limit:    input.Limit,
	}
	if input.Search != nil {
		if q := strings.TrimSpace(*input.Search); q != "" {
			filter.Search = &q
		}
	}

	mushrooms, err := s.mushrooms.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list mushrooms: %w", err)
	}
	return mushrooms, nil
}

// Search returns mushrooms whose name contains q, case-insensitively.
func (s *Service) Search(ctx context.Context, q string) ([]domain.Mushroom, error) {
	return s.List(ctx, ListInput{Search: &q})
}

// Get returns a mushroom by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error) {
	m, err := s.mushrooms.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mushroom: %w", err)
	}
	return m, nil
}

// Similar returns the look-alikes of a mushroom.
func (s *Service) Similar(ctx context.Context, id uuid.UUID) ([]domain.Mushroom, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.similarity.SimilarMushrooms(ctx, id)
}
