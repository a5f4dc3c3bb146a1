package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// List returns recipes matching input, best rated first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Recipe, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.RecipeFilter{AuthorID: input.AuthorID, Limit: input.Limit}
	if input.Search != nil {
		if q := strings.TrimSpace(*input.Search); q != "" {
			filter.Search = &q
		}
	}

	recipes, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get returns a recipe by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

// MentionedMushrooms returns the atlas mushrooms whose name appears as whole
// words in the recipe's ingredients, in atlas order.
func (s *Service) MentionedMushrooms(ctx context.Context, recipeID uuid.UUID) ([]domain.Mushroom, error) {
	r, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	atlas, err := s.mushrooms.List(ctx, domain.MushroomFilter{})
	if err != nil {
		return nil, fmt.Errorf("list mushrooms: %w", err)
	}

	out := []domain.Mushroom{}
	for _, m := range atlas {
		if domain.ContainsPhrase(r.Ingredients, m.Name) {
			out = append(out, m)
		}
	}
	return out, nil
}
