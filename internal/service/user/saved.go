package user

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// PreviewSize is how many bookmarks per kind SavedPreview returns.
const PreviewSize = 2

// Save bookmarks an item for the authenticated user. Saving an item twice
// leaves a single bookmark.
func (s *Service) Save(ctx context.Context, input SaveInput) (*domain.User, error) {
	return s.changeSaved(ctx, input, true)
}

// Unsave removes a bookmark. Removing a missing bookmark is not an error.
func (s *Service) Unsave(ctx context.Context, input SaveInput) (*domain.User, error) {
	return s.changeSaved(ctx, input, false)
}

func (s *Service) changeSaved(ctx context.Context, input SaveInput, add bool) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		u   *domain.User
		err error
	)
	if add {
		if err := s.checkItem(ctx, input.Kind, input.ItemID); err != nil {
			return nil, err
		}
		u, err = s.users.AddSaved(ctx, userID, input.Kind, input.ItemID)
	} else {
		u, err = s.users.RemoveSaved(ctx, userID, input.Kind, input.ItemID)
	}
	if err != nil {
		return nil, fmt.Errorf("user.changeSaved: %w", err)
	}

	s.log.InfoContext(ctx, "bookmark changed",
		slog.String("user_id", userID.String()),
		slog.String("kind", input.Kind.String()),
		slog.String("item_id", input.ItemID.String()),
		slog.Bool("saved", add),
	)

	return u, nil
}

// checkItem returns domain.ErrNotFound when the bookmarked item does not exist.
func (s *Service) checkItem(ctx context.Context, kind domain.SavedKind, id uuid.UUID) error {
	ids := []uuid.UUID{id}

	var (
		n   int
		err error
	)
	switch kind {
	case domain.SavedKindMushrooms:
		var items []domain.Mushroom
		items, err = s.mushrooms.List(ctx, domain.MushroomFilter{IDs: ids, Limit: 1})
		n = len(items)
	case domain.SavedKindLocations:
		var items []domain.Location
		items, err = s.locations.List(ctx, domain.LocationFilter{IDs: ids, Limit: 1})
		n = len(items)
	case domain.SavedKindRecipes:
		var items []domain.Recipe
		items, err = s.recipes.List(ctx, domain.RecipeFilter{IDs: ids, Limit: 1})
		n = len(items)
	}
	if err != nil {
		return fmt.Errorf("check %s item: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}

// SavedPreview returns up to PreviewSize of the user's most recent bookmarks
// of each kind.
func (s *Service) SavedPreview(ctx context.Context, userID uuid.UUID) (*domain.SavedItems, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolveSaved(ctx, u, []domain.SavedKind{
		domain.SavedKindMushrooms, domain.SavedKindLocations, domain.SavedKindRecipes,
	}, PreviewSize)
}

// SavedByKind returns every bookmark of one kind, most recent first. Only
// the matching field of the result is filled.
func (s *Service) SavedByKind(ctx context.Context, userID uuid.UUID, kind domain.SavedKind) (*domain.SavedItems, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "must be mushrooms, locations or recipes")
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.resolveSaved(ctx, u, []domain.SavedKind{kind}, 0)
}

// resolveSaved loads bookmarked entities for kinds concurrently. limit <= 0
// means all of them.
func (s *Service) resolveSaved(ctx context.Context, u *domain.User, kinds []domain.SavedKind, limit int) (*domain.SavedItems, error) {
	out := &domain.SavedItems{
		Mushrooms: []domain.Mushroom{},
		Locations: []domain.Location{},
		Recipes:   []domain.Recipe{},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		ids := recentFirst(u.SavedIDs(kind), limit)
		if len(ids) == 0 {
			continue
		}

		switch kind {
		case domain.SavedKindMushrooms:
			g.Go(func() error {
				items, err := s.mushrooms.List(gctx, domain.MushroomFilter{IDs: ids})
				if err != nil {
					return fmt.Errorf("saved mushrooms: %w", err)
				}
				out.Mushrooms = orderByIDs(items, ids, func(m domain.Mushroom) uuid.UUID { return m.ID })
				return nil
			})
		case domain.SavedKindLocations:
			g.Go(func() error {
				items, err := s.locations.List(gctx, domain.LocationFilter{IDs: ids})
				if err != nil {
					return fmt.Errorf("saved locations: %w", err)
				}
				out.Locations = orderByIDs(items, ids, func(l domain.Location) uuid.UUID { return l.ID })
				return nil
			})
		case domain.SavedKindRecipes:
			g.Go(func() error {
				items, err := s.recipes.List(gctx, domain.RecipeFilter{IDs: ids})
				if err != nil {
					return fmt.Errorf("saved recipes: %w", err)
				}
				out.Recipes = orderByIDs(items, ids, func(r domain.Recipe) uuid.UUID { return r.ID })
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Authored returns everything a user has published, fetched concurrently.
func (s *Service) Authored(ctx context.Context, userID uuid.UUID) (*domain.AuthoredItems, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	out := &domain.AuthoredItems{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.mushrooms.List(gctx, domain.MushroomFilter{AuthorID: &userID})
		if err != nil {
			return fmt.Errorf("authored mushrooms: %w", err)
		}
		out.Mushrooms = nonNil(items)
		return nil
	})
	g.Go(func() error {
		items, err := s.locations.List(gctx, domain.LocationFilter{AuthorID: &userID})
		if err != nil {
			return fmt.Errorf("authored locations: %w", err)
		}
		out.Locations = nonNil(items)
		return nil
	})
	g.Go(func() error {
		items, err := s.recipes.List(gctx, domain.RecipeFilter{AuthorID: &userID})
		if err != nil {
			return fmt.Errorf("authored recipes: %w", err)
		}
		out.Recipes = nonNil(items)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// recentFirst returns the last limit ids in reverse order, so the newest
// bookmark comes first. limit <= 0 keeps all of them.
func recentFirst(ids []uuid.UUID, limit int) []uuid.UUID {
	out := slices.Clone(ids)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// orderByIDs arranges items in the order of ids, dropping ids that matched
// nothing.
func orderByIDs[T any](items []T, ids []uuid.UUID, idOf func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}

	out := make([]T, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
