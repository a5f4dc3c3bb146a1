package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// Create publishes a recipe authored by the current user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	rec := &domain.Recipe{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		ImagePath:   input.ImagePath,
		Rating:      input.Rating,
		Servings:    input.Servings,
		Duration:    input.Duration,
		Ingredients: strings.TrimSpace(input.Ingredients),
		Method:      strings.TrimSpace(input.Method),
		AuthorID:    userID,
	}

	var created *domain.Recipe
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.recipes.Create(txCtx, rec)
		if err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeRecipe,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"name": map[string]any{"new": created.Name},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "recipe created",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", created.ID.String()),
	)

	return created, nil
}

// Update edits a recipe. Only its author may do so.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Recipe, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.RecipeUpdateParams{
		Name:        trimmed(input.Name),
		ImagePath:   input.ImagePath,
		Rating:      input.Rating,
		Servings:    input.Servings,
		Duration:    input.Duration,
		Ingredients: trimmed(input.Ingredients),
		Method:      trimmed(input.Method),
	}

	var updated *domain.Recipe
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.authored(txCtx, userID, input.RecipeID)
		if err != nil {
			return err
		}

		updated, err = s.recipes.Update(txCtx, input.RecipeID, params)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		changes := buildChanges(old, updated)
		if len(changes) == 0 {
			return nil
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeRecipe,
			EntityID:   &input.RecipeID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "recipe updated",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", input.RecipeID.String()),
	)

	return updated, nil
}

// Delete removes a recipe and the bookmarks pointing at it. Only its author
// may do so.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		rec, err := s.authored(txCtx, userID, id)
		if err != nil {
			return err
		}

		if _, err := s.saved.RemoveSavedEverywhere(txCtx, domain.SavedKindRecipes, id); err != nil {
			return fmt.Errorf("remove bookmarks: %w", err)
		}
		if err := s.recipes.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeRecipe,
			EntityID:   &id,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"name": map[string]any{"old": rec.Name},
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "recipe deleted",
		slog.String("user_id", userID.String()),
		slog.String("recipe_id", id.String()),
	)

	return nil
}

func (s *Service) authored(ctx context.Context, userID, id uuid.UUID) (*domain.Recipe, error) {
	rec, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if rec.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return rec, nil
}

func buildChanges(old, updated *domain.Recipe) map[string]any {
	changes := make(map[string]any)
	if old.Name != updated.Name {
		changes["name"] = map[string]any{"old": old.Name, "new": updated.Name}
	}
	if old.Rating != updated.Rating {
		changes["rating"] = map[string]any{"old": old.Rating, "new": updated.Rating}
	}
	if old.Servings != updated.Servings {
		changes["servings"] = map[string]any{"old": old.Servings, "new": updated.Servings}
	}
	if old.Duration != updated.Duration {
		changes["duration_minutes"] = map[string]any{"old": old.Duration.TotalMinutes(), "new": updated.Duration.TotalMinutes()}
	}
	if old.Ingredients != updated.Ingredients {
		changes["ingredients"] = map[string]any{"changed": true}
	}
	if old.Method != updated.Method {
		changes["method"] = map[string]any{"changed": true}
	}
	if (old.ImagePath == nil) != (updated.ImagePath == nil) ||
		(old.ImagePath != nil && *old.ImagePath != *updated.ImagePath) {
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
