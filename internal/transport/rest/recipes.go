package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/recipe"
)

type recipeService interface {
	List(ctx context.Context, input recipe.ListInput) ([]domain.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	MentionedMushrooms(ctx context.Context, recipeID uuid.UUID) ([]domain.Mushroom, error)
	Create(ctx context.Context, input recipe.CreateInput) (*domain.Recipe, error)
	Update(ctx context.Context, input recipe.UpdateInput) (*domain.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipeHandler serves recipe endpoints.
type RecipeHandler struct {
	svc   recipeService
	links imageLinker
	log   *slog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(svc recipeService, links imageLinker, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, links: links, log: logger.With("handler", "recipe")}
}

type recipeRequest struct {
	Name            *string  `json:"name"`
	ImagePath       *string  `json:"imagePath"`
	Rating          *float64 `json:"rating"`
	Servings        *int     `json:"servings"`
	DurationHours   *int     `json:"durationHours"`
	DurationMinutes *int     `json:"durationMinutes"`
	Ingredients     *string  `json:"ingredients"`
	Method          *string  `json:"method"`
}

func (req recipeRequest) duration() *domain.CookingDuration {
	if req.DurationHours == nil && req.DurationMinutes == nil {
		return nil
	}
	var d domain.CookingDuration
	if req.DurationHours != nil {
		d.Hours = *req.DurationHours
	}
	if req.DurationMinutes != nil {
		d.Minutes = *req.DurationMinutes
	}
	return &d
}

// List handles GET /api/recipes?q=&author=&limit=.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	author, err := queryID(r, "author")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.List(r.Context(), recipe.ListInput{
		Search:   queryString(r, "q"),
		AuthorID: author,
		Limit:    limit,
	})
	if err != nil {
		handleListError[recipeResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toRecipes(h.links, list))
}

// Get handles GET /api/recipes/:id.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipe(h.links, *rec))
}

// Mushrooms handles GET /api/recipes/:id/mushrooms.
func (h *RecipeHandler) Mushrooms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.MentionedMushrooms(r.Context(), id)
	if err != nil {
		handleListError[mushroomResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toMushrooms(h.links, list))
}

// Create handles POST /api/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := recipe.CreateInput{
		Name:        deref(req.Name),
		ImagePath:   req.ImagePath,
		Ingredients: deref(req.Ingredients),
		Method:      deref(req.Method),
	}
	if req.Rating != nil {
		input.Rating = *req.Rating
	}
	if req.Servings != nil {
		input.Servings = *req.Servings
	}
	if d := req.duration(); d != nil {
		input.Duration = *d
	}

	rec, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecipe(h.links, *rec))
}

// Update handles PATCH /api/recipes/:id.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req recipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Update(r.Context(), recipe.UpdateInput{
		RecipeID:    id,
		Name:        req.Name,
		ImagePath:   req.ImagePath,
		Rating:      req.Rating,
		Servings:    req.Servings,
		Duration:    req.duration(),
		Ingredients: req.Ingredients,
		Method:      req.Method,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecipe(h.links, *rec))
}

// Delete handles DELETE /api/recipes/:id.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
