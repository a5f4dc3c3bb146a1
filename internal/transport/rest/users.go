package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/user"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// meAlias addresses the authenticated user in /api/users/:id routes.
const meAlias = "me"

const birthDateLayout = "2006-01-02"

type userService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Ensure(ctx context.Context, input user.EnsureInput) (*domain.User, error)
	Update(ctx context.Context, input user.UpdateInput) (*domain.User, error)
	Delete(ctx context.Context) error
	Save(ctx context.Context, input user.SaveInput) (*domain.User, error)
	Unsave(ctx context.Context, input user.SaveInput) (*domain.User, error)
	SavedPreview(ctx context.Context, userID uuid.UUID) (*domain.SavedItems, error)
	SavedByKind(ctx context.Context, userID uuid.UUID, kind domain.SavedKind) (*domain.SavedItems, error)
	Authored(ctx context.Context, userID uuid.UUID) (*domain.AuthoredItems, error)
}

// UserHandler serves profile, bookmark and authored-content endpoints.
type UserHandler struct {
	svc   userService
	links imageLinker
	log   *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, links imageLinker, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, links: links, log: logger.With("handler", "user")}
}

type profileRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	BirthDate *string `json:"birthDate"`
	Country   *string `json:"country"`
	ImagePath *string `json:"imagePath"`
}

// Get handles GET /api/users/:id. "me" returns the caller's own profile,
// creating it from the token claims on first sight.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if pathParam(r, "id") == meAlias {
		identity := ctxutil.IdentityFromCtx(r.Context())
		u, err := h.svc.Ensure(r.Context(), user.EnsureInput{Name: identity.Name, Email: identity.Email})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfile(h.links, u))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPublicUser(h.links, u))
}

// Update handles PATCH /api/users/me.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := requireSelf(r); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := user.UpdateInput{
		Name:      req.Name,
		Email:     req.Email,
		Country:   req.Country,
		ImagePath: req.ImagePath,
	}
	if req.BirthDate != nil {
		d, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("birthDate", "expected YYYY-MM-DD"))
			return
		}
		input.BirthDate = &d
	}

	u, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(h.links, u))
}

// Delete handles DELETE /api/users/me.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := requireSelf(r); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Saved handles GET /api/users/:id/saved: a short preview of every list.
func (h *UserHandler) Saved(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.SavedPreview(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollection(h.links, items.Mushrooms, items.Locations, items.Recipes))
}

// SavedByKind handles GET /api/users/:id/saved/:kind.
func (h *UserHandler) SavedByKind(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	kind := domain.SavedKind(pathParam(r, "kind"))
	if !kind.IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("kind", "must be mushrooms, locations or recipes"))
		return
	}

	items, err := h.svc.SavedByKind(r.Context(), id, kind)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollection(h.links, items.Mushrooms, items.Locations, items.Recipes))
}

// Save handles PUT /api/users/me/saved/:kind/:itemID.
func (h *UserHandler) Save(w http.ResponseWriter, r *http.Request) {
	h.changeSaved(w, r, h.svc.Save)
}

// Unsave handles DELETE /api/users/me/saved/:kind/:itemID.
func (h *UserHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	h.changeSaved(w, r, h.svc.Unsave)
}

func (h *UserHandler) changeSaved(
	w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, input user.SaveInput) (*domain.User, error),
) {
	if err := requireSelf(r); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	itemID, err := pathID(r, "itemID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	u, err := change(r.Context(), user.SaveInput{
		Kind:   domain.SavedKind(pathParam(r, "kind")),
		ItemID: itemID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(h.links, u))
}

// Authored handles GET /api/users/:id/authored.
func (h *UserHandler) Authored(w http.ResponseWriter, r *http.Request) {
	id, err := subjectID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.Authored(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCollection(h.links, items.Mushrooms, items.Locations, items.Recipes))
}

// subjectID resolves the :id path segment, mapping "me" to the caller.
func subjectID(r *http.Request) (uuid.UUID, error) {
	if pathParam(r, "id") == meAlias {
		id, ok := ctxutil.UserIDFromCtx(r.Context())
		if !ok {
			return uuid.Nil, domain.ErrUnauthorized
		}
		return id, nil
	}
	return pathID(r, "id")
}

// requireSelf rejects mutations addressed to anyone but the caller.
func requireSelf(r *http.Request) error {
	callerID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		return domain.ErrUnauthorized
	}
	id, err := subjectID(r)
	if err != nil {
		return err
	}
	if id != callerID {
		return domain.ErrForbidden
	}
	return nil
}
