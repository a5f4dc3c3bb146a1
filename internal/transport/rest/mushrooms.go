package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/mushroom"
	"github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
)

type mushroomService interface {
	List(ctx context.Context, input mushroom.ListInput) ([]domain.Mushroom, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error)
	Similar(ctx context.Context, id uuid.UUID) ([]domain.Mushroom, error)
	Create(ctx context.Context, input mushroom.CreateInput) (*domain.Mushroom, error)
	Update(ctx context.Context, input mushroom.UpdateInput) (*domain.Mushroom, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type similarityService interface {
	Link(ctx context.Context, input similarity.LinkInput) (*similarity.LinkResult, error)
	UnlinkAll(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error)
	ListGroups(ctx context.Context) ([]domain.SimilarityGroup, error)
}

// MushroomHandler serves mushroom and similarity endpoints.
type MushroomHandler struct {
	svc        mushroomService
	similarity similarityService
	links      imageLinker
	log        *slog.Logger
}

// NewMushroomHandler creates a MushroomHandler.
func NewMushroomHandler(svc mushroomService, similarity similarityService, links imageLinker, logger *slog.Logger) *MushroomHandler {
	return &MushroomHandler{
		svc:        svc,
		similarity: similarity,
		links:      links,
		log:        logger.With("handler", "mushroom"),
	}
}

type mushroomRequest struct {
	Name             *string `json:"name"`
	ImagePath        *string `json:"imagePath"`
	ShortDescription *string `json:"shortDescription"`
	LongDescription  *string `json:"longDescription"`
	Toxicity         *string `json:"toxicity"`
}

type linkResponse struct {
	Outcome        string        `json:"outcome"`
	Group          groupResponse `json:"group"`
	RemovedGroupID *string       `json:"removedGroupId,omitempty"`
}

type unlinkResponse struct {
	GroupsUpdated int `json:"groupsUpdated"`
	GroupsDeleted int `json:"groupsDeleted"`
}

// List handles GET /api/mushrooms?q=&author=&toxicity=&limit=.
func (h *MushroomHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := mushroomListInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleListError[mushroomResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toMushrooms(h.links, list))
}

// Get handles GET /api/mushrooms/:id.
func (h *MushroomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMushroom(h.links, *m))
}

// Create handles POST /api/mushrooms.
func (h *MushroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req mushroomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	m, err := h.svc.Create(r.Context(), mushroom.CreateInput{
		Name:             deref(req.Name),
		ImagePath:        req.ImagePath,
		ShortDescription: deref(req.ShortDescription),
		LongDescription:  deref(req.LongDescription),
		Toxicity:         domain.Toxicity(deref(req.Toxicity)),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMushroom(h.links, *m))
}

// Update handles PATCH /api/mushrooms/:id.
func (h *MushroomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req mushroomRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := mushroom.UpdateInput{
		MushroomID:       id,
		Name:             req.Name,
		ImagePath:        req.ImagePath,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
	}
	if req.Toxicity != nil {
		t := domain.Toxicity(*req.Toxicity)
		input.Toxicity = &t
	}

	m, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMushroom(h.links, *m))
}

// Delete handles DELETE /api/mushrooms/:id.
func (h *MushroomHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Similar handles GET /api/mushrooms/:id/similar.
func (h *MushroomHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.Similar(r.Context(), id)
	if err != nil {
		handleListError[mushroomResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toMushrooms(h.links, list))
}

// Link handles POST /api/mushrooms/:id/similar/:otherID.
func (h *MushroomHandler) Link(w http.ResponseWriter, r *http.Request) {
	a, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	b, err := pathID(r, "otherID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.similarity.Link(r.Context(), similarity.LinkInput{MushroomA: a, MushroomB: b})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := linkResponse{
		Outcome: string(res.Outcome),
		Group:   toGroups([]domain.SimilarityGroup{res.Group})[0],
	}
	if res.RemovedGroupID != nil {
		removed := res.RemovedGroupID.String()
		resp.RemovedGroupID = &removed
	}

	status := http.StatusOK
	if res.Outcome == similarity.LinkCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// UnlinkAll handles DELETE /api/mushrooms/:id/similar.
func (h *MushroomHandler) UnlinkAll(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.similarity.UnlinkAll(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unlinkResponse{GroupsUpdated: res.GroupsUpdated, GroupsDeleted: res.GroupsDeleted})
}

// Groups handles GET /api/similarity/groups.
func (h *MushroomHandler) Groups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.similarity.ListGroups(r.Context())
	if err != nil {
		handleListError[groupResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toGroups(groups))
}

func mushroomListInput(r *http.Request) (mushroom.ListInput, error) {
	author, err := queryID(r, "author")
	if err != nil {
		return mushroom.ListInput{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return mushroom.ListInput{}, err
	}

	input := mushroom.ListInput{
		Search:   queryString(r, "q"),
		AuthorID: author,
		Limit:    limit,
	}
	if t := queryString(r, "toxicity"); t != nil {
		tox := domain.Toxicity(*t)
		input.Toxicity = &tox
	}
	return input, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
