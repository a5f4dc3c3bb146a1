package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/location"
)

type locationService interface {
	List(ctx context.Context, input location.ListInput) ([]domain.Location, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	Create(ctx context.Context, input location.CreateInput) (*domain.Location, error)
	Update(ctx context.Context, input location.UpdateInput) (*domain.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
	RemoveMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
	ListComments(ctx context.Context, locationID uuid.UUID) ([]domain.Comment, error)
	AverageRating(ctx context.Context, locationID uuid.UUID) (*location.RatingSummary, error)
	AddComment(ctx context.Context, input location.CommentInput) (*domain.Comment, error)
	UpdateComment(ctx context.Context, input location.UpdateCommentInput) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
}

// LocationHandler serves location and comment endpoints.
type LocationHandler struct {
	svc   locationService
	links imageLinker
	log   *slog.Logger
}

// NewLocationHandler creates a LocationHandler.
func NewLocationHandler(svc locationService, links imageLinker, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{svc: svc, links: links, log: logger.With("handler", "location")}
}

type locationRequest struct {
	Name        *string   `json:"name"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	Rating      *int      `json:"rating"`
	Description *string   `json:"description"`
	ImagePath   *string   `json:"imagePath"`
	MushroomIDs *[]string `json:"mushroomIds"`
}

func (req locationRequest) coordinates() (*domain.Coordinates, error) {
	switch {
	case req.Lat == nil && req.Lng == nil:
		return nil, nil
	case req.Lat == nil || req.Lng == nil:
		return nil, domain.NewValidationError("coordinates", "lat and lng must be set together")
	}
	return &domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}, nil
}

type commentRequest struct {
	Rating *int    `json:"rating"`
	Body   *string `json:"body"`
}

// List handles GET /api/locations?q=&author=&mushroom=&bbox=&limit=.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	input, err := locationListInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleListError[locationResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toLocations(h.links, list))
}

// Get handles GET /api/locations/:id.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	loc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLocation(h.links, *loc))
}

// Create handles POST /api/locations.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	coords, err := req.coordinates()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if coords == nil {
		handleError(h.log, w, r, domain.NewValidationError("coordinates", "required"))
		return
	}

	input := location.CreateInput{
		Name:        deref(req.Name),
		Coordinates: *coords,
		Description: deref(req.Description),
		ImagePath:   req.ImagePath,
	}
	if req.Rating != nil {
		input.Rating = *req.Rating
	}
	if req.MushroomIDs != nil {
		if input.MushroomIDs, err = parseIDs("mushroomIds", *req.MushroomIDs); err != nil {
			handleError(h.log, w, r, err)
			return
		}
	}

	loc, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLocation(h.links, *loc))
}

// Update handles PATCH /api/locations/:id.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	coords, err := req.coordinates()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := location.UpdateInput{
		LocationID:  id,
		Name:        req.Name,
		Coordinates: coords,
		Rating:      req.Rating,
		Description: req.Description,
		ImagePath:   req.ImagePath,
	}
	if req.MushroomIDs != nil {
		ids, err := parseIDs("mushroomIds", *req.MushroomIDs)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		input.MushroomIDs = &ids
	}

	loc, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLocation(h.links, *loc))
}

// Delete handles DELETE /api/locations/:id.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddMushroom handles PUT /api/locations/:id/mushrooms/:mushroomID.
func (h *LocationHandler) AddMushroom(w http.ResponseWriter, r *http.Request) {
	h.changeMushroom(w, r, h.svc.AddMushroom)
}

// RemoveMushroom handles DELETE /api/locations/:id/mushrooms/:mushroomID.
func (h *LocationHandler) RemoveMushroom(w http.ResponseWriter, r *http.Request) {
	h.changeMushroom(w, r, h.svc.RemoveMushroom)
}

func (h *LocationHandler) changeMushroom(
	w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error),
) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	mushroomID, err := pathID(r, "mushroomID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	loc, err := change(r.Context(), id, mushroomID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toLocation(h.links, *loc))
}

// Comments handles GET /api/locations/:id/comments.
func (h *LocationHandler) Comments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		handleListError[commentResponse](h.log, w, r, err)
		return
	}
	writeItems(w, toComments(list))
}

// Rating handles GET /api/locations/:id/rating.
func (h *LocationHandler) Rating(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	summary, err := h.svc.AverageRating(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ratingResponse{Average: summary.Average, Count: summary.Count})
}

// AddComment handles POST /api/locations/:id/comments.
func (h *LocationHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := location.CommentInput{LocationID: id, Body: deref(req.Body)}
	if req.Rating != nil {
		input.Rating = *req.Rating
	}

	c, err := h.svc.AddComment(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toComment(*c))
}

// UpdateComment handles PATCH /api/locations/:id/comments/:commentID.
func (h *LocationHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, err := h.svc.UpdateComment(r.Context(), location.UpdateCommentInput{
		CommentID: id,
		Rating:    req.Rating,
		Body:      req.Body,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toComment(*c))
}

// DeleteComment handles DELETE /api/locations/:id/comments/:commentID.
func (h *LocationHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "commentID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func locationListInput(r *http.Request) (location.ListInput, error) {
	author, err := queryID(r, "author")
	if err != nil {
		return location.ListInput{}, err
	}
	mushroomID, err := queryID(r, "mushroom")
	if err != nil {
		return location.ListInput{}, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return location.ListInput{}, err
	}
	box, err := parseBox(r.URL.Query().Get("bbox"))
	if err != nil {
		return location.ListInput{}, err
	}

	return location.ListInput{
		Search:     queryString(r, "q"),
		AuthorID:   author,
		MushroomID: mushroomID,
		Box:        box,
		Limit:      limit,
	}, nil
}

// parseBox reads "minLat,minLng,maxLat,maxLng".
func parseBox(raw string) (*domain.BoundingBox, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, domain.NewValidationError("bbox", "expected minLat,minLng,maxLat,maxLng")
	}

	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, domain.NewValidationError("bbox", "expected minLat,minLng,maxLat,maxLng")
		}
		vals[i] = v
	}
	return &domain.BoundingBox{MinLat: vals[0], MinLng: vals[1], MaxLat: vals[2], MaxLng: vals[3]}, nil
}
