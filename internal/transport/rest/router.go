package rest

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handlers groups every handler the router dispatches to.
type Handlers struct {
	Health    *HealthHandler
	Locations *LocationHandler
	Mushrooms *MushroomHandler
	Recipes   *RecipeHandler
	Users     *UserHandler
	Media     *MediaHandler
	Lookup    *LookupHandler
}

// NewRouter registers all routes. Middleware is applied by the caller.
func NewRouter(h Handlers) *httprouter.Router {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.HandlerFunc(http.MethodGet, "/live", h.Health.Live)
	router.HandlerFunc(http.MethodGet, "/ready", h.Health.Ready)
	router.HandlerFunc(http.MethodGet, "/health", h.Health.Health)

	addLocationRoutes(router, h.Locations)
	addMushroomRoutes(router, h.Mushrooms)
	addRecipeRoutes(router, h.Recipes)
	addUserRoutes(router, h.Users)
	addMediaRoutes(router, h.Media)
	addLookupRoutes(router, h.Lookup)

	return router
}

func addLocationRoutes(router *httprouter.Router, h *LocationHandler) {
	router.HandlerFunc(http.MethodGet, "/api/locations", h.List)
	router.HandlerFunc(http.MethodPost, "/api/locations", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/locations/:id", h.Get)
	router.HandlerFunc(http.MethodPatch, "/api/locations/:id", h.Update)
	router.HandlerFunc(http.MethodDelete, "/api/locations/:id", h.Delete)
	router.HandlerFunc(http.MethodGet, "/api/locations/:id/rating", h.Rating)
	router.HandlerFunc(http.MethodGet, "/api/locations/:id/comments", h.Comments)
	router.HandlerFunc(http.MethodPost, "/api/locations/:id/comments", h.AddComment)
	router.HandlerFunc(http.MethodPatch, "/api/locations/:id/comments/:commentID", h.UpdateComment)
	router.HandlerFunc(http.MethodDelete, "/api/locations/:id/comments/:commentID", h.DeleteComment)
	router.HandlerFunc(http.MethodPut, "/api/locations/:id/mushrooms/:mushroomID", h.AddMushroom)
	router.HandlerFunc(http.MethodDelete, "/api/locations/:id/mushrooms/:mushroomID", h.RemoveMushroom)
}

func addMushroomRoutes(router *httprouter.Router, h *MushroomHandler) {
	router.HandlerFunc(http.MethodGet, "/api/mushrooms", h.List)
	router.HandlerFunc(http.MethodPost, "/api/mushrooms", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/mushrooms/:id", h.Get)
	router.HandlerFunc(http.MethodPatch, "/api/mushrooms/:id", h.Update)
	router.HandlerFunc(http.MethodDelete, "/api/mushrooms/:id", h.Delete)
	router.HandlerFunc(http.MethodGet, "/api/mushrooms/:id/similar", h.Similar)
	router.HandlerFunc(http.MethodDelete, "/api/mushrooms/:id/similar", h.UnlinkAll)
	router.HandlerFunc(http.MethodPost, "/api/mushrooms/:id/similar/:otherID", h.Link)
	router.HandlerFunc(http.MethodGet, "/api/similarity/groups", h.Groups)
}

func addRecipeRoutes(router *httprouter.Router, h *RecipeHandler) {
	router.HandlerFunc(http.MethodGet, "/api/recipes", h.List)
	router.HandlerFunc(http.MethodPost, "/api/recipes", h.Create)
	router.HandlerFunc(http.MethodGet, "/api/recipes/:id", h.Get)
	router.HandlerFunc(http.MethodPatch, "/api/recipes/:id", h.Update)
	router.HandlerFunc(http.MethodDelete, "/api/recipes/:id", h.Delete)
	router.HandlerFunc(http.MethodGet, "/api/recipes/:id/mushrooms", h.Mushrooms)
}

// User routes share the :id segment; "me" addresses the caller.
func addUserRoutes(router *httprouter.Router, h *UserHandler) {
	router.HandlerFunc(http.MethodGet, "/api/users/:id", h.Get)
	router.HandlerFunc(http.MethodPatch, "/api/users/:id", h.Update)
	router.HandlerFunc(http.MethodDelete, "/api/users/:id", h.Delete)
	router.HandlerFunc(http.MethodGet, "/api/users/:id/saved", h.Saved)
	router.HandlerFunc(http.MethodGet, "/api/users/:id/saved/:kind", h.SavedByKind)
	router.HandlerFunc(http.MethodPut, "/api/users/:id/saved/:kind/:itemID", h.Save)
	router.HandlerFunc(http.MethodDelete, "/api/users/:id/saved/:kind/:itemID", h.Unsave)
	router.HandlerFunc(http.MethodGet, "/api/users/:id/authored", h.Authored)
}

func addMediaRoutes(router *httprouter.Router, h *MediaHandler) {
	router.HandlerFunc(http.MethodPost, "/api/media/:bucket", h.Upload)
	router.HandlerFunc(http.MethodGet, "/media/:bucket/*path", h.Serve)
}

func addLookupRoutes(router *httprouter.Router, h *LookupHandler) {
	router.HandlerFunc(http.MethodGet, "/api/lookup/geocode", h.Geocode)
	router.HandlerFunc(http.MethodGet, "/api/lookup/countries", h.Countries)
}
