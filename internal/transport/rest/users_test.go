package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/user"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

func userHandlers(svc userService) Handlers {
	return Handlers{Users: NewUserHandler(svc, fakeLinks{}, testLogger())}
}

func sampleUser(id uuid.UUID) *domain.User {
	country := "Finland"
	return &domain.User{
		ID:             id,
		Name:           "Aino",
		Email:          "aino@example.org",
		Country:        &country,
		SavedMushrooms: []uuid.UUID{uuid.New()},
		CreatedAt:      time.Now(),
	}
}

func TestUsers_GetMe_EnsuresFromIdentity(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	var got user.EnsureInput
	svc := &userServiceMock{
		EnsureFunc: func(_ context.Context, input user.EnsureInput) (*domain.User, error) {
			got = input
			return sampleUser(me), nil
		},
	}

	req := asUser(newRequest(http.MethodGet, "/api/users/me", ""), me)
	req = req.WithContext(ctxutil.WithIdentity(req.Context(), ctxutil.Identity{Email: "aino@example.org", Name: "Aino"}))
	rec := serve(userHandlers(svc), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.EnsureInput{Name: "Aino", Email: "aino@example.org"}, got)

	resp := decode[profileResponse](t, rec)
	assert.Equal(t, me.String(), resp.ID)
	assert.Equal(t, "aino@example.org", resp.Email)
	assert.Len(t, resp.SavedMushrooms, 1)
}

func TestUsers_GetMe_Anonymous(t *testing.T) {
	t.Parallel()

	svc := &userServiceMock{
		EnsureFunc: func(context.Context, user.EnsureInput) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	rec := serve(userHandlers(svc), newRequest(http.MethodGet, "/api/users/me", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUsers_GetOther_PublicView(t *testing.T) {
	t.Parallel()

	other := uuid.New()
	svc := &userServiceMock{
		GetFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return sampleUser(id), nil
		},
	}

	rec := serve(userHandlers(svc), newRequest(http.MethodGet, "/api/users/"+other.String(), ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "aino@example.org")
	resp := decode[publicUserResponse](t, rec)
	assert.Equal(t, other.String(), resp.ID)
	require.NotNil(t, resp.Country)
	assert.Equal(t, "Finland", *resp.Country)
}

func TestUsers_Update(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	var got user.UpdateInput
	svc := &userServiceMock{
		UpdateFunc: func(_ context.Context, input user.UpdateInput) (*domain.User, error) {
			got = input
			return sampleUser(me), nil
		},
	}

	req := asUser(newRequest(http.MethodPatch, "/api/users/me", `{"birthDate":"1990-04-12","country":""}`), me)
	rec := serve(userHandlers(svc), req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.BirthDate)
	assert.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), *got.BirthDate)
	require.NotNil(t, got.Country)
	assert.Empty(t, *got.Country)
	assert.Nil(t, got.Name)
}

func TestUsers_Update_OwnIDAccepted(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	svc := &userServiceMock{
		UpdateFunc: func(context.Context, user.UpdateInput) (*domain.User, error) {
			return sampleUser(me), nil
		},
	}

	req := asUser(newRequest(http.MethodPatch, "/api/users/"+me.String(), `{"name":"Aino"}`), me)
	rec := serve(userHandlers(svc), req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUsers_Update_Rejected(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{
			name:   "anonymous",
			req:    newRequest(http.MethodPatch, "/api/users/me", `{"name":"x"}`),
			status: http.StatusUnauthorized,
		},
		{
			name:   "someone else",
			req:    asUser(newRequest(http.MethodPatch, "/api/users/"+uuid.NewString(), `{"name":"x"}`), me),
			status: http.StatusForbidden,
		},
		{
			name:   "bad birth date",
			req:    asUser(newRequest(http.MethodPatch, "/api/users/me", `{"birthDate":"12/04/1990"}`), me),
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(userHandlers(&userServiceMock{}), tt.req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUsers_Delete(t *testing.T) {
	t.Parallel()

	called := false
	svc := &userServiceMock{
		DeleteFunc: func(context.Context) error {
			called = true
			return nil
		},
	}

	rec := serve(userHandlers(svc), asUser(newRequest(http.MethodDelete, "/api/users/me", ""), uuid.New()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestUsers_SaveUnsave(t *testing.T) {
	t.Parallel()

	me, item := uuid.New(), uuid.New()
	var saved, unsaved user.SaveInput
	svc := &userServiceMock{
		SaveFunc: func(_ context.Context, input user.SaveInput) (*domain.User, error) {
			saved = input
			return sampleUser(me), nil
		},
		UnsaveFunc: func(_ context.Context, input user.SaveInput) (*domain.User, error) {
			unsaved = input
			return sampleUser(me), nil
		},
	}
	path := "/api/users/me/saved/recipes/" + item.String()

	rec := serve(userHandlers(svc), asUser(newRequest(http.MethodPut, path, ""), me))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(userHandlers(svc), asUser(newRequest(http.MethodDelete, path, ""), me))
	require.Equal(t, http.StatusOK, rec.Code)

	want := user.SaveInput{Kind: domain.SavedKindRecipes, ItemID: item}
	assert.Equal(t, want, saved)
	assert.Equal(t, want, unsaved)
}

func TestUsers_Save_OtherUserForbidden(t *testing.T) {
	t.Parallel()

	path := "/api/users/" + uuid.NewString() + "/saved/recipes/" + uuid.NewString()
	rec := serve(userHandlers(&userServiceMock{}), asUser(newRequest(http.MethodPut, path, ""), uuid.New()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUsers_Saved(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	var previewFor uuid.UUID
	svc := &userServiceMock{
		SavedPreviewFunc: func(_ context.Context, id uuid.UUID) (*domain.SavedItems, error) {
			previewFor = id
			return &domain.SavedItems{Mushrooms: []domain.Mushroom{{ID: uuid.New(), Name: "Cep"}}}, nil
		},
	}

	rec := serve(userHandlers(svc), asUser(newRequest(http.MethodGet, "/api/users/me/saved", ""), me))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, me, previewFor)
	resp := decode[collectionResponse](t, rec)
	require.Len(t, resp.Mushrooms, 1)
	assert.NotNil(t, resp.Locations)
	assert.Empty(t, resp.Locations)
}

func TestUsers_SavedByKind(t *testing.T) {
	t.Parallel()

	other := uuid.New()
	svc := &userServiceMock{
		SavedByKindFunc: func(_ context.Context, id uuid.UUID, kind domain.SavedKind) (*domain.SavedItems, error) {
			assert.Equal(t, other, id)
			assert.Equal(t, domain.SavedKindLocations, kind)
			return &domain.SavedItems{}, nil
		},
	}

	rec := serve(userHandlers(svc), newRequest(http.MethodGet, "/api/users/"+other.String()+"/saved/locations", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(userHandlers(svc), newRequest(http.MethodGet, "/api/users/"+other.String()+"/saved/comments", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_Saved_MeRequiresAuth(t *testing.T) {
	t.Parallel()

	rec := serve(userHandlers(&userServiceMock{}), newRequest(http.MethodGet, "/api/users/me/saved", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUsers_Authored(t *testing.T) {
	t.Parallel()

	author := uuid.New()
	svc := &userServiceMock{
		AuthoredFunc: func(_ context.Context, id uuid.UUID) (*domain.AuthoredItems, error) {
			assert.Equal(t, author, id)
			return &domain.AuthoredItems{Recipes: []domain.Recipe{{ID: uuid.New(), Name: "Soup"}}}, nil
		},
	}

	rec := serve(userHandlers(svc), newRequest(http.MethodGet, "/api/users/"+author.String()+"/authored", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[collectionResponse](t, rec)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Soup", resp.Recipes[0].Name)
}
