package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/location"
	"github.com/heartmarshall/mycoforage-backend/internal/service/media"
	"github.com/heartmarshall/mycoforage-backend/internal/service/mushroom"
	"github.com/heartmarshall/mycoforage-backend/internal/service/recipe"
	"github.com/heartmarshall/mycoforage-backend/internal/service/similarity"
	"github.com/heartmarshall/mycoforage-backend/internal/service/user"
)

// Manual mocks: each method calls the matching Func field. A nil field
// panics, which fails the test that reached an unexpected call.

var (
	_ locationService   = (*locationServiceMock)(nil)
	_ mushroomService   = (*mushroomServiceMock)(nil)
	_ similarityService = (*similarityServiceMock)(nil)
	_ recipeService     = (*recipeServiceMock)(nil)
	_ userService       = (*userServiceMock)(nil)
	_ mediaService      = (*mediaServiceMock)(nil)
	_ lookupService     = (*lookupServiceMock)(nil)
)

type locationServiceMock struct {
	ListFunc           func(ctx context.Context, input location.ListInput) ([]domain.Location, error)
	GetFunc            func(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	CreateFunc         func(ctx context.Context, input location.CreateInput) (*domain.Location, error)
	UpdateFunc         func(ctx context.Context, input location.UpdateInput) (*domain.Location, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	AddMushroomFunc    func(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
	RemoveMushroomFunc func(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error)
	ListCommentsFunc   func(ctx context.Context, locationID uuid.UUID) ([]domain.Comment, error)
	AverageRatingFunc  func(ctx context.Context, locationID uuid.UUID) (*location.RatingSummary, error)
	AddCommentFunc     func(ctx context.Context, input location.CommentInput) (*domain.Comment, error)
	UpdateCommentFunc  func(ctx context.Context, input location.UpdateCommentInput) (*domain.Comment, error)
	DeleteCommentFunc  func(ctx context.Context, commentID uuid.UUID) error
}

func (m *locationServiceMock) List(ctx context.Context, input location.ListInput) ([]domain.Location, error) {
	return m.ListFunc(ctx, input)
}

func (m *locationServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return m.GetFunc(ctx, id)
}

func (m *locationServiceMock) Create(ctx context.Context, input location.CreateInput) (*domain.Location, error) {
	return m.CreateFunc(ctx, input)
}

func (m *locationServiceMock) Update(ctx context.Context, input location.UpdateInput) (*domain.Location, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *locationServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *locationServiceMock) AddMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return m.AddMushroomFunc(ctx, locationID, mushroomID)
}

func (m *locationServiceMock) RemoveMushroom(ctx context.Context, locationID, mushroomID uuid.UUID) (*domain.Location, error) {
	return m.RemoveMushroomFunc(ctx, locationID, mushroomID)
}

func (m *locationServiceMock) ListComments(ctx context.Context, locationID uuid.UUID) ([]domain.Comment, error) {
	return m.ListCommentsFunc(ctx, locationID)
}

func (m *locationServiceMock) AverageRating(ctx context.Context, locationID uuid.UUID) (*location.RatingSummary, error) {
	return m.AverageRatingFunc(ctx, locationID)
}

func (m *locationServiceMock) AddComment(ctx context.Context, input location.CommentInput) (*domain.Comment, error) {
	return m.AddCommentFunc(ctx, input)
}

func (m *locationServiceMock) UpdateComment(ctx context.Context, input location.UpdateCommentInput) (*domain.Comment, error) {
	return m.UpdateCommentFunc(ctx, input)
}

func (m *locationServiceMock) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	return m.DeleteCommentFunc(ctx, commentID)
}

type mushroomServiceMock struct {
	ListFunc    func(ctx context.Context, input mushroom.ListInput) ([]domain.Mushroom, error)
	GetFunc     func(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error)
	SimilarFunc func(ctx context.Context, id uuid.UUID) ([]domain.Mushroom, error)
	CreateFunc  func(ctx context.Context, input mushroom.CreateInput) (*domain.Mushroom, error)
	UpdateFunc  func(ctx context.Context, input mushroom.UpdateInput) (*domain.Mushroom, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mushroomServiceMock) List(ctx context.Context, input mushroom.ListInput) ([]domain.Mushroom, error) {
	return m.ListFunc(ctx, input)
}

func (m *mushroomServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Mushroom, error) {
	return m.GetFunc(ctx, id)
}

func (m *mushroomServiceMock) Similar(ctx context.Context, id uuid.UUID) ([]domain.Mushroom, error) {
	return m.SimilarFunc(ctx, id)
}

func (m *mushroomServiceMock) Create(ctx context.Context, input mushroom.CreateInput) (*domain.Mushroom, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mushroomServiceMock) Update(ctx context.Context, input mushroom.UpdateInput) (*domain.Mushroom, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *mushroomServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type similarityServiceMock struct {
	LinkFunc       func(ctx context.Context, input similarity.LinkInput) (*similarity.LinkResult, error)
	UnlinkAllFunc  func(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error)
	ListGroupsFunc func(ctx context.Context) ([]domain.SimilarityGroup, error)
}

func (m *similarityServiceMock) Link(ctx context.Context, input similarity.LinkInput) (*similarity.LinkResult, error) {
	return m.LinkFunc(ctx, input)
}

func (m *similarityServiceMock) UnlinkAll(ctx context.Context, mushroomID uuid.UUID) (*similarity.UnlinkResult, error) {
	return m.UnlinkAllFunc(ctx, mushroomID)
}

func (m *similarityServiceMock) ListGroups(ctx context.Context) ([]domain.SimilarityGroup, error) {
	return m.ListGroupsFunc(ctx)
}

type recipeServiceMock struct {
	ListFunc               func(ctx context.Context, input recipe.ListInput) ([]domain.Recipe, error)
	GetFunc                func(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	MentionedMushroomsFunc func(ctx context.Context, recipeID uuid.UUID) ([]domain.Mushroom, error)
	CreateFunc             func(ctx context.Context, input recipe.CreateInput) (*domain.Recipe, error)
	UpdateFunc             func(ctx context.Context, input recipe.UpdateInput) (*domain.Recipe, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) error
}

func (m *recipeServiceMock) List(ctx context.Context, input recipe.ListInput) ([]domain.Recipe, error) {
	return m.ListFunc(ctx, input)
}

func (m *recipeServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	return m.GetFunc(ctx, id)
}

func (m *recipeServiceMock) MentionedMushrooms(ctx context.Context, recipeID uuid.UUID) ([]domain.Mushroom, error) {
	return m.MentionedMushroomsFunc(ctx, recipeID)
}

func (m *recipeServiceMock) Create(ctx context.Context, input recipe.CreateInput) (*domain.Recipe, error) {
	return m.CreateFunc(ctx, input)
}

func (m *recipeServiceMock) Update(ctx context.Context, input recipe.UpdateInput) (*domain.Recipe, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *recipeServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type userServiceMock struct {
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	EnsureFunc       func(ctx context.Context, input user.EnsureInput) (*domain.User, error)
	UpdateFunc       func(ctx context.Context, input user.UpdateInput) (*domain.User, error)
	DeleteFunc       func(ctx context.Context) error
	SaveFunc         func(ctx context.Context, input user.SaveInput) (*domain.User, error)
	UnsaveFunc       func(ctx context.Context, input user.SaveInput) (*domain.User, error)
	SavedPreviewFunc func(ctx context.Context, userID uuid.UUID) (*domain.SavedItems, error)
	SavedByKindFunc  func(ctx context.Context, userID uuid.UUID, kind domain.SavedKind) (*domain.SavedItems, error)
	AuthoredFunc     func(ctx context.Context, userID uuid.UUID) (*domain.AuthoredItems, error)
}

func (m *userServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetFunc(ctx, id)
}

func (m *userServiceMock) Ensure(ctx context.Context, input user.EnsureInput) (*domain.User, error) {
	return m.EnsureFunc(ctx, input)
}

func (m *userServiceMock) Update(ctx context.Context, input user.UpdateInput) (*domain.User, error) {
	return m.UpdateFunc(ctx, input)
}

func (m *userServiceMock) Delete(ctx context.Context) error {
	return m.DeleteFunc(ctx)
}

func (m *userServiceMock) Save(ctx context.Context, input user.SaveInput) (*domain.User, error) {
	return m.SaveFunc(ctx, input)
}

func (m *userServiceMock) Unsave(ctx context.Context, input user.SaveInput) (*domain.User, error) {
	return m.UnsaveFunc(ctx, input)
}

func (m *userServiceMock) SavedPreview(ctx context.Context, userID uuid.UUID) (*domain.SavedItems, error) {
	return m.SavedPreviewFunc(ctx, userID)
}

func (m *userServiceMock) SavedByKind(ctx context.Context, userID uuid.UUID, kind domain.SavedKind) (*domain.SavedItems, error) {
	return m.SavedByKindFunc(ctx, userID, kind)
}

func (m *userServiceMock) Authored(ctx context.Context, userID uuid.UUID) (*domain.AuthoredItems, error) {
	return m.AuthoredFunc(ctx, userID)
}

type mediaServiceMock struct {
	UploadFunc    func(ctx context.Context, input media.UploadInput) (string, error)
	OpenFunc      func(ctx context.Context, bucket domain.MediaBucket, path string) (*domain.MediaObject, error)
	PublicURLFunc func(bucket domain.MediaBucket, path string) string
}

func (m *mediaServiceMock) Upload(ctx context.Context, input media.UploadInput) (string, error) {
	return m.UploadFunc(ctx, input)
}

func (m *mediaServiceMock) Open(ctx context.Context, bucket domain.MediaBucket, path string) (*domain.MediaObject, error) {
	return m.OpenFunc(ctx, bucket, path)
}

func (m *mediaServiceMock) PublicURL(bucket domain.MediaBucket, path string) string {
	return m.PublicURLFunc(bucket, path)
}

type lookupServiceMock struct {
	GeocodeFunc   func(ctx context.Context, query string) (*domain.Coordinates, error)
	CountriesFunc func(ctx context.Context) ([]string, error)
}

func (m *lookupServiceMock) Geocode(ctx context.Context, query string) (*domain.Coordinates, error) {
	return m.GeocodeFunc(ctx, query)
}

func (m *lookupServiceMock) Countries(ctx context.Context) ([]string, error) {
	return m.CountriesFunc(ctx)
}

// fakeLinks builds predictable image URLs.
type fakeLinks struct{}

func (fakeLinks) PublicURL(bucket domain.MediaBucket, path string) string {
	return "http://cdn.test/media/" + bucket.String() + "/" + path
}
