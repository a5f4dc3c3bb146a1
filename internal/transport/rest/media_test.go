package rest

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/media"
)

func mediaHandlers(svc mediaService) Handlers {
	return Handlers{Media: NewMediaHandler(svc, 1<<20, testLogger())}
}

func multipartRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("caption", "ignored"))
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/media/mushrooms", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMedia_Upload(t *testing.T) {
	t.Parallel()

	var gotBucket domain.MediaBucket
	var gotName, gotBody string
	svc := &mediaServiceMock{
		UploadFunc: func(_ context.Context, input media.UploadInput) (string, error) {
			gotBucket = input.Bucket
			gotName = input.Filename
			data, err := io.ReadAll(input.Body)
			if err != nil {
				return "", err
			}
			gotBody = string(data)
			return "0b7c.jpg", nil
		},
		PublicURLFunc: fakeLinks{}.PublicURL,
	}

	rec := serve(mediaHandlers(svc), multipartRequest(t, "file", "cep.jpg", "jpegbytes"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.MediaBucketMushrooms, gotBucket)
	assert.Equal(t, "cep.jpg", gotName)
	assert.Equal(t, "jpegbytes", gotBody)
	assert.JSONEq(t, `{"path":"0b7c.jpg","url":"http://cdn.test/media/mushrooms/0b7c.jpg"}`, rec.Body.String())
}

func TestMedia_Upload_MissingFile(t *testing.T) {
	t.Parallel()

	rec := serve(mediaHandlers(&mediaServiceMock{}), multipartRequest(t, "photo", "cep.jpg", "x"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[errorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "file", resp.Fields[0].Field)
}

func TestMedia_Upload_NotMultipart(t *testing.T) {
	t.Parallel()

	rec := serve(mediaHandlers(&mediaServiceMock{}), newRequest(http.MethodPost, "/api/media/mushrooms", `{"file":"x"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMedia_Upload_ServiceValidation(t *testing.T) {
	t.Parallel()

	svc := &mediaServiceMock{
		UploadFunc: func(context.Context, media.UploadInput) (string, error) {
			return "", domain.NewValidationError("bucket", "unknown bucket")
		},
	}

	rec := serve(mediaHandlers(svc), multipartRequest(t, "file", "cep.jpg", "x"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMedia_Serve(t *testing.T) {
	t.Parallel()

	modified := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &mediaServiceMock{
		OpenFunc: func(_ context.Context, bucket domain.MediaBucket, path string) (*domain.MediaObject, error) {
			assert.Equal(t, domain.MediaBucketLocations, bucket)
			assert.Equal(t, "0b7c.png", path)
			return &domain.MediaObject{
				Body:        io.NopCloser(strings.NewReader("pngbytes")),
				ContentType: "image/png",
				Size:        8,
				ModifiedAt:  modified,
			}, nil
		},
	}

	rec := serve(mediaHandlers(svc), newRequest(http.MethodGet, "/media/locations/0b7c.png", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pngbytes", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "8", rec.Header().Get("Content-Length"))
	assert.Equal(t, modified.Format(http.TimeFormat), rec.Header().Get("Last-Modified"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "immutable")
}

func TestMedia_Serve_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mediaServiceMock{
		OpenFunc: func(context.Context, domain.MediaBucket, string) (*domain.MediaObject, error) {
			return nil, domain.ErrNotFound
		},
	}

	rec := serve(mediaHandlers(svc), newRequest(http.MethodGet, "/media/users/missing.jpg", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
