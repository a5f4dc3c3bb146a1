package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/internal/service/media"
)

const (
	uploadField = "file"
	// multipartOverhead covers headers and boundaries around the file part.
	multipartOverhead = 1 << 20
)

type mediaService interface {
	Upload(ctx context.Context, input media.UploadInput) (string, error)
	Open(ctx context.Context, bucket domain.MediaBucket, path string) (*domain.MediaObject, error)
	PublicURL(bucket domain.MediaBucket, path string) string
}

// MediaHandler accepts image uploads and serves stored images.
type MediaHandler struct {
	svc     mediaService
	maxBody int64
	log     *slog.Logger
}

// NewMediaHandler creates a MediaHandler. maxUpload bounds the file part;
// the request body as a whole may exceed it only by multipart framing.
func NewMediaHandler(svc mediaService, maxUpload int64, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		svc:     svc,
		maxBody: maxUpload + multipartOverhead,
		log:     logger.With("handler", "media"),
	}
}

type uploadResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// Upload handles POST /api/media/:bucket with a multipart "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	bucket := domain.MediaBucket(pathParam(r, "bucket"))
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	part, err := filePart(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer part.Close()

	path, err := h.svc.Upload(r.Context(), media.UploadInput{
		Bucket:      bucket,
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Body:        part,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{Path: path, URL: h.svc.PublicURL(bucket, path)})
}

// Serve handles GET /media/:bucket/*path.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	bucket := domain.MediaBucket(pathParam(r, "bucket"))
	path := strings.TrimPrefix(pathParam(r, "path"), "/")

	obj, err := h.svc.Open(r.Context(), bucket, path)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModifiedAt.IsZero() {
		w.Header().Set("Last-Modified", obj.ModifiedAt.UTC().Format(http.TimeFormat))
	}
	// Stored names are random and never rewritten.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.log.WarnContext(r.Context(), "media copy interrupted",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// filePart streams the multipart body up to the upload field.
func filePart(r *http.Request) (*multipart.Part, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, domain.NewValidationError(uploadField, "expected multipart/form-data")
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError(uploadField, "required")
		}
		if err != nil {
			return nil, domain.NewValidationError(uploadField, "malformed multipart body")
		}
		if part.FormName() == uploadField {
			return part, nil
		}
		part.Close()
	}
}
