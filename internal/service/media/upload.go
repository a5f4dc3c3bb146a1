package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // webp decoder for image.Decode

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

const jpegQuality = 85

// Upload stores a downsized copy of the image and returns its path within the bucket.
func (s *Service) Upload(ctx context.Context, input UploadInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	data, err := io.ReadAll(io.LimitReader(input.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("media.Upload: read: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", domain.NewValidationError("file", fmt.Sprintf("must not exceed %d bytes", s.cfg.MaxUploadBytes))
	}
	if len(data) == 0 {
		return "", domain.NewValidationError("file", "required")
	}

	if sniffed := http.DetectContentType(data); !allowedMIMEs[sniffed] {
		return "", domain.NewValidationError("file", "unsupported image type")
	}

	hdr, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", domain.NewValidationError("file", "cannot decode image")
	}
	if int64(hdr.Width)*int64(hdr.Height) > s.cfg.MaxPixels {
		return "", domain.NewValidationError("file", "image dimensions too large")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", domain.NewValidationError("file", "cannot decode image")
	}

	bounds := img.Bounds()
	if limit := s.cfg.MaxDimension; limit > 0 && (bounds.Dx() > limit || bounds.Dy() > limit) {
		img = imaging.Fit(img, limit, limit, imaging.Lanczos)
	}

	format := allowedExtensions[extension(input.Filename)]
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("media.Upload: encode: %w", err)
	}

	key := uuid.New().String() + storedExtensions[format]
	if err := s.store.Put(ctx, input.Bucket.String(), key, &buf, storedMIMEs[format]); err != nil {
		return "", fmt.Errorf("media.Upload: store: %w", err)
	}

	size := img.Bounds()
	s.log.InfoContext(ctx, "image uploaded",
		slog.String("user_id", userID.String()),
		slog.String("bucket", input.Bucket.String()),
		slog.String("path", key),
		slog.Int("width", size.Dx()),
		slog.Int("height", size.Dy()),
	)

	return key, nil
}
