package media

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// Upload extensions and the format the decoded image is re-encoded to.
var allowedExtensions = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.PNG,
	".webp": imaging.JPEG,
}

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var storedExtensions = map[imaging.Format]string{
	imaging.JPEG: ".jpg",
	imaging.PNG:  ".png",
}

var storedMIMEs = map[imaging.Format]string{
	imaging.JPEG: "image/jpeg",
	imaging.PNG:  "image/png",
}

// UploadInput holds an image upload.
type UploadInput struct {
	Bucket      domain.MediaBucket
	Filename    string
	ContentType string
	Body        io.Reader
}

// Validate checks all fields and collects all errors.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError

	if !i.Bucket.IsValid() {
		errs = append(errs, domain.FieldError{Field: "bucket", Message: "unknown bucket"})
	}

	if _, ok := allowedExtensions[extension(i.Filename)]; !ok {
		errs = append(errs, domain.FieldError{Field: "filename", Message: "unsupported file extension"})
	}

	if ct := mediaType(i.ContentType); ct != "" && ct != "application/octet-stream" && !allowedMIMEs[ct] {
		errs = append(errs, domain.FieldError{Field: "content_type", Message: "unsupported content type"})
	}

	if i.Body == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// mediaType strips parameters such as charset from a Content-Type value.
func mediaType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}
