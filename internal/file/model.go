package file

import (
	"net/http"
	"time"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "file not found")
	ErrThumbnailMissing  = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrTooLarge          = apperror.New(http.StatusRequestEntityTooLarge, "file is too large")
	ErrUnsupportedType   = apperror.New(http.StatusUnsupportedMediaType, "unsupported file type")
	ErrInvalidImage      = apperror.New(http.StatusBadRequest, "file is not a valid image")
	ErrStoredFileMissing = apperror.New(http.StatusNotFound, "file content is no longer available")
)

// ImageTypes is the allow-list used for cabin and guest pictures.
var ImageTypes = []string{"image/jpeg", "image/png"}

// File is the metadata of an uploaded object.
type File struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
