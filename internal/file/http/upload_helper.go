package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/auth"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/file"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

// FileUploadConfig defines the configuration for generic file uploads
type FileUploadConfig struct {
	FormFieldName string   // The name of the form field containing the file (default: "file")
	MaxSizeBytes  int64    // The maximum file size in bytes (0 = no limit)
	AllowedTypes  []string // The list of allowed MIME types (empty = allow all)
	ResizeImage   bool     // Re-encode as JPEG, at most 1000x1000
	// AfterUpload attaches the file to its owner, e.g. sets a cabin image.
	AfterUpload func(ctx context.Context, f *file.File) error
}

// HandleFileUpload stores the uploaded file, runs AfterUpload and
// removes the file again when the hook fails.
func (h *Handler) HandleFileUpload(c *gin.Context, config FileUploadConfig) {
	userID := auth.GetUserID(c)

	fieldName := config.FormFieldName
	if fieldName == "" {
		fieldName = "file"
	}

	fileHeader, err := c.FormFile(fieldName)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: fieldName + " is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       userID,
		MaxSizeBytes: config.MaxSizeBytes,
		AllowedTypes: config.AllowedTypes,
		ResizeImage:  config.ResizeImage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if config.AfterUpload != nil {
		if err := config.AfterUpload(c.Request.Context(), f); err != nil {
			_ = h.fileService.Delete(c.Request.Context(), f.ID)
			response.Error(c, err)
			return
		}
	}

	var thumbURL *string
	if f.ThumbnailPath != nil {
		t := file.ThumbnailURL(f.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusOK, FileUploadResponse{
		Message:      "file uploaded successfully",
		FileID:       f.ID,
		URL:          file.FileURL(f.ID),
		ThumbnailURL: thumbURL,
	})
}
