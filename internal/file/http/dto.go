package http

type FileUploadResponse struct {
	Message      string  `json:"message"`
	FileID       string  `json:"fileId"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}
