package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/cabin"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/file"
	filehttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/file/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

type Handler struct {
	service        cabin.Service
	fileHandler    *filehttp.Handler
	maxUploadBytes int64
}

func NewHandler(service cabin.Service, fileHandler *filehttp.Handler, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		fileHandler:    fileHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListCabinsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return
	}

	cabins, total, err := h.service.List(c.Request.Context(), cabin.Filter{
		Discount:  req.Discount,
		Page:      req.Page,
		PageSize:  req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.Direction(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CabinResponse, len(cabins))
	for i, cb := range cabins {
		items[i] = NewCabinResponse(cb)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid cabin id", err)
		return
	}

	cb, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCabinResponse(cb))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCabinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	cb, err := h.service.Create(c.Request.Context(), cabin.CreateRequest{
		Name:         body.Name,
		Description:  body.Description,
		RegularPrice: *body.RegularPrice,
		MaxCapacity:  body.MaxCapacity,
		Discount:     body.Discount,
		Image:        body.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCabinResponse(cb))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid cabin id", err)
		return
	}

	var body UpdateCabinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	cb, err := h.service.Update(c.Request.Context(), uri.ID, cabin.UpdateRequest{
		Name:         body.Name,
		Description:  body.Description,
		RegularPrice: body.RegularPrice,
		MaxCapacity:  body.MaxCapacity,
		Discount:     body.Discount,
		Image:        body.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCabinResponse(cb))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid cabin id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage replaces the cabin picture with an uploaded image.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid cabin id", err)
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		FormFieldName: "image",
		MaxSizeBytes:  h.maxUploadBytes,
		AllowedTypes:  file.ImageTypes,
		ResizeImage:   true,
		AfterUpload: func(ctx context.Context, f *file.File) error {
			return h.service.UpdateImage(ctx, uri.ID, file.FileURL(f.ID))
		},
	})
}
