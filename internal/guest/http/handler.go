package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/file"
	filehttp "github.com/EsmailKhaleel/hotel-dashboard-server/internal/file/http"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/guest"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/request"
	"github.com/EsmailKhaleel/hotel-dashboard-server/internal/pkg/response"
)

type Handler struct {
	service        guest.Service
	fileHandler    *filehttp.Handler
	maxUploadBytes int64
}

func NewHandler(service guest.Service, fileHandler *filehttp.Handler, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		fileHandler:    fileHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListGuestsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return
	}

	guests, total, err := h.service.List(c.Request.Context(), guest.Filter{
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.Direction(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GuestResponse, len(guests))
	for i, g := range guests {
		items[i] = NewGuestResponse(g)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.Limit, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGuestResponse(g))
}

func (h *Handler) GetByEmail(c *gin.Context) {
	var uri ByEmailRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid email", err)
		return
	}

	g, err := h.service.GetByEmail(c.Request.Context(), uri.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGuestResponse(g))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateGuestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	g, err := h.service.Create(c.Request.Context(), guest.CreateRequest{
		FullName:    body.FullName,
		Email:       body.Email,
		Nationality: body.Nationality,
		NationalID:  body.NationalID,
		CountryFlag: body.CountryFlag,
		PhoneNumber: body.PhoneNumber,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewGuestResponse(g))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
		return
	}

	var body UpdateGuestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, "invalid request body", err)
		return
	}

	g, err := h.service.Update(c.Request.Context(), uri.ID, guest.UpdateRequest{
		FullName:    body.FullName,
		Email:       body.Email,
		Nationality: body.Nationality,
		NationalID:  body.NationalID,
		CountryFlag: body.CountryFlag,
		PhoneNumber: body.PhoneNumber,
		Address:     body.Address,
		Image:       body.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewGuestResponse(g))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage sets the guest picture from an uploaded image.
func (h *Handler) UploadImage(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, "invalid guest id", err)
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
