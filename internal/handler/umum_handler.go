package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/middleware"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
	"github.com/stemsi/rekamsehat-backend/internal/validator"
)

// UmumHandler handles data umum documents.
type UmumHandler struct {
	umumService *service.UmumService
	log         zerolog.Logger
}

// NewUmumHandler creates a new UmumHandler.
func NewUmumHandler(umumService *service.UmumService, log zerolog.Logger) *UmumHandler {
	return &UmumHandler{
		umumService: umumService,
		log:         log.With().Str("component", "umum_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/umum?page=&per_page=
func (h *UmumHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	docs, pagination, err := h.umumService.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, docs, pagination)
}

// Get godoc
// GET /api/v1/umum/:id
func (h *UmumHandler) Get(c *gin.Context) {
	d, err := h.umumService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_umum": d})
}

// Create godoc
// POST /api/v1/admin/umum
func (h *UmumHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.DataUmumRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.umumService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data_umum": d})
}

// Update godoc
// PUT /api/v1/admin/umum/:id
// Files missing from the new list are destroyed on the provider.
func (h *UmumHandler) Update(c *gin.Context) {
	var req model.DataUmumRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.umumService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_umum": d})
}

// Delete godoc
// DELETE /api/v1/admin/umum/:id
// Destroys every attached file first. The document is kept if any destroy fails.
func (h *UmumHandler) Delete(c *gin.Context) {
	if err := h.umumService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProviderFailure) {
			response.Fail(c, http.StatusInternalServerError, response.ErrDeleteFailed)
			return
		}
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// AttachFile godoc
// POST /api/v1/admin/umum/:id/files
// Uploads the multipart "file" field and appends it to the document.
func (h *UmumHandler) AttachFile(c *gin.Context) {
	header, ok := limitedFormFile(c, h.umumService.MaxUploadBytes())
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	f, err := h.umumService.AttachFile(c.Request.Context(), c.Param("id"), file, header.Filename, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrProviderFailure) {
			response.Fail(c, http.StatusInternalServerError, response.ErrUploadFailed)
			return
		}
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"file": f})
}
