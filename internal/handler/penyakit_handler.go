package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/middleware"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
	"github.com/stemsi/rekamsehat-backend/internal/validator"
)

// PenyakitHandler handles data penyakit records.
type PenyakitHandler struct {
	penyakitService *service.PenyakitService
	log             zerolog.Logger
}

// NewPenyakitHandler creates a new PenyakitHandler.
func NewPenyakitHandler(penyakitService *service.PenyakitService, log zerolog.Logger) *PenyakitHandler {
	return &PenyakitHandler{
		penyakitService: penyakitService,
		log:             log.With().Str("component", "penyakit_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/admin/penyakit?user_id=&jenis_penyakit_id=&page=&per_page=
func (h *PenyakitHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	filter := model.RecordFilter{
		UserID:          c.Query("user_id"),
		JenisPenyakitID: c.Query("jenis_penyakit_id"),
	}
	h.list(c, filter, page, perPage)
}

// ListMine godoc
// GET /api/v1/me/penyakit
func (h *PenyakitHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	page, perPage := pageQuery(c)
	h.list(c, model.RecordFilter{UserID: claims.UserID}, page, perPage)
}

func (h *PenyakitHandler) list(c *gin.Context, filter model.RecordFilter, page, perPage int) {
	records, pagination, err := h.penyakitService.List(c.Request.Context(), filter, page, perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, records, pagination)
}

// Get godoc
// GET /api/v1/admin/penyakit/:id
func (h *PenyakitHandler) Get(c *gin.Context) {
	d, err := h.penyakitService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_penyakit": d})
}

// Create godoc
// POST /api/v1/admin/penyakit
// nama_penyakit and status are derived from the referenced jenis penyakit.
func (h *PenyakitHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.DataPenyakitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.penyakitService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data_penyakit": d})
}

// Update godoc
// PUT /api/v1/admin/penyakit/:id
func (h *PenyakitHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.DataPenyakitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.penyakitService.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_penyakit": d})
}

// Delete godoc
// DELETE /api/v1/admin/penyakit/:id
func (h *PenyakitHandler) Delete(c *gin.Context) {
	if err := h.penyakitService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
