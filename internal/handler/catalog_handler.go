package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
	"github.com/stemsi/rekamsehat-backend/internal/validator"
)

// CatalogHandler handles tingkatan, jenis penyakit and obat.
type CatalogHandler struct {
	catalogService *service.CatalogService
	log            zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		log:            log.With().Str("component", "catalog_handler").Logger(),
	}
}

// ─── Tingkatan ─────────────────────────────────────────────────────────

// ListTingkatan godoc
// GET /api/v1/tingkatan
func (h *CatalogHandler) ListTingkatan(c *gin.Context) {
	list, err := h.catalogService.ListTingkatan(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tingkatan": list})
}

// CreateTingkatan godoc
// POST /api/v1/admin/tingkatan
func (h *CatalogHandler) CreateTingkatan(c *gin.Context) {
	var req model.TingkatanRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	t, err := h.catalogService.CreateTingkatan(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"tingkatan": t})
}

// UpdateTingkatan godoc
// PUT /api/v1/admin/tingkatan/:id
func (h *CatalogHandler) UpdateTingkatan(c *gin.Context) {
	var req model.TingkatanRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	t, err := h.catalogService.UpdateTingkatan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tingkatan": t})
}

// DeleteTingkatan godoc
// DELETE /api/v1/admin/tingkatan/:id
// Refused while a profile still references the tingkatan.
func (h *CatalogHandler) DeleteTingkatan(c *gin.Context) {
	if err := h.catalogService.DeleteTingkatan(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ─── Jenis penyakit ────────────────────────────────────────────────────

// ListJenis godoc
// GET /api/v1/jenis-penyakit
func (h *CatalogHandler) ListJenis(c *gin.Context) {
	list, err := h.catalogService.ListJenis(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jenis_penyakit": list})
}

// GetJenis godoc
// GET /api/v1/jenis-penyakit/:id
// Includes the obat list.
func (h *CatalogHandler) GetJenis(c *gin.Context) {
	j, err := h.catalogService.GetJenis(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jenis_penyakit": j})
}

// CreateJenis godoc
// POST /api/v1/admin/jenis-penyakit
func (h *CatalogHandler) CreateJenis(c *gin.Context) {
	var req model.JenisPenyakitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	j, err := h.catalogService.CreateJenis(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"jenis_penyakit": j})
}

// UpdateJenis godoc
// PUT /api/v1/admin/jenis-penyakit/:id
func (h *CatalogHandler) UpdateJenis(c *gin.Context) {
	var req model.JenisPenyakitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	j, err := h.catalogService.UpdateJenis(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jenis_penyakit": j})
}

// DeleteJenis godoc
// DELETE /api/v1/admin/jenis-penyakit/:id
// Also removes the obat subcollection.
func (h *CatalogHandler) DeleteJenis(c *gin.Context) {
	if err := h.catalogService.DeleteJenis(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ─── Obat ──────────────────────────────────────────────────────────────

// ListObat godoc
// GET /api/v1/admin/jenis-penyakit/:id/obat
func (h *CatalogHandler) ListObat(c *gin.Context) {
	list, err := h.catalogService.ListObat(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"obat": list})
}

// CreateObat godoc
// POST /api/v1/admin/jenis-penyakit/:id/obat
func (h *CatalogHandler) CreateObat(c *gin.Context) {
	var req model.ObatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	o, err := h.catalogService.CreateObat(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"obat": o})
}

// UpdateObat godoc
// PUT /api/v1/admin/jenis-penyakit/:id/obat/:obat_id
func (h *CatalogHandler) UpdateObat(c *gin.Context) {
	var req model.ObatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	o, err := h.catalogService.UpdateObat(c.Request.Context(), c.Param("id"), c.Param("obat_id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"obat": o})
}

// DeleteObat godoc
// DELETE /api/v1/admin/jenis-penyakit/:id/obat/:obat_id
func (h *CatalogHandler) DeleteObat(c *gin.Context) {
	if err := h.catalogService.DeleteObat(c.Request.Context(), c.Param("id"), c.Param("obat_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
