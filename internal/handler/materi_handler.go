package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/middleware"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
	"github.com/stemsi/rekamsehat-backend/internal/validator"
)

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MateriHandler handles fitness test records.
type MateriHandler struct {
	materiService *service.MateriService
	log           zerolog.Logger
}

// NewMateriHandler creates a new MateriHandler.
func NewMateriHandler(materiService *service.MateriService, log zerolog.Logger) *MateriHandler {
	return &MateriHandler{
		materiService: materiService,
		log:           log.With().Str("component", "materi_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/admin/materi?peserta_id=&page=&per_page=
func (h *MateriHandler) List(c *gin.Context) {
	page, perPage := pageQuery(c)
	h.list(c, c.Query("peserta_id"), page, perPage)
}

// ListMine godoc
// GET /api/v1/me/materi
func (h *MateriHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	page, perPage := pageQuery(c)
	h.list(c, claims.UserID, page, perPage)
}

func (h *MateriHandler) list(c *gin.Context, pesertaID string, page, perPage int) {
	records, pagination, err := h.materiService.List(c.Request.Context(), pesertaID, page, perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, records, pagination)
}

// Get godoc
// GET /api/v1/admin/materi/:id
func (h *MateriHandler) Get(c *gin.Context) {
	d, err := h.materiService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_materi": d})
}

// Create godoc
// POST /api/v1/admin/materi
// index_masa_tubuh is computed when height and weight are both present.
func (h *MateriHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.DataMateriRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.materiService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data_materi": d})
}

// Update godoc
// PUT /api/v1/admin/materi/:id
func (h *MateriHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.DataMateriRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.materiService.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_materi": d})
}

// Delete godoc
// DELETE /api/v1/admin/materi/:id
func (h *MateriHandler) Delete(c *gin.Context) {
	if err := h.materiService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Export godoc
// GET /api/v1/admin/materi/export?peserta_id=
// Streams every matching record as an xlsx workbook.
func (h *MateriHandler) Export(c *gin.Context) {
	pesertaID := c.Query("peserta_id")

	var buf bytes.Buffer
	n, err := h.materiService.Export(c.Request.Context(), pesertaID, &buf)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("peserta_id", pesertaID).Int("rows", n).Msg("Materi exported")

	filename := fmt.Sprintf("data-materi-%s.xlsx", time.Now().Format("20060102"))
	response.Attachment(c, filename, XLSXContentType, buf.Bytes())
}
