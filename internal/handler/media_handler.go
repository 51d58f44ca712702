package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/model"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
)

// multipartOverhead is the room left for multipart headers on top of the file limit.
const multipartOverhead = 1 << 20

// limitedFormFile caps the request body before parsing the multipart "file"
// field, so an oversized upload is rejected without being buffered to disk.
// It writes the error envelope and returns false on failure.
func limitedFormFile(c *gin.Context, limit int64) (*multipart.FileHeader, bool) {
	if limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return nil, false
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return nil, false
	}
	return header, true
}

// MediaHandler serves the upload/delete relay.
type MediaHandler struct {
	mediaService *service.MediaService
	log          zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		log:          log.With().Str("component", "media_handler").Logger(),
	}
}

// Upload godoc
// POST /upload
// Streams the multipart "file" field to the media provider and returns the
// provider's upload fields unwrapped.
func (h *MediaHandler) Upload(c *gin.Context) {
	header, ok := limitedFormFile(c, h.mediaService.MaxBytes())
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	result, err := h.mediaService.Upload(c.Request.Context(), file, header.Filename, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrProviderFailure):
			response.Fail(c, http.StatusInternalServerError, response.ErrUploadFailed)
		default:
			respondError(c, h.log, err)
		}
		return
	}

	response.Raw(c, http.StatusOK, result)
}

// Delete godoc
// POST /delete, DELETE /delete
// Destroys an asset by public_id. resource_type defaults to image.
func (h *MediaHandler) Delete(c *gin.Context) {
	var req model.DeleteMediaRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
	}
	if req.PublicID == "" {
		req.PublicID = c.Query("public_id")
	}
	if req.ResourceType == "" {
		req.ResourceType = c.Query("resource_type")
	}

	result, err := h.mediaService.Delete(c.Request.Context(), req.PublicID, req.ResourceType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPublicIDRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrPublicIDRequired)
		case errors.Is(err, service.ErrProviderFailure):
			response.Fail(c, http.StatusInternalServerError, response.ErrDeleteFailed)
		default:
			respondError(c, h.log, err)
		}
		return
	}

	response.Raw(c, http.StatusOK, gin.H{"success": true, "result": result})
}
