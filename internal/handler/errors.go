package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/rekamsehat-backend/internal/response"
	"github.com/stemsi/rekamsehat-backend/internal/service"
)

// errorMapping pairs a service sentinel with its HTTP status and code.
type errorMapping struct {
	target error
	status int
	code   response.ErrCode
}

var serviceErrors = []errorMapping{
	{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrAccountPending, http.StatusForbidden, response.ErrAccountPending},
	{service.ErrEmailTaken, http.StatusConflict, response.ErrEmailTaken},
	{service.ErrForbiddenRole, http.StatusForbidden, response.ErrForbiddenRole},
	{service.ErrSelfAction, http.StatusForbidden, response.ErrSelfAction},
	{service.ErrDependencyExists, http.StatusConflict, response.ErrDependencyExists},
	{service.ErrUnknownTingkatan, http.StatusBadRequest, response.ErrUnknownReference},
	{service.ErrUnknownJenis, http.StatusBadRequest, response.ErrUnknownReference},
	{service.ErrUnknownUser, http.StatusBadRequest, response.ErrUnknownReference},
	{service.ErrEmptyUpdate, http.StatusBadRequest, response.ErrValidation},
	{service.ErrPublicIDRequired, http.StatusBadRequest, response.ErrPublicIDRequired},
	{service.ErrFileTooLarge, http.StatusBadRequest, response.ErrFileTooLarge},
}

// respondError writes the envelope for err. Errors without a mapping are
// logged and reported as INTERNAL_ERROR.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			response.Fail(c, m.status, m.code)
			return
		}
	}

	log.Error().
		Err(err).
		Str("request_id", response.RequestID(c)).
		Str("path", c.FullPath()).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

func bindFailed(c *gin.Context, fields map[string]string) {
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}

// pageQuery reads page and per_page. Bad values fall back to the service defaults.
func pageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}
