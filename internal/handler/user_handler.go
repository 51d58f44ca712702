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

// UserHandler handles user administration endpoints.
type UserHandler struct {
	userService    *service.UserService
	profileService *service.ProfileService
	log            zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, profileService *service.ProfileService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		profileService: profileService,
		log:            log.With().Str("component", "user_handler").Logger(),
	}
}

// ListPending godoc
// GET /api/v1/admin/pending-users
func (h *UserHandler) ListPending(c *gin.Context) {
	pending, err := h.userService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pending_users": pending})
}

// AcceptPending godoc
// POST /api/v1/admin/pending-users/:id/accept
// Approves a registration, optionally overriding the requested role.
func (h *UserHandler) AcceptPending(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.AcceptPendingRequest
	if fields := validator.BindOptional(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	user, err := h.userService.AcceptPending(c.Request.Context(), claims.Role, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// RejectPending godoc
// DELETE /api/v1/admin/pending-users/:id
func (h *UserHandler) RejectPending(c *gin.Context) {
	if err := h.userService.RejectPending(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// ListUsers godoc
// GET /api/v1/admin/users?role=&lembaga=&page=&per_page=
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, perPage := pageQuery(c)
	filter := model.UserListFilter{
		Role:    model.Role(c.Query("role")),
		Lembaga: c.Query("lembaga"),
	}
	if filter.Role != "" && !filter.Role.Valid() {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"role": "role tidak dikenal",
		})
		return
	}

	users, pagination, err := h.userService.ListUsers(c.Request.Context(), filter, page, perPage)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, users, pagination)
}

// GetUser godoc
// GET /api/v1/admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateRole godoc
// PUT /api/v1/admin/users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateRoleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), claims.UserID, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), claims.UserID, claims.Role, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// UpsertSpesifik godoc
// PUT /api/v1/admin/users/:id/spesifik
// Lets an admin edit any user's profile extension.
func (h *UserHandler) UpsertSpesifik(c *gin.Context) {
	var req model.UpsertDataSpesifikRequest
	if fields := validator.Bind(c, &req); fields != nil {
		bindFailed(c, fields)
		return
	}

	d, err := h.profileService.UpsertSpesifik(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data_spesifik": d})
}
