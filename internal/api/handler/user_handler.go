package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

type updateProfileRequest struct {
	Username string `json:"username" binding:"required,username"`
	AboutMe  string `json:"about_me" binding:"max=140"`
}

// ListUsers is the user directory
// @Summary List users
// @Tags users
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	res, err := h.userService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// GetUser is a profile page: account, avatar, follower stats
// @Summary Get a user profile
// @Tags users
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/users/{username} [get]
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	stats, err := h.relService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":   user,
		"avatar": user.AvatarURL(128),
		"stats":  stats,
	})
}

// UpdateProfile edits the authenticated user's username/about_me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "profile"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/users/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Username, req.AboutMe)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, user)
}
