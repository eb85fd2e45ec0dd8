package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/microblog/internal/api/middleware"
	"github.com/d60-Lab/microblog/pkg/response"
)

// Follow makes the authenticated user follow :username
// @Summary Follow a user
// @Tags relations
// @Produce json
// @Param username path string true "target username"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/users/{username}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if err := h.relService.Follow(c.Request.Context(), middleware.UserID(c), target.ID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"following": target.Username})
}

// Unfollow removes the edge toward :username
// @Summary Unfollow a user
// @Tags relations
// @Produce json
// @Param username path string true "target username"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Security BearerAuth
// @Router /api/v1/users/{username}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	target, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), middleware.UserID(c), target.ID); err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, gin.H{"unfollowed": target.Username})
}

// ListFollowing lists who :username follows
// @Summary List followed users
// @Tags relations
// @Param username path string true "username"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	res, err := h.relService.Following(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// ListFollowers lists who follows :username
// @Summary List followers
// @Tags relations
// @Param username path string true "username"
// @Param page query int false "page" default(1)
// @Param page_size query int false "page size" default(10)
// @Success 200 {object} response.Response
// @Router /api/v1/users/{username}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		serviceError(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	res, err := h.relService.Followers(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, res)
}

// FollowerStats returns follower/following counts for :username
// @Summary Follower stats
// @Tags relations
// @Param username path string true "username"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{username}/stats [get]
func (h *Handler) FollowerStats(c *gin.Context) {
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
	response.Success(c, stats)
}
